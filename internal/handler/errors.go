package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/discgolf-api/internal/domain"
)

// Error responses carry a status code and no body.

// statusFor maps a service error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the status for err. Unexpected errors are logged with the
// request id; the client only sees 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
			"error", err,
		)
	}
	w.WriteHeader(status)
}

// failQuery is fail for handlers whose only input is a query or path value:
// a validation error there means a malformed request, so it is a 400.
func (s *Server) failQuery(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrValidation) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.fail(w, r, err)
}

// respondJSON writes v as a JSON body with the given status.
func (s *Server) respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WarnContext(r.Context(), "write response", "error", err)
	}
}

// decodeJSON reads a single JSON value from the request body into dst.
// Unknown fields are ignored; trailing data is an error.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// writeDecodeError answers a body that could not be decoded: 413 when the
// body limit was hit, 400 otherwise.
func writeDecodeError(w http.ResponseWriter, err error) {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		return
	}
	w.WriteHeader(http.StatusBadRequest)
}

// pathParam binds the chi URL parameter name into dest using the OpenAPI
// "simple" style. chi matches against r.URL.RawPath when the request carries
// one and against the already decoded r.URL.Path otherwise; in the second
// case the value is escaped again so that binding decodes it exactly once.
func pathParam(r *http.Request, name string, dest any) error {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		value = url.PathEscape(value)
	}
	return runtime.BindStyledParameterWithOptions("simple", name, value, dest,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
}

// queryParam binds the query parameter name into dest using the OpenAPI
// "form" style.
func queryParam(r *http.Request, name string, required bool, dest any) error {
	return runtime.BindQueryParameter("form", true, required, name, r.URL.Query(), dest)
}
