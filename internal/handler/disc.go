package handler

import (
	"net/http"

	"github.com/pkordes/discgolf-api/internal/domain"
)

// ListDiscs handles GET /discs.
// With a ?type= parameter it returns only discs of that type.
func (s *Server) ListDiscs(w http.ResponseWriter, r *http.Request) {
	var (
		discs []domain.Disc
		err   error
	)
	if r.URL.Query().Has("type") {
		var discType string
		if err := queryParam(r, "type", true, &discType); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		discs, err = s.discs.ListByType(r.Context(), discType)
	} else {
		discs, err = s.discs.List(r.Context())
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, discs)
}

// FilterDiscs handles GET /discs/filter?search=&mode=.
// mode selects the field: 0 all, 1 type, 2 color, 3 weight, 4 price.
func (s *Server) FilterDiscs(w http.ResponseWriter, r *http.Request) {
	var (
		search string
		mode   int
	)
	if err := queryParam(r, "search", false, &search); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := queryParam(r, "mode", true, &mode); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	discs, err := s.discs.Search(r.Context(), search, mode)
	if err != nil {
		s.failQuery(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, discs)
}

// GetDisc handles GET /discs/{id}.
func (s *Server) GetDisc(w http.ResponseWriter, r *http.Request) {
	var id int
	if err := pathParam(r, "id", &id); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	d, err := s.discs.GetByID(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, d)
}

// CreateDisc handles POST /discs. Any id in the body is ignored.
func (s *Server) CreateDisc(w http.ResponseWriter, r *http.Request) {
	var d domain.Disc
	if err := decodeJSON(r, &d); err != nil {
		writeDecodeError(w, err)
		return
	}

	created, err := s.discs.Create(r.Context(), d)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusCreated, created)
}

// UpdateDisc handles PUT /discs. The body's id selects the disc to replace.
func (s *Server) UpdateDisc(w http.ResponseWriter, r *http.Request) {
	var d domain.Disc
	if err := decodeJSON(r, &d); err != nil {
		writeDecodeError(w, err)
		return
	}

	updated, err := s.discs.Update(r.Context(), d)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, updated)
}

// DeleteDisc handles DELETE /discs/{id}.
func (s *Server) DeleteDisc(w http.ResponseWriter, r *http.Request) {
	var id int
	if err := pathParam(r, "id", &id); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := s.discs.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
