package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pkordes/discgolf-api/internal/domain"
)

// UserResponse is the wire shape of a user. The password is never sent.
type UserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
	LoggedIn bool   `json:"loggedIn"`
}

// UserRequest is the body of POST and PUT /users.
type UserRequest struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func userToResponse(u domain.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Admin: u.IsAdmin(), LoggedIn: u.LoggedIn()}
}

func usersToResponse(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = userToResponse(u)
	}
	return out
}

// userRef is the {user} path segment: a numeric id or a username.
type userRef struct {
	id       int
	username string
	byID     bool
}

func userRefParam(w http.ResponseWriter, r *http.Request) (userRef, bool) {
	var raw string
	if err := pathParam(r, "user", &raw); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return userRef{}, false
	}
	if id, err := strconv.Atoi(raw); err == nil {
		return userRef{id: id, byID: true}, true
	}
	return userRef{username: raw}, true
}

// lookup returns the user named by ref.
func (s *Server) lookup(ctx context.Context, ref userRef) (domain.User, error) {
	if ref.byID {
		return s.users.GetByID(ctx, ref.id)
	}
	return s.users.GetByUsername(ctx, ref.username)
}

// resolveUsername returns the username for ref, looking the id up if needed.
func (s *Server) resolveUsername(ctx context.Context, ref userRef) (string, error) {
	if !ref.byID {
		return ref.username, nil
	}
	u, err := s.users.GetByID(ctx, ref.id)
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

// ListUsers handles GET /users.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, usersToResponse(users))
}

// GetUser handles GET /users/{user}.
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	ref, ok := userRefParam(w, r)
	if !ok {
		return
	}

	u, err := s.lookup(r.Context(), ref)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, userToResponse(u))
}

// CreateUser handles POST /users.
func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	created, err := s.users.Create(r.Context(), domain.User{Username: req.Username, Password: req.Password})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusCreated, userToResponse(created))
}

// UpdateUser handles PUT /users. The body's id selects the user to replace.
func (s *Server) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	updated, err := s.users.Update(r.Context(), domain.User{ID: req.ID, Username: req.Username, Password: req.Password})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, userToResponse(updated))
}

// DeleteUser handles DELETE /users/{user}.
func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ref, ok := userRefParam(w, r)
	if !ok {
		return
	}

	var err error
	if ref.byID {
		err = s.users.Delete(r.Context(), ref.id)
	} else {
		err = s.users.DeleteByUsername(r.Context(), ref.username)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// LoginUser handles GET /users/{user}/login/{password}.
// Success answers 202 Accepted with the logged-in user.
func (s *Server) LoginUser(w http.ResponseWriter, r *http.Request) {
	ref, ok := userRefParam(w, r)
	if !ok {
		return
	}
	var password string
	if err := pathParam(r, "password", &password); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	username, err := s.resolveUsername(r.Context(), ref)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	u, err := s.users.Login(r.Context(), username, password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusAccepted, userToResponse(u))
}

// LogoutUser handles GET /users/{user}/logout.
func (s *Server) LogoutUser(w http.ResponseWriter, r *http.Request) {
	ref, ok := userRefParam(w, r)
	if !ok {
		return
	}

	username, err := s.resolveUsername(r.Context(), ref)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	u, err := s.users.Logout(r.Context(), username)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, userToResponse(u))
}
