package handler

import (
	"net/http"

	"github.com/pkordes/discgolf-api/internal/domain"
)

// ListLessons handles GET /lessons: the open lessons.
// With a ?title= parameter only open lessons whose title contains it are returned.
func (s *Server) ListLessons(w http.ResponseWriter, r *http.Request) {
	var (
		lessons []domain.Lesson
		err     error
	)
	if r.URL.Query().Has("title") {
		var title string
		if err := queryParam(r, "title", true, &title); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		lessons, err = s.lessons.Search(r.Context(), title)
	} else {
		lessons, err = s.lessons.List(r.Context())
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, lessons)
}

// ListLessonsOnDate handles GET /lessons/dates?date=YYYY-MM-DD: every lesson,
// open or booked, that meets on that day.
func (s *Server) ListLessonsOnDate(w http.ResponseWriter, r *http.Request) {
	var date string
	if err := queryParam(r, "date", true, &date); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	lessons, err := s.lessons.ListOnDate(r.Context(), date)
	if err != nil {
		s.failQuery(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, lessons)
}

// ListLessonsByUser handles GET /lessons/user/{username}.
func (s *Server) ListLessonsByUser(w http.ResponseWriter, r *http.Request) {
	username, ok := usernameParam(w, r)
	if !ok {
		return
	}

	lessons, err := s.lessons.ListByUser(r.Context(), username)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, lessons)
}

// GetLesson handles GET /lessons/{id}.
func (s *Server) GetLesson(w http.ResponseWriter, r *http.Request) {
	var id int
	if err := pathParam(r, "id", &id); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	l, err := s.lessons.GetByID(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, l)
}

// CreateLesson handles POST /lessons.
func (s *Server) CreateLesson(w http.ResponseWriter, r *http.Request) {
	var l domain.Lesson
	if err := decodeJSON(r, &l); err != nil {
		writeDecodeError(w, err)
		return
	}

	created, err := s.lessons.Create(r.Context(), l)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusCreated, created)
}

// UpdateLesson handles PUT /lessons. The body's id selects the lesson to replace.
func (s *Server) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	var l domain.Lesson
	if err := decodeJSON(r, &l); err != nil {
		writeDecodeError(w, err)
		return
	}

	updated, err := s.lessons.Update(r.Context(), l)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, updated)
}

// DeleteLesson handles DELETE /lessons/{id}.
func (s *Server) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	var id int
	if err := pathParam(r, "id", &id); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := s.lessons.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
