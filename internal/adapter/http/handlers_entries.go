package adapthttp

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"caltrack/internal/app"
	"caltrack/internal/domain"
)

type entryBody struct {
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	Type     string  `json:"type"`
	Note     *string `json:"note"`
	Source   string  `json:"source"`
	Date     string  `json:"date"`
}

func (b entryBody) input() app.EntryInput {
	return app.EntryInput{
		Name:     b.Name,
		Calories: b.Calories,
		Type:     domain.EntryType(b.Type),
		Note:     b.Note,
		Source:   domain.Source(b.Source),
		Date:     b.Date,
	}
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	var body entryBody
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	entry, err := s.entries.Add(body.input())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body entryBody
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	entry, err := s.entries.Update(id, body.input())
	if errors.Is(err, app.ErrEntryNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.entries.Get(id); !ok {
		writeError(w, http.StatusNotFound, app.ErrEntryNotFound)
		return
	}
	s.entries.Remove(id)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
