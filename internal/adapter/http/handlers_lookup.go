package adapthttp

import (
	"errors"
	"net/http"

	"caltrack/internal/lookup"
)

type lookupItem struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	if s.lookup == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("nutrition lookup is not configured"))
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing query parameter q"))
		return
	}

	foods, err := s.lookup.Search(r.Context(), query)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	// Candidates without a usable energy value cannot become entries and
	// are dropped.
	items := make([]lookupItem, 0, len(foods))
	for _, f := range foods {
		kcal, err := lookup.EnergyKcal(f)
		if err != nil {
			continue
		}
		items = append(items, lookupItem{Name: f.Description, Calories: kcal})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
