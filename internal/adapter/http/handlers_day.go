package adapthttp

import (
	"net/http"
)

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	query := r.URL.Query().Get("q")

	day, err := s.days.Get(date, query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, day)
}

func (s *Server) handleDayNav(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = s.days.Today()
	}

	prev, err := s.days.PreviousDay(date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	next, err := s.days.NextDay(date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"prev":  prev,
		"date":  date,
		"next":  next,
		"today": s.days.Today(),
	})
}
