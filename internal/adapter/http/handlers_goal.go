package adapthttp

import (
	"errors"
	"net/http"

	"caltrack/internal/domain"
)

func (s *Server) handleGetGoal(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"goal": s.goals.Current()})
}

func (s *Server) handleSetGoal(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Goal int `json:"goal"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.goals.Apply(body.Goal); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"goal": body.Goal})
}

func (s *Server) handleRecommendGoal(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Sex          string  `json:"sex"`
		Weight       float64 `json:"weight"`
		Height       float64 `json:"height"`
		Age          int     `json:"age"`
		Activity     string  `json:"activity"`
		Goal         string  `json:"goal"`
		WeeklyChange float64 `json:"weekly_change"`
		Units        string  `json:"units"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	weightKg, heightCm, weeklyKg := body.Weight, body.Height, body.WeeklyChange
	switch body.Units {
	case "", "metric":
	case "imperial":
		weightKg = domain.PoundsToKilograms(body.Weight)
		heightCm = domain.InchesToCentimeters(body.Height)
		weeklyKg = domain.PoundsToKilograms(body.WeeklyChange)
	default:
		writeError(w, http.StatusBadRequest, errors.New(`units must be "metric" or "imperial"`))
		return
	}

	rec, err := s.goals.Recommend(domain.GoalInput{
		Sex:            domain.Sex(body.Sex),
		WeightKg:       weightKg,
		HeightCm:       heightCm,
		Age:            body.Age,
		Activity:       domain.ActivityLevel(body.Activity),
		Goal:           domain.GoalType(body.Goal),
		WeeklyChangeKg: weeklyKg,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleApplyGoal(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Target int `json:"target"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.goals.Apply(body.Target); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"goal": body.Target})
}
