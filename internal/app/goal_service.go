package app

import (
	"errors"

	"caltrack/internal/domain"
	"caltrack/internal/store"
)

var (
	// ErrInvalidSex indicates an unknown sex value.
	ErrInvalidSex = errors.New(`sex must be "male" or "female"`)
	// ErrNonPositiveWeight indicates a zero or negative weight.
	ErrNonPositiveWeight = errors.New("weight must be greater than zero")
	// ErrNonPositiveHeight indicates a zero or negative height.
	ErrNonPositiveHeight = errors.New("height must be greater than zero")
	// ErrNonPositiveAge indicates a zero or negative age.
	ErrNonPositiveAge = errors.New("age must be greater than zero")
	// ErrInvalidActivity indicates an unknown activity level.
	ErrInvalidActivity = errors.New("unknown activity level")
	// ErrInvalidGoalType indicates an unknown goal type.
	ErrInvalidGoalType = errors.New(`goal must be "loss", "maintain" or "gain"`)
	// ErrNonPositiveWeeklyChange indicates a missing weekly change for a
	// loss or gain goal.
	ErrNonPositiveWeeklyChange = errors.New("weekly change must be greater than zero")
)

// GoalService validates body metrics, runs the goal calculator, and applies
// accepted targets to the store.
type GoalService struct {
	store *store.Store
}

// NewGoalService creates a GoalService backed by the given store.
func NewGoalService(st *store.Store) *GoalService {
	return &GoalService{store: st}
}

// Recommend validates the input domain and computes a recommendation.
func (s *GoalService) Recommend(in domain.GoalInput) (domain.Recommendation, error) {
	if !in.Sex.Valid() {
		return domain.Recommendation{}, ErrInvalidSex
	}
	if in.WeightKg <= 0 {
		return domain.Recommendation{}, ErrNonPositiveWeight
	}
	if in.HeightCm <= 0 {
		return domain.Recommendation{}, ErrNonPositiveHeight
	}
	if in.Age <= 0 {
		return domain.Recommendation{}, ErrNonPositiveAge
	}
	if in.Activity.Factor() == 0 {
		return domain.Recommendation{}, ErrInvalidActivity
	}
	if !in.Goal.Valid() {
		return domain.Recommendation{}, ErrInvalidGoalType
	}
	if in.Goal != domain.GoalMaintain && in.WeeklyChangeKg <= 0 {
		return domain.Recommendation{}, ErrNonPositiveWeeklyChange
	}
	return domain.Recommend(in), nil
}

// Apply sets the daily goal to target. Only the goal changes; entries are
// never touched by a goal application.
func (s *GoalService) Apply(target int) error {
	return s.store.SetGoal(target)
}

// Current returns the goal in effect.
func (s *GoalService) Current() int {
	return s.store.Snapshot().DailyGoal
}
