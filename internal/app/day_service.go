package app

import (
	"fmt"
	"time"

	"caltrack/internal/domain"
	"caltrack/internal/store"
)

// DayService answers the read-side day questions: per-day aggregates,
// entry lists, search, and calendar navigation. It never mutates the store.
type DayService struct {
	store *store.Store
	clock Clock
}

// NewDayService creates a DayService backed by the given store.
func NewDayService(st *store.Store, clock Clock) *DayService {
	return &DayService{store: st, clock: clock}
}

// Day bundles the aggregate and the displayed entries for one date. The
// summary always covers the whole day; a search query narrows Entries only.
type Day struct {
	Summary domain.DaySummary `json:"summary"`
	Entries []domain.Entry    `json:"entries"`
}

// Today returns the current calendar date in the user's zone.
func (s *DayService) Today() string {
	return domain.LocalDay(s.clock.Now(), s.clock.Location())
}

// Get returns the day view for date (today when empty), with entries
// optionally narrowed by a free-text query.
func (s *DayService) Get(date, query string) (Day, error) {
	if date == "" {
		date = s.Today()
	}
	if err := s.checkDate(date); err != nil {
		return Day{}, err
	}

	state := s.store.Snapshot()
	loc := s.clock.Location()
	entries := domain.EntriesForDay(state.Entries, date, loc)
	entries = domain.SearchEntries(entries, query)
	return Day{
		Summary: domain.Summarize(state.Entries, date, loc, state.DailyGoal),
		Entries: entries,
	}, nil
}

// PreviousDay returns the calendar date one day before date.
func (s *DayService) PreviousDay(date string) (string, error) {
	return s.shift(date, -1)
}

// NextDay returns the calendar date one day after date.
func (s *DayService) NextDay(date string) (string, error) {
	return s.shift(date, 1)
}

// shift is pure calendar arithmetic, independent of instants and zones.
func (s *DayService) shift(date string, days int) (string, error) {
	d, err := time.ParseInLocation(domain.DayFormat, date, s.clock.Location())
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return d.AddDate(0, 0, days).Format(domain.DayFormat), nil
}

func (s *DayService) checkDate(date string) error {
	if _, err := time.ParseInLocation(domain.DayFormat, date, s.clock.Location()); err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	return nil
}
