package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"caltrack/internal/domain"
	"caltrack/internal/store"
)

// ErrEntryNotFound indicates that the requested entry does not exist.
var ErrEntryNotFound = errors.New("entry not found")

// EntryService encapsulates the add/edit/remove use cases for calorie
// entries.
type EntryService struct {
	store *store.Store
	clock Clock
}

// NewEntryService creates an EntryService backed by the given store.
func NewEntryService(st *store.Store, clock Clock) *EntryService {
	return &EntryService{store: st, clock: clock}
}

// EntryInput carries the user-supplied fields of a new or edited entry.
// Date is an optional "2006-01-02" day; empty means today.
type EntryInput struct {
	Name     string
	Calories int
	Type     domain.EntryType
	Note     *string
	Source   domain.Source
	Date     string
}

// Add validates the input, attributes it to the selected day, and stores a
// new entry.
func (s *EntryService) Add(in EntryInput) (domain.Entry, error) {
	recordedAt, err := s.recordedAt(in.Date)
	if err != nil {
		return domain.Entry{}, err
	}
	entry := domain.Entry{
		ID:         ulid.Make().String(),
		Name:       strings.TrimSpace(in.Name),
		Calories:   in.Calories,
		Type:       in.Type,
		Note:       in.Note,
		Source:     in.Source,
		RecordedAt: recordedAt,
	}
	if entry.Source == "" {
		entry.Source = domain.SourceManual
	}
	if err := entry.Validate(); err != nil {
		return domain.Entry{}, err
	}
	if err := s.store.AddEntry(entry); err != nil {
		return domain.Entry{}, err
	}
	return entry, nil
}

// Update replaces an existing entry wholesale, keeping its identity.
// RecordedAt is preserved unless the edit moves the entry to another day,
// in which case the instant is re-synthesized for that day.
func (s *EntryService) Update(id string, in EntryInput) (domain.Entry, error) {
	existing, ok := s.store.Entry(id)
	if !ok {
		return domain.Entry{}, ErrEntryNotFound
	}

	recordedAt := existing.RecordedAt
	if in.Date != "" && in.Date != domain.LocalDay(existing.RecordedAt, s.clock.Location()) {
		at, err := s.recordedAt(in.Date)
		if err != nil {
			return domain.Entry{}, err
		}
		recordedAt = at
	}

	entry := domain.Entry{
		ID:         id,
		Name:       strings.TrimSpace(in.Name),
		Calories:   in.Calories,
		Type:       in.Type,
		Note:       in.Note,
		Source:     in.Source,
		RecordedAt: recordedAt,
	}
	if entry.Source == "" {
		entry.Source = existing.Source
	}
	if err := entry.Validate(); err != nil {
		return domain.Entry{}, err
	}
	// The entry may be removed between the read above and this point;
	// the store reports that atomically instead of panicking.
	ok, err := s.store.TryUpdateEntry(entry)
	if err != nil {
		return domain.Entry{}, err
	}
	if !ok {
		return domain.Entry{}, ErrEntryNotFound
	}
	return entry, nil
}

// Remove deletes an entry. Removing an unknown id is a no-op.
func (s *EntryService) Remove(id string) {
	s.store.RemoveEntry(id)
}

// Get returns the entry with the given id, if present.
func (s *EntryService) Get(id string) (domain.Entry, bool) {
	return s.store.Entry(id)
}

// recordedAt synthesizes the instant for a selected day: the chosen
// calendar date combined with the current local time-of-day. Today (or an
// empty date) uses the current instant directly.
func (s *EntryService) recordedAt(date string) (time.Time, error) {
	loc := s.clock.Location()
	now := s.clock.Now().In(loc)
	if date == "" || date == now.Format(domain.DayFormat) {
		return now, nil
	}
	day, err := time.ParseInLocation(domain.DayFormat, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), loc), nil
}
