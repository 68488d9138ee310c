// Package store holds the in-process calorie state. It is the single source
// of truth for the daily goal and the entry sequence; every mutation flows
// through its operations and is announced to registered observers.
package store

import (
	"fmt"
	"sync"

	"caltrack/internal/domain"
)

// Cause identifies the mutation that produced a Change.
type Cause string

const (
	CauseSetGoal        Cause = "set-goal"
	CauseReplaceEntries Cause = "replace-entries"
	CauseAddEntry       Cause = "add-entry"
	CauseRemoveEntry    Cause = "remove-entry"
	CauseUpdateEntry    Cause = "update-entry"
	CauseHydrated       Cause = "hydrated"
)

// State is a point-in-time copy of the store contents. Entries is owned by
// the receiver and safe to retain.
type State struct {
	Entries   []domain.Entry
	DailyGoal int
	Hydrated  bool
}

// Change describes one applied mutation.
type Change struct {
	Old   State
	New   State
	Cause Cause
}

// Observer receives change notifications. Observers run synchronously in
// mutation order while the store is locked and must not call back into it.
type Observer func(Change)

// Store holds the calorie state behind a mutex. The surrounding request
// flow serializes mutations; the mutex keeps concurrent readers safe.
type Store struct {
	mu        sync.Mutex
	entries   []domain.Entry
	goal      int
	hydrated  bool
	observers []Observer
}

// New creates an empty store with the default daily goal and hydration
// still pending.
func New() *Store {
	return &Store{goal: domain.DefaultDailyGoal}
}

// Subscribe registers an observer for all subsequent mutations.
func (s *Store) Subscribe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Entry returns the entry with the given id, if present.
func (s *Store) Entry(id string) (domain.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return domain.Entry{}, false
}

// SetGoal replaces the daily goal with a positive value.
func (s *Store) SetGoal(value int) error {
	if value <= 0 {
		return domain.ErrNonPositiveGoal
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.stateLocked()
	s.goal = value
	s.notifyLocked(old, CauseSetGoal)
	return nil
}

// ReplaceEntries swaps the whole entry sequence. It is the load path's
// bulk operation and performs no per-item validation.
func (s *Store) ReplaceEntries(entries []domain.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.stateLocked()
	s.entries = make([]domain.Entry, len(entries))
	copy(s.entries, entries)
	s.notifyLocked(old, CauseReplaceEntries)
}

// AddEntry validates and inserts a new entry at the head of the sequence.
// A duplicate id is a programmer error and panics.
func (s *Store) AddEntry(entry domain.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexLocked(entry.ID) >= 0 {
		panic(fmt.Sprintf("store: duplicate entry id %q", entry.ID))
	}
	old := s.stateLocked()
	s.entries = append([]domain.Entry{entry}, s.entries...)
	s.notifyLocked(old, CauseAddEntry)
	return nil
}

// RemoveEntry deletes the entry with the given id. Removing an unknown id
// is a no-op and produces no notification.
func (s *Store) RemoveEntry(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return
	}
	old := s.stateLocked()
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	s.notifyLocked(old, CauseRemoveEntry)
}

// TryUpdateEntry validates and replaces an existing entry wholesale,
// reporting whether the id was present. The check and the replacement
// happen under one lock acquisition, so a concurrent removal cannot slip
// between them.
func (s *Store) TryUpdateEntry(entry domain.Entry) (bool, error) {
	if err := entry.Validate(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(entry.ID)
	if i < 0 {
		return false, nil
	}
	old := s.stateLocked()
	s.entries[i] = entry
	s.notifyLocked(old, CauseUpdateEntry)
	return true, nil
}

// UpdateEntry replaces an existing entry wholesale. An unknown id is a
// programmer error and panics; callers that may race a removal use
// TryUpdateEntry instead.
func (s *Store) UpdateEntry(entry domain.Entry) error {
	ok, err := s.TryUpdateEntry(entry)
	if err != nil {
		return err
	}
	if !ok {
		panic(fmt.Sprintf("store: update of unknown entry id %q", entry.ID))
	}
	return nil
}

// SetHydrated marks the one-time completion of the initial load.
func (s *Store) SetHydrated(flag bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.stateLocked()
	s.hydrated = flag
	s.notifyLocked(old, CauseHydrated)
}

func (s *Store) indexLocked(id string) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) stateLocked() State {
	entries := make([]domain.Entry, len(s.entries))
	copy(entries, s.entries)
	return State{Entries: entries, DailyGoal: s.goal, Hydrated: s.hydrated}
}

func (s *Store) notifyLocked(old State, cause Cause) {
	change := Change{Old: old, New: s.stateLocked(), Cause: cause}
	for _, fn := range s.observers {
		fn(change)
	}
}
