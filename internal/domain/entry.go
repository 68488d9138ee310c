// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

// DefaultDailyGoal is the daily calorie goal used until the user sets one.
const DefaultDailyGoal = 2000

// EntryType determines which aggregation bucket an entry lands in.
type EntryType string

const (
	// TypeConsumed counts toward calories eaten.
	TypeConsumed EntryType = "consumed"
	// TypeBurned counts toward calories burned through activity.
	TypeBurned EntryType = "burned"
)

// Valid reports whether t is a known entry type.
func (t EntryType) Valid() bool {
	return t == TypeConsumed || t == TypeBurned
}

// Source records where an entry came from. It is display-only and never
// affects aggregation.
type Source string

const (
	// SourceManual marks an entry typed in by the user.
	SourceManual Source = "manual"
	// SourceLookup marks an entry created from a nutrition lookup result.
	SourceLookup Source = "external-lookup"
)

var (
	// ErrEmptyName indicates a missing display label.
	ErrEmptyName = errors.New("name must not be empty")
	// ErrNonPositiveCalories indicates a zero or negative calorie value.
	ErrNonPositiveCalories = errors.New("calories must be greater than zero")
	// ErrInvalidType indicates an unknown entry type.
	ErrInvalidType = errors.New(`type must be "consumed" or "burned"`)
	// ErrNonPositiveGoal indicates a zero or negative daily goal.
	ErrNonPositiveGoal = errors.New("daily goal must be greater than zero")
)

// Entry is a single logged calorie event. Entries are immutable; an edit
// replaces the whole entry while keeping its ID.
type Entry struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Calories   int       `json:"calories"`
	Type       EntryType `json:"type"`
	Note       *string   `json:"note,omitempty"`
	Source     Source    `json:"source"`
	RecordedAt time.Time `json:"recordedAt"`
}

// Validate checks the user-facing invariants of an entry.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	if e.Calories <= 0 {
		return ErrNonPositiveCalories
	}
	if !e.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

// NoteText returns the note, or the empty string when absent.
func (e Entry) NoteText() string {
	if e.Note == nil {
		return ""
	}
	return *e.Note
}

// Persistence is the port to the durable snapshot store. A load that finds
// nothing saved yet returns the zero value (goal 0, nil entries) with a nil
// error; every call either fully succeeds or fails as a unit.
type Persistence interface {
	LoadGoal(ctx context.Context) (int, error)
	LoadEntries(ctx context.Context) ([]Entry, error)
	SaveGoal(ctx context.Context, goal int) error
	SaveEntries(ctx context.Context, entries []Entry) error
}
