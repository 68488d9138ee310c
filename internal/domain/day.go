package domain

import (
	"sort"
	"strings"
	"time"
)

// DayFormat is the calendar-date layout used for local-day bucketing.
const DayFormat = "2006-01-02"

// LocalDay projects an instant into the calendar date it falls on in loc.
func LocalDay(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayFormat)
}

// DaySummary holds the per-day totals measured against the daily goal.
// Remaining is positive while under goal and negative once over it.
type DaySummary struct {
	Date      string `json:"date"`
	Consumed  int    `json:"consumed"`
	Burned    int    `json:"burned"`
	Net       int    `json:"net"`
	Remaining int    `json:"remaining"`
}

// Summarize computes the consumed/burned/net totals for the entries whose
// RecordedAt falls on day in loc, and the remaining delta against goal.
// It is a pure function of its inputs.
func Summarize(entries []Entry, day string, loc *time.Location, goal int) DaySummary {
	var consumed, burned int
	for _, e := range entries {
		if LocalDay(e.RecordedAt, loc) != day {
			continue
		}
		switch e.Type {
		case TypeConsumed:
			consumed += e.Calories
		case TypeBurned:
			burned += e.Calories
		}
	}
	net := consumed - burned
	return DaySummary{
		Date:      day,
		Consumed:  consumed,
		Burned:    burned,
		Net:       net,
		Remaining: goal - net,
	}
}

// EntriesForDay returns the entries recorded on day in loc, most recent
// first. Store order is a display convenience; bucketing always follows
// RecordedAt.
func EntriesForDay(entries []Entry, day string, loc *time.Location) []Entry {
	out := make([]Entry, 0)
	for _, e := range entries {
		if LocalDay(e.RecordedAt, loc) == day {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})
	return out
}

// SearchEntries narrows entries to those whose name or note contains query,
// case-insensitively. An empty query returns entries unchanged.
func SearchEntries(entries []Entry, query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name+e.NoteText()), q) {
			out = append(out, e)
		}
	}
	return out
}
