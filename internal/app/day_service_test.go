package app_test

import (
	"testing"
	"time"

	"caltrack/internal/app"
	"caltrack/internal/domain"
	"caltrack/internal/store"
)

func seedEntry(t *testing.T, st *store.Store, id, name string, calories int, typ domain.EntryType, at time.Time, note string) {
	t.Helper()
	e := domain.Entry{
		ID: id, Name: name, Calories: calories, Type: typ,
		Source: domain.SourceManual, RecordedAt: at,
	}
	if note != "" {
		e.Note = &note
	}
	if err := st.AddEntry(e); err != nil {
		t.Fatalf("AddEntry(%s): %v", id, err)
	}
}

func TestDayGet(t *testing.T) {
	clock := newFixedClock(t)
	st := store.New()
	if err := st.SetGoal(2000); err != nil {
		t.Fatal(err)
	}
	day := time.Date(2026, 8, 24, 9, 0, 0, 0, clock.loc)
	seedEntry(t, st, "1", "Breakfast", 500, domain.TypeConsumed, day, "")
	seedEntry(t, st, "2", "Run", 200, domain.TypeBurned, day.Add(time.Hour), "")
	seedEntry(t, st, "3", "Tomorrow pasta", 300, domain.TypeConsumed, day.AddDate(0, 0, 1), "")

	svc := app.NewDayService(st, clock)
	got, err := svc.Get("2026-08-24", "")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	want := domain.DaySummary{Date: "2026-08-24", Consumed: 500, Burned: 200, Net: 300, Remaining: 1700}
	if got.Summary != want {
		t.Errorf("Summary = %+v; want %+v", got.Summary, want)
	}
	if len(got.Entries) != 2 {
		t.Fatalf("expected 2 entries for the day, got %d", len(got.Entries))
	}
	if got.Entries[0].ID != "2" {
		t.Errorf("expected most recent entry first, got %s", got.Entries[0].ID)
	}
}

func TestDayGetDefaultsToToday(t *testing.T) {
	clock := newFixedClock(t)
	st := store.New()
	seedEntry(t, st, "1", "Coffee", 5, domain.TypeConsumed, clock.now, "")

	svc := app.NewDayService(st, clock)
	got, err := svc.Get("", "")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Summary.Date != "2026-08-24" {
		t.Errorf("date = %s; want today 2026-08-24", got.Summary.Date)
	}
	if got.Summary.Consumed != 5 {
		t.Errorf("consumed = %d; want 5", got.Summary.Consumed)
	}
}

func TestDaySearchNarrowsEntriesOnly(t *testing.T) {
	clock := newFixedClock(t)
	st := store.New()
	day := time.Date(2026, 8, 24, 9, 0, 0, 0, clock.loc)
	seedEntry(t, st, "1", "Latte", 180, domain.TypeConsumed, day, "with oat milk")
	seedEntry(t, st, "2", "Banana", 90, domain.TypeConsumed, day.Add(time.Minute), "")

	svc := app.NewDayService(st, clock)
	got, err := svc.Get("2026-08-24", "OAT")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Entries) != 1 || got.Entries[0].ID != "1" {
		t.Fatalf("search result = %+v; want just the latte", got.Entries)
	}
	// Totals ignore the search filter.
	if got.Summary.Consumed != 270 {
		t.Errorf("consumed = %d; want 270 despite search", got.Summary.Consumed)
	}
}

func TestDayGetRejectsBadDate(t *testing.T) {
	svc := app.NewDayService(store.New(), newFixedClock(t))
	if _, err := svc.Get("24/08/2026", ""); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestDayNavigation(t *testing.T) {
	svc := app.NewDayService(store.New(), newFixedClock(t))

	tests := []struct {
		name string
		fn   func(string) (string, error)
		date string
		want string
	}{
		{"previous", svc.PreviousDay, "2026-08-24", "2026-08-23"},
		{"next", svc.NextDay, "2026-08-24", "2026-08-25"},
		{"previous across month", svc.PreviousDay, "2026-08-01", "2026-07-31"},
		{"next across year", svc.NextDay, "2026-12-31", "2027-01-01"},
		{"next across leap day", svc.NextDay, "2028-02-28", "2028-02-29"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.fn(tc.date)
			if err != nil {
				t.Fatalf("navigation: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %s; want %s", got, tc.want)
			}
		})
	}

	if _, err := svc.NextDay("bogus"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestToday(t *testing.T) {
	svc := app.NewDayService(store.New(), newFixedClock(t))
	if got := svc.Today(); got != "2026-08-24" {
		t.Errorf("Today = %s; want 2026-08-24", got)
	}
}
