package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"caltrack/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "caltrack.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSnapshotRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	// Empty storage reads as the zero snapshot.
	goal, err := db.LoadGoal(ctx)
	if err != nil {
		t.Fatalf("LoadGoal: %v", err)
	}
	if goal != 0 {
		t.Errorf("goal = %d before any save; want 0", goal)
	}
	entries, err := db.LoadEntries(ctx)
	if err != nil {
		t.Fatalf("LoadEntries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries before any save, got %d", len(entries))
	}

	note := "with oat milk"
	saved := []domain.Entry{
		{
			ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV", Name: "Flat white", Calories: 120,
			Type: domain.TypeConsumed, Note: &note, Source: domain.SourceManual,
			RecordedAt: time.Date(2026, 8, 24, 8, 30, 0, 0, time.UTC),
		},
		{
			ID: "01BX5ZZKBKACTAV9WEVGEMMVRZ", Name: "Morning run", Calories: 400,
			Type: domain.TypeBurned, Source: domain.SourceManual,
			RecordedAt: time.Date(2026, 8, 24, 7, 0, 0, 0, time.UTC),
		},
	}
	if err := db.SaveGoal(ctx, 2100); err != nil {
		t.Fatalf("SaveGoal: %v", err)
	}
	if err := db.SaveEntries(ctx, saved); err != nil {
		t.Fatalf("SaveEntries: %v", err)
	}

	goal, err = db.LoadGoal(ctx)
	if err != nil {
		t.Fatalf("LoadGoal: %v", err)
	}
	if goal != 2100 {
		t.Errorf("goal = %d; want 2100", goal)
	}
	entries, err = db.LoadEntries(ctx)
	if err != nil {
		t.Fatalf("LoadEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Name != "Flat white" || entries[0].NoteText() != "with oat milk" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if !entries[0].RecordedAt.Equal(saved[0].RecordedAt) {
		t.Errorf("RecordedAt = %v; want %v", entries[0].RecordedAt, saved[0].RecordedAt)
	}

	// Saves are whole-snapshot: a later save fully replaces the list.
	if err := db.SaveEntries(ctx, saved[:1]); err != nil {
		t.Fatalf("SaveEntries: %v", err)
	}
	entries, _ = db.LoadEntries(ctx)
	if len(entries) != 1 {
		t.Errorf("got %d entries after overwrite, want 1", len(entries))
	}
}

func TestSaveGoalOverwrites(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for _, goal := range []int{1800, 2200, 2000} {
		if err := db.SaveGoal(ctx, goal); err != nil {
			t.Fatalf("SaveGoal(%d): %v", goal, err)
		}
	}
	goal, err := db.LoadGoal(ctx)
	if err != nil {
		t.Fatalf("LoadGoal: %v", err)
	}
	if goal != 2000 {
		t.Errorf("goal = %d; want last write 2000", goal)
	}
}

func TestUserAndSessionRepositories(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	count, err := db.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 users, got %d", count)
	}

	u, err := db.Create(ctx, "sam", "hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == 0 {
		t.Error("expected a non-zero user id")
	}
	if _, err := db.Create(ctx, "sam", "other"); err == nil {
		t.Error("expected duplicate username error")
	}
	got, err := db.GetByUsername(ctx, "sam")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got == nil || got.ID != u.ID {
		t.Errorf("GetByUsername = %+v", got)
	}
	if missing, _ := db.GetByUsername(ctx, "nobody"); missing != nil {
		t.Error("expected nil for unknown username")
	}

	repo := NewSessionRepo(db)
	if err := repo.Create(ctx, u.ID, "tok", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Create session: %v", err)
	}
	s, err := repo.GetByToken(ctx, "tok")
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if s == nil || s.UserID != u.ID {
		t.Errorf("session = %+v", s)
	}

	_ = repo.Create(ctx, u.ID, "old", time.Now().Add(-time.Hour))
	if err := repo.DeleteExpired(ctx); err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if s, _ := repo.GetByToken(ctx, "old"); s != nil {
		t.Error("expired session not swept")
	}
	if s, _ := repo.GetByToken(ctx, "tok"); s == nil {
		t.Error("fresh session swept")
	}

	if err := repo.Delete(ctx, "tok"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s, _ := repo.GetByToken(ctx, "tok"); s != nil {
		t.Error("session survived delete")
	}
}
