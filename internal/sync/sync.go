// Package sync keeps durable storage consistent with the in-memory store:
// a one-time load hydrates the store at startup, and once hydration has
// completed every observed mutation writes the full goal+entries snapshot
// back out.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	stdsync "sync"

	"golang.org/x/sync/errgroup"

	"caltrack/internal/domain"
	"caltrack/internal/store"
)

// Syncer bridges the store and the durable snapshot store. Mutations seen
// before hydration are applied in memory only; the load path's own
// ReplaceEntries/SetGoal therefore never echo back into storage.
type Syncer struct {
	store   *store.Store
	persist domain.Persistence
	log     *slog.Logger

	// ctx backs snapshot writes; it never carries a shutdown cancellation.
	ctx    context.Context
	writes stdsync.WaitGroup
}

// New creates a Syncer and subscribes it to the store. Snapshot writes
// carry ctx's values but not its cancellation: a mutation accepted during
// shutdown must still land in storage, and Flush is the only thing that
// ends the write path.
func New(ctx context.Context, st *store.Store, persist domain.Persistence, log *slog.Logger) *Syncer {
	s := &Syncer{store: st, persist: persist, log: log, ctx: context.WithoutCancel(ctx)}
	st.Subscribe(s.onChange)
	return s
}

// Load performs the one-time hydration: both fetches joined, then applied
// to the store, then the hydrated flag flipped. On any failure the store
// stays un-hydrated and Load may be retried by the host. Calling Load on an
// already hydrated store is a no-op.
func (s *Syncer) Load(ctx context.Context) error {
	if s.store.Snapshot().Hydrated {
		return nil
	}

	var (
		goal    int
		entries []domain.Entry
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		goal, err = s.persist.LoadGoal(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.persist.LoadEntries(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	// A goal of zero means nothing was ever saved.
	if goal <= 0 {
		goal = domain.DefaultDailyGoal
	}

	s.store.ReplaceEntries(entries)
	if err := s.store.SetGoal(goal); err != nil {
		return fmt.Errorf("apply loaded goal: %w", err)
	}
	s.store.SetHydrated(true)

	s.log.Info("store hydrated", "entries", len(entries), "goal", goal)
	return nil
}

// Flush blocks until all in-flight snapshot writes have finished.
func (s *Syncer) Flush() {
	s.writes.Wait()
}

// onChange runs inside the store's notification path; it only captures the
// snapshot and hands the write to a goroutine. Writes may overlap; each
// carries the full snapshot, so storage converges to the latest state.
func (s *Syncer) onChange(c store.Change) {
	if !c.New.Hydrated || c.Cause == store.CauseHydrated {
		return
	}
	snap := c.New
	s.writes.Add(1)
	go func() {
		defer s.writes.Done()
		s.save(snap)
	}()
}

// save writes the whole snapshot. A failure is reported and the in-memory
// state stands; the next successful save converges storage to match.
func (s *Syncer) save(snap store.State) {
	if err := s.persist.SaveGoal(s.ctx, snap.DailyGoal); err != nil {
		s.log.Error("save goal failed", "err", err)
		return
	}
	if err := s.persist.SaveEntries(s.ctx, snap.Entries); err != nil {
		s.log.Error("save entries failed", "err", err)
	}
}
