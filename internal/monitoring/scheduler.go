package monitoring

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Execer is satisfied by *sql.DB.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// PostOrphans counts posts whose author account no longer exists.
type PostOrphans interface {
	CountOrphanedPosts(ctx context.Context) (int, error)
}

// ProfileOrphans counts profiles whose owner account no longer exists.
type ProfileOrphans interface {
	CountOrphanedProfiles(ctx context.Context) (int, error)
}

// MaintenanceReport summarizes one maintenance run.
type MaintenanceReport struct {
	OrphanedPosts    int
	OrphanedProfiles int
}

// Scheduler runs store maintenance on a cron schedule.
type Scheduler struct {
	db       Execer
	posts    PostOrphans
	profiles ProfileOrphans
	schedule cron.Schedule
	interval time.Duration
	done     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

// NewScheduler creates a scheduler for the standard five-field cron expression spec.
func NewScheduler(db Execer, posts PostOrphans, profiles ProfileOrphans, spec string) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid maintenance schedule %q: %w", spec, err)
	}
	return &Scheduler{
		db:       db,
		posts:    posts,
		profiles: profiles,
		schedule: schedule,
		interval: time.Minute,
		done:     make(chan struct{}),
		now:      time.Now,
	}, nil
}

// NextRun returns the first run time strictly after t.
func (s *Scheduler) NextRun(t time.Time) time.Time {
	return s.schedule.Next(t)
}

// Run starts the scheduler's ticking loop. It returns after Stop.
func (s *Scheduler) Run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	next := s.NextRun(s.now())
	log.Info().Time("next_run", next).Msg("Starting maintenance scheduler")

	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping maintenance scheduler")
			return
		case <-ticker.C:
			now := s.now()
			if now.Before(next) {
				continue
			}
			if _, err := s.RunOnce(context.Background()); err != nil {
				log.Error().Err(err).Msg("Maintenance run failed")
			}
			next = s.NextRun(now)
		}
	}
}

// Stop halts the scheduler. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// RunOnce optimizes the store and reports orphaned documents. Orphans are
// only logged; nothing is deleted.
func (s *Scheduler) RunOnce(ctx context.Context) (MaintenanceReport, error) {
	var report MaintenanceReport

	if _, err := s.db.ExecContext(ctx, "PRAGMA optimize"); err != nil {
		return report, fmt.Errorf("optimize: %w", err)
	}

	var err error
	if report.OrphanedPosts, err = s.posts.CountOrphanedPosts(ctx); err != nil {
		return report, fmt.Errorf("count orphaned posts: %w", err)
	}
	if report.OrphanedProfiles, err = s.profiles.CountOrphanedProfiles(ctx); err != nil {
		return report, fmt.Errorf("count orphaned profiles: %w", err)
	}

	event := log.Info()
	if report.OrphanedPosts > 0 || report.OrphanedProfiles > 0 {
		event = log.Warn()
	}
	event.Int("orphaned_posts", report.OrphanedPosts).
		Int("orphaned_profiles", report.OrphanedProfiles).
		Msg("Maintenance run complete")

	return report, nil
}
