package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"nfl_dashboard/service/internal/metrics"
	"nfl_dashboard/service/internal/models"
	"nfl_dashboard/service/internal/publisher"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// ScheduleSource provides the current week and its games
type ScheduleSource interface {
	CurrentWeek(ctx context.Context) models.CurrentWeek
	WeekSchedule(ctx context.Context, q models.ScheduleQuery) []models.Game
}

// SnapshotPublisher publishes a week's schedule downstream
type SnapshotPublisher interface {
	PublishSnapshot(ctx context.Context, snap *publisher.Snapshot) (string, error)
}

// Scheduler periodically publishes the current week's schedule
type Scheduler struct {
	spec      string
	source    ScheduleSource
	publisher SnapshotPublisher
	cron      *cron.Cron
	now       func() time.Time
	timeout   time.Duration

	mu      sync.Mutex // Serializes snapshot runs
	running bool
}

// NewScheduler creates a new scheduler instance
func NewScheduler(spec string, source ScheduleSource, pub SnapshotPublisher) *Scheduler {
	return &Scheduler{
		spec:      spec,
		source:    source,
		publisher: pub,
		cron:      cron.New(),
		now:       time.Now,
		timeout:   time.Minute,
	}
}

// Start registers the snapshot job and starts the cron runner.
// When publishNow is set a snapshot is published immediately in the background.
func (s *Scheduler) Start(ctx context.Context, publishNow bool) error {
	log.Info().Msg("Scheduler starting...")

	if _, err := s.cron.AddFunc(s.spec, func() {
		if err := s.RunSnapshot(ctx); err != nil {
			log.Error().Err(err).Msg("Scheduled snapshot failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule snapshot job: %w", err)
	}

	s.cron.Start()
	log.Info().
		Str("schedule", s.spec).
		Msg("Schedule snapshots scheduled")

	if publishNow {
		go func() {
			if err := s.RunSnapshot(ctx); err != nil {
				log.Error().Err(err).Msg("Initial snapshot failed")
			}
		}()
	}

	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")
	<-s.cron.Stop().Done()
	log.Info().Msg("Scheduler stopped")
}

// RunSnapshot fetches the current week's schedule and publishes it.
// Overlapping runs are skipped.
func (s *Scheduler) RunSnapshot(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Warn().Msg("Snapshot already running, skipping")
		return nil
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := s.now()

	cw := s.source.CurrentWeek(ctx)
	year := cw.Year
	if year == 0 {
		year = start.Year()
	}
	q := cw.Query(year)

	games := s.source.WeekSchedule(ctx, q)
	if len(games) == 0 {
		// An empty schedule is indistinguishable from an upstream outage
		metrics.RecordSnapshot("skipped")
		log.Warn().
			Int("year", q.Year).
			Int("week", q.Week).
			Msg("No games for current week, snapshot skipped")
		return nil
	}

	id, err := s.publisher.PublishSnapshot(ctx, publisher.NewSnapshot(q, games))
	if err != nil {
		metrics.RecordSnapshot("error")
		metrics.RecordError("scheduler", "publish_failed")
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}

	metrics.RecordSnapshot("success")
	log.Info().
		Str("entry_id", id).
		Int("year", q.Year).
		Int("week", q.Week).
		Str("season_type", q.SeasonType.String()).
		Int("games", len(games)).
		Dur("duration", time.Since(start)).
		Msg("Schedule snapshot published")

	return nil
}
