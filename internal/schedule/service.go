// Package schedule joins the ESPN client and the normalizer, applying the
// degraded outcome each fetch path defines on failure.
package schedule

import (
	"context"
	"errors"
	"fmt"

	"nfl_dashboard/service/internal/metrics"
	"nfl_dashboard/service/internal/models"
	"nfl_dashboard/service/internal/normalize"

	"github.com/rs/zerolog/log"
)

// ErrMissingGameID is returned when a summary is requested without an id
var ErrMissingGameID = errors.New("game id is missing, cannot fetch summary")

// Fetcher retrieves raw payloads from upstream
type Fetcher interface {
	FetchWeekScoreboard(ctx context.Context, q models.ScheduleQuery) (map[string]interface{}, error)
	FetchScoreboard(ctx context.Context) (map[string]interface{}, error)
	FetchSummary(ctx context.Context, eventID string) (map[string]interface{}, error)
}

// Service serves normalized schedules and game summaries
type Service struct {
	fetcher    Fetcher
	normalizer *normalize.Normalizer
}

// NewService creates a new schedule service
func NewService(fetcher Fetcher, normalizer *normalize.Normalizer) *Service {
	if normalizer == nil {
		normalizer = normalize.New()
	}
	return &Service{
		fetcher:    fetcher,
		normalizer: normalizer,
	}
}

// WeekSchedule returns the games for one week. Upstream failures yield an
// empty schedule rather than an error.
func (s *Service) WeekSchedule(ctx context.Context, q models.ScheduleQuery) []models.Game {
	raw, err := s.fetcher.FetchWeekScoreboard(ctx, q)
	if err != nil {
		if ctx.Err() == nil {
			metrics.RecordError("schedule", "fetch_failed")
		}
		log.Warn().
			Err(err).
			Int("year", q.Year).
			Int("week", q.Week).
			Int("season_type", int(q.SeasonType)).
			Msg("Schedule unavailable, returning no games")
		return []models.Game{}
	}

	games := s.normalizer.Schedule(raw)
	events := normalize.CountEvents(raw)
	metrics.RecordNormalized(events, len(games))

	log.Debug().
		Int("year", q.Year).
		Int("week", q.Week).
		Int("events", events).
		Int("games", len(games)).
		Msg("Schedule normalized")

	return games
}

// CurrentWeek returns upstream's current week, or week 1 of the regular
// season when it cannot be determined
func (s *Service) CurrentWeek(ctx context.Context) models.CurrentWeek {
	raw, err := s.fetcher.FetchScoreboard(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Could not fetch current week, using defaults")
		return models.CurrentWeek{Week: models.DefaultWeek, SeasonType: models.DefaultSeasonType}
	}
	return normalize.CurrentWeek(raw)
}

// GameSummary returns leaders and injuries for one game. Failures are
// returned to the caller; no partial data is produced.
func (s *Service) GameSummary(ctx context.Context, gameID string) (models.Summary, error) {
	if gameID == "" {
		return models.Summary{}, ErrMissingGameID
	}

	raw, err := s.fetcher.FetchSummary(ctx, gameID)
	if err != nil {
		if ctx.Err() == nil {
			metrics.RecordError("summary", "fetch_failed")
		}
		return models.Summary{}, fmt.Errorf("game %s: %w", gameID, err)
	}

	return normalize.Summary(raw), nil
}
