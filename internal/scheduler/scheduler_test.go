package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"nfl_dashboard/service/internal/models"
	"nfl_dashboard/service/internal/publisher"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	current models.CurrentWeek
	games   []models.Game
	queries []models.ScheduleQuery
}

func (f *fakeSource) CurrentWeek(ctx context.Context) models.CurrentWeek {
	return f.current
}

func (f *fakeSource) WeekSchedule(ctx context.Context, q models.ScheduleQuery) []models.Game {
	f.queries = append(f.queries, q)
	return f.games
}

type fakePublisher struct {
	snaps []*publisher.Snapshot
	err   error
}

func (f *fakePublisher) PublishSnapshot(ctx context.Context, snap *publisher.Snapshot) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.snaps = append(f.snaps, snap)
	return "1-0", nil
}

func newTestScheduler(src *fakeSource, pub *fakePublisher) *Scheduler {
	s := NewScheduler("*/15 * * * *", src, pub)
	s.now = func() time.Time { return time.Date(2025, time.October, 5, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestRunSnapshot_PublishesCurrentWeek(t *testing.T) {
	src := &fakeSource{
		current: models.CurrentWeek{Week: 5, SeasonType: models.RegularSeason, Year: 2025},
		games:   []models.Game{{ID: "1"}, {ID: "2"}},
	}
	pub := &fakePublisher{}

	require.NoError(t, newTestScheduler(src, pub).RunSnapshot(context.Background()))

	require.Len(t, src.queries, 1)
	assert.Equal(t, models.ScheduleQuery{Year: 2025, Week: 5, SeasonType: models.RegularSeason}, src.queries[0])
	require.Len(t, pub.snaps, 1)
	assert.Len(t, pub.snaps[0].Games, 2)
	assert.Equal(t, 5, pub.snaps[0].Week)
}

func TestRunSnapshot_YearFallsBackToClock(t *testing.T) {
	src := &fakeSource{
		current: models.CurrentWeek{Week: 2, SeasonType: models.Postseason},
		games:   []models.Game{{ID: "1"}},
	}
	pub := &fakePublisher{}

	require.NoError(t, newTestScheduler(src, pub).RunSnapshot(context.Background()))
	assert.Equal(t, 2025, src.queries[0].Year)
}

func TestRunSnapshot_CurrentWeekOutOfRange(t *testing.T) {
	src := &fakeSource{
		current: models.CurrentWeek{Week: 22, SeasonType: models.SeasonType(7), Year: 2025},
		games:   []models.Game{{ID: "1"}},
	}
	pub := &fakePublisher{}

	require.NoError(t, newTestScheduler(src, pub).RunSnapshot(context.Background()))
	assert.Equal(t, models.ScheduleQuery{Year: 2025, Week: 1, SeasonType: models.RegularSeason}, src.queries[0])
	require.Len(t, pub.snaps, 1)
}

func TestRunSnapshot_EmptyScheduleSkipped(t *testing.T) {
	src := &fakeSource{current: models.CurrentWeek{Week: 1, SeasonType: models.RegularSeason}}
	pub := &fakePublisher{}

	require.NoError(t, newTestScheduler(src, pub).RunSnapshot(context.Background()))
	assert.Empty(t, pub.snaps)
}

func TestRunSnapshot_PublishError(t *testing.T) {
	src := &fakeSource{
		current: models.CurrentWeek{Week: 1, SeasonType: models.RegularSeason},
		games:   []models.Game{{ID: "1"}},
	}
	pub := &fakePublisher{err: errors.New("redis down")}

	err := newTestScheduler(src, pub).RunSnapshot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis down")
}

func TestStart_InvalidSpec(t *testing.T) {
	s := NewScheduler("not a cron line", &fakeSource{}, &fakePublisher{})
	err := s.Start(context.Background(), false)
	assert.Error(t, err)
}

func TestStartStop(t *testing.T) {
	s := NewScheduler("@every 1h", &fakeSource{}, &fakePublisher{})
	require.NoError(t, s.Start(context.Background(), false))
	s.Stop()
}
