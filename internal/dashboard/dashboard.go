// Package dashboard holds the view state of the schedule dashboard: the
// selected week, the loaded games and the open game's detail.
//
// Every schedule fetch and every summary fetch is tagged with a generation
// number. A result is applied only while its generation is still current, so
// a slow response for an earlier selection can never overwrite state that
// belongs to a newer one.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"nfl_dashboard/service/internal/metrics"
	"nfl_dashboard/service/internal/models"

	"github.com/rs/zerolog/log"
)

var (
	ErrNotReady      = errors.New("current week not loaded yet")
	ErrClosed        = errors.New("dashboard is closed")
	ErrGameNotFound  = errors.New("game not found in current schedule")
	ErrNoUpstreamID  = errors.New("game has no upstream id, details unavailable")
	ErrInvalidYear   = errors.New("year out of range")
	ErrInvalidWeek   = errors.New("week out of range")
	ErrInvalidSeason = errors.New("unknown season type")
)

// Service is the data source behind the dashboard
type Service interface {
	CurrentWeek(ctx context.Context) models.CurrentWeek
	WeekSchedule(ctx context.Context, q models.ScheduleQuery) []models.Game
	GameSummary(ctx context.Context, gameID string) (models.Summary, error)
}

// Detail is the state of the open game's matchup panel
type Detail struct {
	Loading bool
	Err     error
	Home    models.SideDetail
	Away    models.SideDetail
}

// State is a point-in-time copy of the dashboard
type State struct {
	Version  uint64 // Increases with every applied transition
	Ready    bool   // Current week resolved and selectors usable
	Query    models.ScheduleQuery
	Years    []int
	Weeks    []int
	Loading  bool
	Games    []models.Game
	Selected *models.Game
	Detail   Detail
}

// Option configures a Dashboard
type Option func(*Dashboard)

// WithOnChange registers a callback invoked with a fresh copy of the state
// after every applied transition. It is called without locks held, so copies
// may arrive out of order; compare Version to keep the newest.
func WithOnChange(fn func(State)) Option {
	return func(d *Dashboard) { d.onChange = fn }
}

// WithClock overrides the clock used for the default year and year options
func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) { d.now = now }
}

// Dashboard is the state container
type Dashboard struct {
	svc      Service
	now      func() time.Time
	onChange func(State)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu             sync.Mutex
	state          State
	closed         bool
	scheduleGen    uint64
	detailGen      uint64
	cancelSchedule context.CancelFunc
	cancelDetail   context.CancelFunc
}

// New creates a dashboard. Call Start to resolve the current week.
func New(svc Service, opts ...Option) *Dashboard {
	d := &Dashboard{
		svc: svc,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.ctx, d.cancel = context.WithCancel(context.Background())
	d.state.Games = []models.Game{}
	d.state.Years = models.YearOptions(d.now())
	return d
}

// Start resolves the current week, selects it and begins loading its schedule.
// The year defaults to the current calendar year.
func (d *Dashboard) Start(ctx context.Context) error {
	cw := d.svc.CurrentWeek(ctx)

	return d.update(true, func(s *State) (bool, error) {
		s.Query = cw.Query(d.now().Year())
		s.Ready = true
		return true, nil
	})
}

// SetYear selects a season year from the year options
func (d *Dashboard) SetYear(year int) error {
	return d.update(false, func(s *State) (bool, error) {
		if !contains(s.Years, year) {
			return false, fmt.Errorf("%w: %d", ErrInvalidYear, year)
		}
		s.Query.Year = year
		return true, nil
	})
}

// SetWeek selects a week within the current season type
func (d *Dashboard) SetWeek(week int) error {
	return d.update(false, func(s *State) (bool, error) {
		if week < 1 || week > models.WeekCount(s.Query.SeasonType) {
			return false, fmt.Errorf("%w: %d", ErrInvalidWeek, week)
		}
		s.Query.Week = week
		return true, nil
	})
}

// SetSeasonType selects a season type. A week beyond the new season type's
// length is reset to week 1.
func (d *Dashboard) SetSeasonType(st models.SeasonType) error {
	return d.update(false, func(s *State) (bool, error) {
		if !st.Valid() {
			return false, fmt.Errorf("%w: %d", ErrInvalidSeason, st)
		}
		s.Query.SeasonType = st
		if s.Query.Week > models.WeekCount(st) {
			s.Query.Week = models.DefaultWeek
		}
		return true, nil
	})
}

// Refresh reloads the schedule, and the open game's detail if any
func (d *Dashboard) Refresh() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	if !d.state.Ready {
		d.mu.Unlock()
		return ErrNotReady
	}
	d.loadScheduleLocked()
	if d.state.Selected != nil {
		d.loadDetailLocked()
	}
	snap := d.snapshotLocked()
	d.mu.Unlock()

	d.notify(snap)
	return nil
}

// OpenGame opens the matchup panel for a game of the loaded schedule
func (d *Dashboard) OpenGame(gameID string) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}

	var game *models.Game
	for i := range d.state.Games {
		if d.state.Games[i].ID == gameID {
			g := d.state.Games[i]
			game = &g
			break
		}
	}
	if game == nil {
		d.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	if !game.CanOpenDetails() {
		d.mu.Unlock()
		return ErrNoUpstreamID
	}

	d.state.Selected = game
	d.loadDetailLocked()
	snap := d.snapshotLocked()
	d.mu.Unlock()

	d.notify(snap)
	return nil
}

// CloseGame closes the matchup panel. A summary still in flight is ignored.
func (d *Dashboard) CloseGame() {
	d.mu.Lock()
	if d.closed || d.state.Selected == nil {
		d.mu.Unlock()
		return
	}
	d.detailGen++
	if d.cancelDetail != nil {
		d.cancelDetail()
		d.cancelDetail = nil
	}
	d.state.Selected = nil
	d.state.Detail = Detail{}
	snap := d.snapshotLocked()
	d.mu.Unlock()

	d.notify(snap)
}

// State returns a copy of the current state
func (d *Dashboard) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.copyLocked()
}

// Close tears the dashboard down. Fetches still in flight are cancelled and
// their results dropped; Close returns once they have finished.
func (d *Dashboard) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		d.scheduleGen++
		d.detailGen++
		d.cancel()
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// update applies a selector transition and reloads the schedule when the
// query changed
func (d *Dashboard) update(start bool, fn func(s *State) (bool, error)) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	if !start && !d.state.Ready {
		d.mu.Unlock()
		return ErrNotReady
	}

	before := d.state.Query
	wasReady := d.state.Ready

	changed, err := fn(&d.state)
	if err != nil {
		d.mu.Unlock()
		return err
	}
	if wasReady && (!changed || d.state.Query == before) {
		d.mu.Unlock()
		return nil
	}

	d.state.Weeks = models.Weeks(d.state.Query.SeasonType)
	d.loadScheduleLocked()
	snap := d.snapshotLocked()
	d.mu.Unlock()

	d.notify(snap)
	return nil
}

func (d *Dashboard) loadScheduleLocked() {
	d.scheduleGen++
	gen := d.scheduleGen
	if d.cancelSchedule != nil {
		d.cancelSchedule()
	}
	ctx, cancel := context.WithCancel(d.ctx)
	d.cancelSchedule = cancel

	q := d.state.Query
	d.state.Loading = true

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()

		games := d.svc.WeekSchedule(ctx, q)
		d.applySchedule(gen, q, games)
	}()
}

func (d *Dashboard) applySchedule(gen uint64, q models.ScheduleQuery, games []models.Game) {
	d.mu.Lock()
	if gen != d.scheduleGen {
		d.mu.Unlock()
		metrics.RecordStaleResult("schedule")
		log.Debug().
			Int("year", q.Year).
			Int("week", q.Week).
			Msg("Discarding stale schedule result")
		return
	}

	if games == nil {
		games = []models.Game{}
	}
	d.state.Games = games
	d.state.Loading = false
	d.cancelSchedule = nil
	snap := d.snapshotLocked()
	d.mu.Unlock()

	d.notify(snap)
}

func (d *Dashboard) loadDetailLocked() {
	d.detailGen++
	gen := d.detailGen
	if d.cancelDetail != nil {
		d.cancelDetail()
	}
	ctx, cancel := context.WithCancel(d.ctx)
	d.cancelDetail = cancel

	game := *d.state.Selected
	home, away := models.NewSummary().Matchup(game.Home.ID, game.Away.ID)
	d.state.Detail = Detail{Loading: true, Home: home, Away: away}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()

		summary, err := d.svc.GameSummary(ctx, game.ID)
		d.applyDetail(gen, game, summary, err)
	}()
}

func (d *Dashboard) applyDetail(gen uint64, game models.Game, summary models.Summary, err error) {
	d.mu.Lock()
	if gen != d.detailGen {
		d.mu.Unlock()
		metrics.RecordStaleResult("summary")
		log.Debug().Str("game_id", game.ID).Msg("Discarding stale summary result")
		return
	}

	detail := Detail{}
	if err != nil {
		log.Warn().Err(err).Str("game_id", game.ID).Msg("Failed to load matchup details")
		detail.Err = err
		summary = models.NewSummary()
	}
	detail.Home, detail.Away = summary.Matchup(game.Home.ID, game.Away.ID)

	d.state.Detail = detail
	d.cancelDetail = nil
	snap := d.snapshotLocked()
	d.mu.Unlock()

	d.notify(snap)
}

// snapshotLocked records a transition and copies the resulting state
func (d *Dashboard) snapshotLocked() State {
	d.state.Version++
	return d.copyLocked()
}

func (d *Dashboard) copyLocked() State {
	s := d.state
	s.Games = append([]models.Game(nil), d.state.Games...)
	if s.Games == nil {
		s.Games = []models.Game{}
	}
	s.Years = append([]int(nil), d.state.Years...)
	s.Weeks = append([]int(nil), d.state.Weeks...)
	if d.state.Selected != nil {
		g := *d.state.Selected
		s.Selected = &g
	}
	return s
}

func (d *Dashboard) notify(s State) {
	if d.onChange != nil {
		d.onChange(s)
	}
}

func contains(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
