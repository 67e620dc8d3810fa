package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"nfl_dashboard/service/internal/client"
	"nfl_dashboard/service/internal/models"
	"nfl_dashboard/service/internal/present"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Service is the schedule source behind the API
type Service interface {
	CurrentWeek(ctx context.Context) models.CurrentWeek
	WeekSchedule(ctx context.Context, q models.ScheduleQuery) []models.Game
	GameSummary(ctx context.Context, gameID string) (models.Summary, error)
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	svc     Service
	now     func() time.Time
	timeout time.Duration
}

// NewHandler creates a new handler with dependencies
func NewHandler(svc Service) *Handler {
	return &Handler{
		svc:     svc,
		now:     time.Now,
		timeout: 30 * time.Second,
	}
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
	// Status is the upstream HTTP status when the failure came from ESPN
	Status int `json:"status,omitempty"`
}

// GameView is a game plus the values derived from it for display
type GameView struct {
	models.Game
	Outcome          models.Outcome     `json:"outcome"`
	PrettyBroadcasts []models.Broadcast `json:"pretty_broadcasts"`
	BroadcastLine    string             `json:"broadcast_line"`
	VenueShort       string             `json:"venue_short"`
	Badge            string             `json:"badge,omitempty"`
	CanOpenDetails   bool               `json:"can_open_details"`
	SummaryURL       string             `json:"summary_url,omitempty"`
}

// NewGameView derives the display fields for a game
func NewGameView(g models.Game) GameView {
	v := GameView{
		Game:             g,
		Outcome:          g.Outcome(),
		PrettyBroadcasts: models.PrettyBroadcasts(g.Broadcasts),
		BroadcastLine:    present.BroadcastLine(g.Broadcasts),
		VenueShort:       present.VenueShort(g.Venue),
		Badge:            present.Badge(&g),
		CanOpenDetails:   g.CanOpenDetails(),
	}
	if v.CanOpenDetails {
		params := url.Values{}
		params.Set("home", g.Home.ID)
		params.Set("away", g.Away.ID)
		v.SummaryURL = fmt.Sprintf("/api/v1/games/%s/summary?%s", url.PathEscape(g.ID), params.Encode())
	}
	return v
}

// SummaryResponse is the matchup detail for one game
type SummaryResponse struct {
	GameID  string              `json:"game_id"`
	Home    *models.SideDetail  `json:"home,omitempty"`
	Away    *models.SideDetail  `json:"away,omitempty"`
	Leaders []present.LeaderRow `json:"leaders,omitempty"`
	// Full is set when no teams were named, keyed by team id
	Full *models.Summary `json:"summary,omitempty"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": h.now().UTC(),
		"service":   "nfl-dashboard",
	})
}

// GetCurrentWeek returns upstream's current week, or the defaults
// GET /api/v1/current-week
func (h *Handler) GetCurrentWeek(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	respondJSON(w, http.StatusOK, h.svc.CurrentWeek(ctx))
}

// GetSchedule returns the games of one week
// GET /api/v1/schedule?year=&week=&seasontype=
// Omitting both week and seasontype selects the current week.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	year, err := parseIntParam(r, "year", h.now().Year())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	week, err := parseIntParam(r, "week", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	seasonType, err := parseIntParam(r, "seasontype", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if !models.ValidYear(h.now(), year) {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("year %d out of range", year), nil)
		return
	}

	q := models.ScheduleQuery{Year: year, Week: week, SeasonType: models.SeasonType(seasonType)}
	switch {
	case week == 0 && seasonType == 0:
		q = h.svc.CurrentWeek(ctx).Query(year)
	case week == 0:
		q.Week = models.DefaultWeek
	case seasonType == 0:
		q.SeasonType = models.DefaultSeasonType
	}

	if err := q.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	games := h.svc.WeekSchedule(ctx, q)
	views := make([]GameView, 0, len(games))
	for _, g := range games {
		views = append(views, NewGameView(g))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"year":        q.Year,
		"week":        q.Week,
		"season_type": q.SeasonType,
		"weeks":       models.Weeks(q.SeasonType),
		"games":       views,
		"count":       len(views),
	})
}

// GetGameSummary returns leaders and injuries for one game
// GET /api/v1/games/{gameID}/summary?home=&away=
func (h *Handler) GetGameSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	gameID := chi.URLParam(r, "gameID")
	if gameID == "" {
		respondError(w, http.StatusBadRequest, "game_id is required", nil)
		return
	}

	summary, err := h.svc.GameSummary(ctx, gameID)
	if err != nil {
		var statusErr *client.StatusError
		if errors.As(err, &statusErr) {
			respondUpstreamError(w, statusErr.StatusCode, err)
			return
		}
		respondError(w, http.StatusBadGateway, "failed to fetch game summary", err)
		return
	}

	resp := SummaryResponse{GameID: gameID}
	homeID := r.URL.Query().Get("home")
	awayID := r.URL.Query().Get("away")
	if homeID == "" && awayID == "" {
		resp.Full = &summary
	} else {
		home, away := summary.Matchup(homeID, awayID)
		resp.Home, resp.Away = &home, &away
		resp.Leaders = present.LeaderRows(away.Leaders, home.Leaders)
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetWeeks lists the selectable weeks for a season type
// GET /api/v1/weeks?seasontype=
func (h *Handler) GetWeeks(w http.ResponseWriter, r *http.Request) {
	seasonType, err := parseIntParam(r, "seasontype", int(models.DefaultSeasonType))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	st := models.SeasonType(seasonType)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"season_type": st,
		"weeks":       models.Weeks(st),
	})
}

// GetYears lists the selectable season years
// GET /api/v1/years
func (h *Handler) GetYears(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"current": now.Year(),
		"years":   models.YearOptions(now),
	})
}

func parseIntParam(r *http.Request, param string, defaultValue int) (int, error) {
	valueStr := r.URL.Query().Get(param)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", param)
	}

	return value, nil
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		log.Error().Err(err).Int("status", status).Msg(message)
	}

	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

func respondUpstreamError(w http.ResponseWriter, upstreamStatus int, err error) {
	log.Warn().Err(err).Int("upstream_status", upstreamStatus).Msg("Upstream request failed")

	respondJSON(w, http.StatusBadGateway, ErrorResponse{
		Error:   http.StatusText(http.StatusBadGateway),
		Message: err.Error(),
		Code:    http.StatusBadGateway,
		Status:  upstreamStatus,
	})
}
