// Package normalize turns raw scoreboard and summary payloads into stable
// records. Missing or mistyped upstream fields are absorbed as defaults and
// never reported as errors.
package normalize

import (
	"strings"
	"time"

	"nfl_dashboard/service/internal/models"

	"github.com/google/uuid"
)

// TBD is shown when a game has no usable start time
const TBD = "TBD"

// DisplayTimeFormat renders start times as e.g. "Sun, Sep 7, 1:00 PM"
const DisplayTimeFormat = "Mon, Jan 2, 3:04 PM"

var upstreamTimeLayouts = []string{
	"2006-01-02T15:04Z07:00",
	time.RFC3339,
}

// IDGenerator produces identifiers for events that arrive without one
type IDGenerator interface {
	NewID() string
}

// IDFunc adapts a function to IDGenerator
type IDFunc func() string

// NewID calls f
func (f IDFunc) NewID() string { return f() }

// UUIDGenerator issues random version 4 UUIDs
type UUIDGenerator struct{}

// NewID returns a new random UUID string
func (UUIDGenerator) NewID() string { return uuid.NewString() }

// Normalizer converts scoreboard payloads into games
type Normalizer struct {
	ids IDGenerator
	loc *time.Location
}

// Option configures a Normalizer
type Option func(*Normalizer)

// WithIDGenerator sets the fallback identifier source
func WithIDGenerator(g IDGenerator) Option {
	return func(n *Normalizer) {
		if g != nil {
			n.ids = g
		}
	}
}

// WithLocation sets the time zone used for display times
func WithLocation(loc *time.Location) Option {
	return func(n *Normalizer) {
		if loc != nil {
			n.loc = loc
		}
	}
}

// New creates a Normalizer. Defaults are random UUIDs and the local time zone.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		ids: UUIDGenerator{},
		loc: time.Local,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// CountEvents returns how many events a scoreboard payload lists
func CountEvents(raw map[string]interface{}) int {
	return len(digArray(raw, "events"))
}

// Schedule converts a scoreboard payload into games, in upstream order.
// Events without both a home and an away competitor are dropped.
func (n *Normalizer) Schedule(raw map[string]interface{}) []models.Game {
	events := digArray(raw, "events")
	games := make([]models.Game, 0, len(events))

	for _, e := range events {
		game, ok := n.game(e)
		if !ok {
			continue
		}
		games = append(games, game)
	}

	return games
}

func (n *Normalizer) game(e interface{}) (models.Game, bool) {
	comp := dig(e, "competitions", 0)

	var home, away interface{}
	for _, c := range digArray(comp, "competitors") {
		switch digString(c, "homeAway") {
		case "home":
			if home == nil {
				home = c
			}
		case "away":
			if away == nil {
				away = c
			}
		}
	}
	if home == nil || away == nil {
		return models.Game{}, false
	}

	date := digString(e, "date")
	game := models.Game{
		ID:            digString(e, "id"),
		Date:          date,
		DisplayTime:   n.displayTime(date),
		Status:        digString(e, "status", "type", "name"),
		Venue:         venue(comp),
		Broadcasts:    broadcasts(comp),
		Odds:          odds(comp),
		Home:          team(home),
		Away:          team(away),
		HasUpstreamID: true,
	}

	if game.ID == "" {
		game.ID = n.ids.NewID()
		game.HasUpstreamID = false
	}

	return game, true
}

func (n *Normalizer) displayTime(date string) string {
	if date == "" {
		return TBD
	}
	for _, layout := range upstreamTimeLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.In(n.loc).Format(DisplayTimeFormat)
		}
	}
	return TBD
}

func team(c interface{}) models.Team {
	score, _ := asInt(dig(c, "score"))

	return models.Team{
		ID:       digString(c, "team", "id"),
		Name:     digString(c, "team", "displayName"),
		Abbr:     digString(c, "team", "abbreviation"),
		Logo:     firstNonEmpty(digString(c, "team", "logo"), digString(c, "team", "logos", 0, "href")),
		Score:    score,
		HomeAway: digString(c, "homeAway"),
		Record:   digString(c, "records", 0, "summary"),
	}
}

// FormatVenue renders "name (city, state)", degrading as parts go missing
func FormatVenue(name, city, state string) string {
	if name == "" {
		return ""
	}
	if city == "" {
		return name
	}
	if state == "" {
		return name + " (" + city + ")"
	}
	return name + " (" + city + ", " + state + ")"
}

func venue(comp interface{}) string {
	return FormatVenue(
		digString(comp, "venue", "fullName"),
		digString(comp, "venue", "address", "city"),
		digString(comp, "venue", "address", "state"),
	)
}

// broadcasts lists national names first, then market-specific entries
func broadcasts(comp interface{}) []string {
	out := []string{}

	for _, b := range digArray(comp, "broadcasts") {
		if name := digString(b, "names", 0); name != "" {
			out = append(out, name)
		}
	}

	for _, g := range digArray(comp, "geoBroadcasts") {
		label := strings.TrimSpace(digString(g, "market", "type") + " " + digString(g, "media", "shortName"))
		if label != "" {
			out = append(out, label)
		}
	}

	return out
}

func odds(comp interface{}) *models.Odds {
	o, ok := dig(comp, "odds", 0).(map[string]interface{})
	if !ok {
		return nil
	}

	return &models.Odds{
		Provider:  firstNonEmpty(digString(o, "provider", "name"), models.DefaultOddsProvider),
		Details:   digString(o, "details"),
		Spread:    lineString(o["spread"]),
		OverUnder: lineString(o["overUnder"]),
	}
}
