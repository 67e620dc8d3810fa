package models

import "strings"

// Game represents one scheduled or completed NFL game as shown on the schedule
type Game struct {
	ID          string   `json:"id"`
	Date        string   `json:"date"`         // Raw upstream timestamp
	DisplayTime string   `json:"display_time"` // Formatted from Date, "TBD" when unknown
	Status      string   `json:"status"`       // Upstream status name, e.g. STATUS_FINAL
	Venue       string   `json:"venue"`
	Broadcasts  []string `json:"broadcasts"` // Raw network names, upstream order, may repeat
	Odds        *Odds    `json:"odds,omitempty"`
	Home        Team     `json:"home"`
	Away        Team     `json:"away"`

	// HasUpstreamID is false when ID was synthesized because the event carried none.
	// Such ids cannot be used to request a game summary.
	HasUpstreamID bool `json:"has_upstream_id"`
}

// Team is one side of a game
type Team struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Abbr     string `json:"abbr"`
	Logo     string `json:"logo"`
	Score    int    `json:"score"`
	HomeAway string `json:"home_away"`
	Record   string `json:"record"` // Win-loss summary, e.g. "10-7"
}

// Odds is the first odds line attached to a game
type Odds struct {
	Provider  string `json:"provider"`
	Details   string `json:"details"`
	Spread    string `json:"spread"`
	OverUnder string `json:"over_under"`
}

// DefaultOddsProvider is used when upstream names no provider
const DefaultOddsProvider = "Odds"

// Side identifies a team within a game
type Side string

const (
	SideNone Side = ""
	SideHome Side = "home"
	SideAway Side = "away"
)

// Outcome describes the result of a game
type Outcome struct {
	Final  bool `json:"final"`
	Winner Side `json:"winner,omitempty"`
	Tie    bool `json:"tie"`
}

// IsFinal returns true if the game is completed.
// Upstream has no state machine, so any status mentioning "final" counts.
func (g *Game) IsFinal() bool {
	return strings.Contains(strings.ToLower(g.Status), "final")
}

// Outcome computes the winner of a final game
func (g *Game) Outcome() Outcome {
	if !g.IsFinal() {
		return Outcome{}
	}

	switch {
	case g.Home.Score > g.Away.Score:
		return Outcome{Final: true, Winner: SideHome}
	case g.Away.Score > g.Home.Score:
		return Outcome{Final: true, Winner: SideAway}
	default:
		return Outcome{Final: true, Tie: true}
	}
}

// Team returns the team playing on the given side
func (g *Game) Team(side Side) (Team, bool) {
	switch side {
	case SideHome:
		return g.Home, true
	case SideAway:
		return g.Away, true
	default:
		return Team{}, false
	}
}

// CanOpenDetails reports whether a summary can be requested for this game
func (g *Game) CanOpenDetails() bool {
	return g.HasUpstreamID && g.ID != ""
}
