// Package present turns normalized games and summaries into display strings
// shared by the terminal dashboard and the JSON API.
package present

import (
	"fmt"
	"strings"

	"nfl_dashboard/service/internal/models"
)

// BroadcastSeparator joins network names on the schedule list
const BroadcastSeparator = " • "

// Tie is the winner text for a final game with equal scores
const Tie = "TIE"

// Leader row labels in display order
const (
	LabelPassing   = "QB (Passing)"
	LabelRushing   = "RB1 (Rushing)"
	LabelReceiving = "WR1 (Receiving)"
)

// OrPlaceholder returns s, or the placeholder when s is empty
func OrPlaceholder(s string) string {
	if s == "" {
		return models.Placeholder
	}
	return s
}

// WinnerText returns "<abbr> Won" for the winning side or "TIE".
// Non-final games return an empty string.
func WinnerText(g *models.Game) string {
	o := g.Outcome()
	if !o.Final {
		return ""
	}
	if t, ok := g.Team(o.Winner); ok {
		return t.Abbr + " Won"
	}
	return Tie
}

// FinalBadge renders the result of a final game with the winning score first,
// e.g. "KC Won: 24 - 17". Non-final games return an empty string.
func FinalBadge(g *models.Game) string {
	text := WinnerText(g)
	if text == "" {
		return ""
	}
	hi, lo := g.Home.Score, g.Away.Score
	if lo > hi {
		hi, lo = lo, hi
	}
	return fmt.Sprintf("%s: %d - %d", text, hi, lo)
}

// OddsBadge renders the odds line for a game that has not finished, e.g.
// "ESPN BET: KC -3.5 • O/U 47.5". Games without odds details return "".
func OddsBadge(g *models.Game) string {
	if g.IsFinal() || g.Odds == nil || g.Odds.Details == "" {
		return ""
	}
	return fmt.Sprintf("%s: %s%sO/U %s", g.Odds.Provider, g.Odds.Details, BroadcastSeparator, g.Odds.OverUnder)
}

// Badge returns the final badge for completed games and the odds badge otherwise
func Badge(g *models.Game) string {
	if b := FinalBadge(g); b != "" {
		return b
	}
	return OddsBadge(g)
}

// VenueShort drops the "(City, ST)" suffix from a formatted venue
func VenueShort(venue string) string {
	if i := strings.Index(venue, "("); i >= 0 {
		venue = venue[:i]
	}
	return strings.TrimSpace(venue)
}

// BroadcastLine joins raw network names, or returns the placeholder
func BroadcastLine(networks []string) string {
	if len(networks) == 0 {
		return models.Placeholder
	}
	return strings.Join(networks, BroadcastSeparator)
}

// TeamLabel renders "KC (10-7)", or just the abbreviation without a record
func TeamLabel(t models.Team) string {
	if t.Record == "" {
		return t.Abbr
	}
	return fmt.Sprintf("%s (%s)", t.Abbr, t.Record)
}

// MatchupTitle renders "KC @ BUF"
func MatchupTitle(g *models.Game) string {
	return fmt.Sprintf("%s @ %s", g.Away.Abbr, g.Home.Abbr)
}

// Separator between the teams: "Final" once the game is over, "vs" before
func Separator(g *models.Game) string {
	if g.IsFinal() {
		return "Final"
	}
	return "vs"
}

// LeaderCell renders "name — value", or the placeholder for a missing leader
func LeaderCell(l *models.Leader) string {
	if l == nil {
		return models.Placeholder
	}
	return fmt.Sprintf("%s %s %s", l.Name, models.Placeholder, l.Value)
}

// LeaderRow is one category row of the matchup leaders table
type LeaderRow struct {
	Label string `json:"label"`
	Away  string `json:"away"`
	Home  string `json:"home"`
}

// LeaderRows renders the passing, rushing and receiving rows for both sides
func LeaderRows(away, home models.TeamLeaders) []LeaderRow {
	return []LeaderRow{
		{Label: LabelPassing, Away: LeaderCell(away.Passing), Home: LeaderCell(home.Passing)},
		{Label: LabelRushing, Away: LeaderCell(away.Rushing), Home: LeaderCell(home.Rushing)},
		{Label: LabelReceiving, Away: LeaderCell(away.Receiving), Home: LeaderCell(home.Receiving)},
	}
}

// InjuryStatus renders an injury status, upper-cased when the player is out
func InjuryStatus(e models.InjuryEntry) string {
	if e.Status == "" {
		return models.Placeholder
	}
	if e.IsOut() {
		return strings.ToUpper(e.Status)
	}
	return e.Status
}
