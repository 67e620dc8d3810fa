package models

import "strings"

// NotAvailable is used for missing names, positions and statuses
const NotAvailable = "N/A"

// Leader is the top player of one statistical category for a team.
// Value is upstream's display string; whether it is a season total or a
// per-game average depends on the category.
type Leader struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// TeamLeaders holds one leader per tracked category, nil when absent
type TeamLeaders struct {
	Passing   *Leader `json:"passing"`
	Rushing   *Leader `json:"rushing"`
	Receiving *Leader `json:"receiving"`
}

// InjuryEntry is one player on a team's injury report
type InjuryEntry struct {
	Name        string `json:"name"`
	Position    string `json:"position"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// IsOut returns true if the player is ruled out
func (e InjuryEntry) IsOut() bool {
	return strings.Contains(strings.ToLower(e.Status), "out")
}

// Summary is the per-game detail keyed by team id
type Summary struct {
	Leaders  map[string]TeamLeaders   `json:"leaders"`
	Injuries map[string][]InjuryEntry `json:"injuries"`
}

// NewSummary returns an empty summary with initialized maps
func NewSummary() Summary {
	return Summary{
		Leaders:  make(map[string]TeamLeaders),
		Injuries: make(map[string][]InjuryEntry),
	}
}

// LeadersFor returns the leaders for a team, or an all-nil placeholder
func (s Summary) LeadersFor(teamID string) TeamLeaders {
	if l, ok := s.Leaders[teamID]; ok {
		return l
	}
	return TeamLeaders{}
}

// InjuriesFor returns the injury report for a team, never nil
func (s Summary) InjuriesFor(teamID string) []InjuryEntry {
	if entries, ok := s.Injuries[teamID]; ok && entries != nil {
		return entries
	}
	return []InjuryEntry{}
}

// SideDetail is the detail view for one team of an opened game
type SideDetail struct {
	TeamID   string        `json:"team_id"`
	Leaders  TeamLeaders   `json:"leaders"`
	Injuries []InjuryEntry `json:"injuries"`
}

// Matchup splits a summary into home and away detail
func (s Summary) Matchup(homeID, awayID string) (home, away SideDetail) {
	home = SideDetail{TeamID: homeID, Leaders: s.LeadersFor(homeID), Injuries: s.InjuriesFor(homeID)}
	away = SideDetail{TeamID: awayID, Leaders: s.LeadersFor(awayID), Injuries: s.InjuriesFor(awayID)}
	return home, away
}
