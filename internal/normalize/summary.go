package normalize

import (
	"nfl_dashboard/service/internal/models"
)

// Upstream category names tracked per team
const (
	CategoryPassing   = "passingYards"
	CategoryRushing   = "rushingYards"
	CategoryReceiving = "receivingYards"
)

// Summary converts a game summary payload into per-team leaders and injuries.
// Blocks without a team id are skipped.
func Summary(raw map[string]interface{}) models.Summary {
	s := models.NewSummary()

	for _, block := range digArray(raw, "leaders") {
		teamID := digString(block, "team", "id")
		if teamID == "" {
			continue
		}
		s.Leaders[teamID] = teamLeaders(block)
	}

	for _, block := range digArray(raw, "injuries") {
		teamID := digString(block, "team", "id")
		if teamID == "" {
			continue
		}

		entries := []models.InjuryEntry{}
		for _, p := range digArray(block, "injuries") {
			entries = append(entries, injury(p))
		}
		s.Injuries[teamID] = entries
	}

	return s
}

func teamLeaders(block interface{}) models.TeamLeaders {
	var tl models.TeamLeaders

	for _, category := range digArray(block, "leaders") {
		top := dig(category, "leaders", 0)
		if top == nil {
			continue
		}

		leader := &models.Leader{
			Name:  firstNonEmpty(digString(top, "athlete", "displayName"), models.NotAvailable),
			Value: firstNonEmpty(digString(top, "displayValue"), models.Placeholder),
		}

		switch digString(category, "name") {
		case CategoryPassing:
			tl.Passing = leader
		case CategoryRushing:
			tl.Rushing = leader
		case CategoryReceiving:
			tl.Receiving = leader
		}
	}

	return tl
}

func injury(p interface{}) models.InjuryEntry {
	return models.InjuryEntry{
		Name: firstNonEmpty(
			digString(p, "athlete", "displayName"),
			digString(p, "fullName"),
			models.NotAvailable,
		),
		Position: firstNonEmpty(digString(p, "athlete", "position", "abbreviation"), models.NotAvailable),
		Status:   firstNonEmpty(digString(p, "status"), models.NotAvailable),
		Description: firstNonEmpty(
			digString(p, "details", "type"),
			digString(p, "details", "location"),
			digString(p, "type", "description"),
			models.Placeholder,
		),
	}
}

// CurrentWeek reads the league's current week from a bare scoreboard payload.
// Missing values fall back to week 1 of the regular season.
func CurrentWeek(raw map[string]interface{}) models.CurrentWeek {
	cw := models.CurrentWeek{
		Week:       models.DefaultWeek,
		SeasonType: models.DefaultSeasonType,
	}

	if n, ok := asInt(dig(raw, "week", "number")); ok && n >= 1 {
		cw.Week = n
	}

	if n, ok := asInt(dig(raw, "season", "year")); ok && n > 0 {
		cw.Year = n
	}

	seasonType := dig(raw, "season", "type")
	if obj, ok := seasonType.(map[string]interface{}); ok {
		// Some scoreboards nest the type as {"type": 2, "name": "Regular Season"}
		seasonType = obj["type"]
	}
	if f, ok := asNumber(seasonType); ok && models.SeasonType(f).Valid() {
		cw.SeasonType = models.SeasonType(f)
	}

	return cw
}
