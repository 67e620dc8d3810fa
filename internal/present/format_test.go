package present

import (
	"testing"

	"nfl_dashboard/service/internal/models"

	"github.com/stretchr/testify/assert"
)

func game(status string, home, away int) *models.Game {
	return &models.Game{
		Status: status,
		Home:   models.Team{Abbr: "KC", Score: home, Record: "10-7"},
		Away:   models.Team{Abbr: "BUF", Score: away},
	}
}

func TestWinnerAndFinalBadge(t *testing.T) {
	tests := []struct {
		name   string
		game   *models.Game
		winner string
		badge  string
	}{
		{"home wins", game("STATUS_FINAL", 24, 17), "KC Won", "KC Won: 24 - 17"},
		{"away wins", game("STATUS_FINAL", 10, 31), "BUF Won", "BUF Won: 31 - 10"},
		{"tie", game("STATUS_FINAL", 20, 20), "TIE", "TIE: 20 - 20"},
		{"overtime final", game("STATUS_FINAL_OT", 27, 24), "KC Won", "KC Won: 27 - 24"},
		{"scheduled", game("STATUS_SCHEDULED", 0, 0), "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.winner, WinnerText(tt.game))
			assert.Equal(t, tt.badge, FinalBadge(tt.game))
		})
	}
}

func TestOddsBadge(t *testing.T) {
	g := game("STATUS_SCHEDULED", 0, 0)
	assert.Equal(t, "", OddsBadge(g), "no odds")

	g.Odds = &models.Odds{Provider: "ESPN BET", Details: "KC -3.5", OverUnder: "47.5"}
	assert.Equal(t, "ESPN BET: KC -3.5 • O/U 47.5", OddsBadge(g))
	assert.Equal(t, "ESPN BET: KC -3.5 • O/U 47.5", Badge(g))

	g.Odds.Details = ""
	assert.Equal(t, "", OddsBadge(g), "odds without details are hidden")

	final := game("STATUS_FINAL", 24, 17)
	final.Odds = &models.Odds{Provider: "ESPN BET", Details: "KC -3.5"}
	assert.Equal(t, "", OddsBadge(final))
	assert.Equal(t, "KC Won: 24 - 17", Badge(final))
}

func TestVenueShort(t *testing.T) {
	assert.Equal(t, "Arrowhead Stadium", VenueShort("Arrowhead Stadium (Kansas City, MO)"))
	assert.Equal(t, "Lambeau Field", VenueShort("Lambeau Field"))
	assert.Equal(t, "", VenueShort(""))
}

func TestBroadcastLine(t *testing.T) {
	assert.Equal(t, "CBS • Paramount+", BroadcastLine([]string{"CBS", "Paramount+"}))
	assert.Equal(t, "—", BroadcastLine(nil))
}

func TestTeamLabelsAndTitle(t *testing.T) {
	g := game("STATUS_SCHEDULED", 0, 0)
	assert.Equal(t, "KC (10-7)", TeamLabel(g.Home))
	assert.Equal(t, "BUF", TeamLabel(g.Away))
	assert.Equal(t, "BUF @ KC", MatchupTitle(g))
	assert.Equal(t, "vs", Separator(g))
	assert.Equal(t, "Final", Separator(game("STATUS_FINAL", 1, 0)))
}

func TestLeaderRows(t *testing.T) {
	away := models.TeamLeaders{Passing: &models.Leader{Name: "Josh Allen", Value: "3,731 YDS"}}
	home := models.TeamLeaders{Rushing: &models.Leader{Name: "Isiah Pacheco", Value: "935 YDS"}}

	rows := LeaderRows(away, home)
	assert.Equal(t, []LeaderRow{
		{Label: LabelPassing, Away: "Josh Allen — 3,731 YDS", Home: "—"},
		{Label: LabelRushing, Away: "—", Home: "Isiah Pacheco — 935 YDS"},
		{Label: LabelReceiving, Away: "—", Home: "—"},
	}, rows)
}

func TestInjuryStatus(t *testing.T) {
	assert.Equal(t, "OUT", InjuryStatus(models.InjuryEntry{Status: "Out"}))
	assert.Equal(t, "Questionable", InjuryStatus(models.InjuryEntry{Status: "Questionable"}))
	assert.Equal(t, "—", InjuryStatus(models.InjuryEntry{}))
	assert.Equal(t, "ab", OrPlaceholder("ab"))
	assert.Equal(t, "—", OrPlaceholder(""))
}
