package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGame_Outcome(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		home      int
		away      int
		want      Outcome
		wantFinal bool
	}{
		{"home wins", "STATUS_FINAL", 24, 17, Outcome{Final: true, Winner: SideHome}, true},
		{"away wins", "STATUS_FINAL", 10, 31, Outcome{Final: true, Winner: SideAway}, true},
		{"tie", "STATUS_FINAL", 20, 20, Outcome{Final: true, Tie: true}, true},
		{"overtime final", "STATUS_FINAL_OVERTIME", 27, 24, Outcome{Final: true, Winner: SideHome}, true},
		{"lowercase final", "final", 3, 0, Outcome{Final: true, Winner: SideHome}, true},
		{"scheduled", "STATUS_SCHEDULED", 24, 17, Outcome{}, false},
		{"in progress", "STATUS_IN_PROGRESS", 7, 0, Outcome{}, false},
		{"empty status", "", 0, 0, Outcome{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Game{
				Status: tt.status,
				Home:   Team{Score: tt.home},
				Away:   Team{Score: tt.away},
			}
			assert.Equal(t, tt.wantFinal, g.IsFinal())
			assert.Equal(t, tt.want, g.Outcome())
		})
	}
}

func TestGame_CanOpenDetails(t *testing.T) {
	assert.True(t, (&Game{ID: "401671789", HasUpstreamID: true}).CanOpenDetails())
	assert.False(t, (&Game{ID: "b7f1c2", HasUpstreamID: false}).CanOpenDetails(), "synthesized ids must not be queried")
	assert.False(t, (&Game{HasUpstreamID: true}).CanOpenDetails())
}

func TestGame_Team(t *testing.T) {
	g := &Game{Home: Team{Abbr: "KC"}, Away: Team{Abbr: "BAL"}}

	home, ok := g.Team(SideHome)
	require.True(t, ok)
	assert.Equal(t, "KC", home.Abbr)

	away, ok := g.Team(SideAway)
	require.True(t, ok)
	assert.Equal(t, "BAL", away.Abbr)

	_, ok = g.Team(SideNone)
	assert.False(t, ok)
}

func TestStreamingFor(t *testing.T) {
	tests := map[string]string{
		"CBS":            "CBS (Paramount+)",
		"cbs":            "CBS (Paramount+)",
		"FOX":            "FOX (Fox Sports app)",
		"NBC":            "NBC (Peacock)",
		"ESPN2":          "ESPN/ESPN2 (ESPN app)",
		"ESPN/ABC":       "ESPN/ESPN2 (ESPN app)",
		"ABC":            "ABC (ESPN app)",
		"NFL NET":        "NFL NET",
		"NFLN":           "NFL Network (NFL+)",
		"Prime Video":    "Prime Video",
		"Amazon":         "Prime Video",
		"Home KMBC":      "Home KMBC",
		"Away CBS 13":    "CBS (Paramount+)",
		"":               Placeholder,
		"Netflix":        "Netflix",
		"fox deportes":   "FOX (Fox Sports app)",
		"Peacock / NBC":  "NBC (Peacock)",
		"YouTube TV ABC": "ABC (ESPN app)",
	}

	for in, want := range tests {
		assert.Equal(t, want, StreamingFor(in), "network %q", in)
	}
}

func TestPrettyBroadcasts_DedupKeepsCaseVariants(t *testing.T) {
	got := PrettyBroadcasts([]string{"CBS", "cbs", "FOX", "CBS"})

	require.Len(t, got, 3)
	assert.Equal(t, []Broadcast{
		{Network: "CBS", Streaming: "CBS (Paramount+)"},
		{Network: "cbs", Streaming: "CBS (Paramount+)"},
		{Network: "FOX", Streaming: "FOX (Fox Sports app)"},
	}, got)
}

func TestPrettyBroadcasts_Empty(t *testing.T) {
	assert.Empty(t, PrettyBroadcasts(nil))
	assert.NotNil(t, PrettyBroadcasts(nil))
}

func TestWeekCount(t *testing.T) {
	assert.Equal(t, 4, WeekCount(Preseason))
	assert.Equal(t, 18, WeekCount(RegularSeason))
	assert.Equal(t, 5, WeekCount(Postseason))
	assert.Equal(t, 4, WeekCount(SeasonType(99)), "unknown season types use the default branch")
	assert.Equal(t, 4, WeekCount(SeasonType(0)))

	assert.Equal(t, []int{1, 2, 3, 4, 5}, Weeks(Postseason))
	assert.Len(t, Weeks(RegularSeason), 18)
}

func TestYearOptions(t *testing.T) {
	now := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []int{2024, 2025, 2026, 2027, 2028}, YearOptions(now))
}

func TestValidYear(t *testing.T) {
	now := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	for _, y := range YearOptions(now) {
		assert.True(t, ValidYear(now, y), y)
	}
	assert.False(t, ValidYear(now, 2023))
	assert.False(t, ValidYear(now, 2029))
	assert.False(t, ValidYear(now, 1999))
}

func TestCurrentWeek_Query(t *testing.T) {
	tests := []struct {
		name string
		cw   CurrentWeek
		want ScheduleQuery
	}{
		{"in range", CurrentWeek{Week: 7, SeasonType: RegularSeason}, ScheduleQuery{Year: 2025, Week: 7, SeasonType: RegularSeason}},
		{"week past regular season", CurrentWeek{Week: 19, SeasonType: RegularSeason}, ScheduleQuery{Year: 2025, Week: 1, SeasonType: RegularSeason}},
		{"week past postseason", CurrentWeek{Week: 6, SeasonType: Postseason}, ScheduleQuery{Year: 2025, Week: 1, SeasonType: Postseason}},
		{"week zero", CurrentWeek{Week: 0, SeasonType: Preseason}, ScheduleQuery{Year: 2025, Week: 1, SeasonType: Preseason}},
		{"unknown season type", CurrentWeek{Week: 3, SeasonType: SeasonType(4)}, ScheduleQuery{Year: 2025, Week: 3, SeasonType: RegularSeason}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.cw.Query(2025)
			assert.Equal(t, tt.want, q)
			assert.NoError(t, q.Validate())
		})
	}
}

func TestScheduleQuery_Validate(t *testing.T) {
	assert.NoError(t, ScheduleQuery{Year: 2025, Week: 18, SeasonType: RegularSeason}.Validate())
	assert.NoError(t, ScheduleQuery{Year: 2025, Week: 5, SeasonType: Postseason}.Validate())
	assert.Error(t, ScheduleQuery{Year: 2025, Week: 6, SeasonType: Postseason}.Validate())
	assert.Error(t, ScheduleQuery{Year: 2025, Week: 0, SeasonType: RegularSeason}.Validate())
	assert.Error(t, ScheduleQuery{Year: 2025, Week: 1, SeasonType: SeasonType(4)}.Validate())
	assert.Error(t, ScheduleQuery{Year: 0, Week: 1, SeasonType: Preseason}.Validate())
}

func TestSummary_Lookups(t *testing.T) {
	s := NewSummary()
	s.Leaders["12"] = TeamLeaders{Passing: &Leader{Name: "Patrick Mahomes", Value: "291 YDS"}}
	s.Injuries["12"] = []InjuryEntry{{Name: "Isiah Pacheco", Status: "Out"}}

	assert.Equal(t, "Patrick Mahomes", s.LeadersFor("12").Passing.Name)
	assert.Equal(t, TeamLeaders{}, s.LeadersFor("33"), "missing team gets an all-nil placeholder")
	assert.Len(t, s.InjuriesFor("12"), 1)

	missing := s.InjuriesFor("33")
	assert.NotNil(t, missing)
	assert.Empty(t, missing)

	home, away := s.Matchup("12", "33")
	assert.Equal(t, "12", home.TeamID)
	assert.NotNil(t, home.Leaders.Passing)
	assert.Nil(t, away.Leaders.Passing)
	assert.Empty(t, away.Injuries)
}

func TestInjuryEntry_IsOut(t *testing.T) {
	assert.True(t, InjuryEntry{Status: "Out"}.IsOut())
	assert.True(t, InjuryEntry{Status: "OUT"}.IsOut())
	assert.False(t, InjuryEntry{Status: "Questionable"}.IsOut())
	assert.False(t, InjuryEntry{}.IsOut())
}
