package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"nfl_dashboard/service/internal/dashboard"
	"nfl_dashboard/service/internal/models"
	"nfl_dashboard/service/internal/present"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// renderHeader prints the selection and load status line
func renderHeader(w io.Writer, s dashboard.State) {
	status := "ok"
	if s.Loading {
		status = "loading…"
	}
	fmt.Fprintln(w, "NFL Schedule & Matchups")
	fmt.Fprintf(w, "%s • %d • Week %d of %d   status: %s • games: %d\n",
		s.Query.SeasonType, s.Query.Year, s.Query.Week, len(s.Weeks), status, len(s.Games))
}

// renderSchedule prints one row per game
func renderSchedule(w io.Writer, s dashboard.State) {
	renderHeader(w, s)
	fmt.Fprintln(w)

	if s.Loading {
		fmt.Fprintln(w, "Loading schedule…")
		return
	}
	if len(s.Games) == 0 {
		fmt.Fprintln(w, "No games found for this selection.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tWHEN\tAWAY\t\tHOME\tVENUE\tTV\t")
	for i := range s.Games {
		g := &s.Games[i]
		id := g.ID
		if !g.CanOpenDetails() {
			id = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			id,
			g.DisplayTime,
			present.TeamLabel(g.Away),
			present.Separator(g),
			present.TeamLabel(g.Home),
			present.VenueShort(g.Venue),
			present.BroadcastLine(g.Broadcasts),
			present.Badge(g),
		)
	}
	tw.Flush()
}

// renderMatchup prints the detail panel of the open game
func renderMatchup(w io.Writer, s dashboard.State) {
	g := s.Selected
	if g == nil {
		return
	}

	fmt.Fprintln(w, present.MatchupTitle(g))
	if g.Venue != "" {
		fmt.Fprintf(w, "%s • %s\n", g.DisplayTime, g.Venue)
	} else {
		fmt.Fprintln(w, g.DisplayTime)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Where to watch / stream")
	if broadcasts := models.PrettyBroadcasts(g.Broadcasts); len(broadcasts) > 0 {
		tw := newTable(w)
		fmt.Fprintln(tw, "Network\tStreaming Suggestion")
		for _, b := range broadcasts {
			fmt.Fprintf(tw, "%s\t%s\n", b.Network, b.Streaming)
		}
		tw.Flush()
	} else {
		fmt.Fprintln(w, "TBD")
	}

	fmt.Fprintln(w)
	if g.IsFinal() {
		fmt.Fprintln(w, "Final Score")
		fmt.Fprintf(w, "%s: %d   %s: %d   [%s]\n",
			g.Home.Abbr, g.Home.Score, g.Away.Abbr, g.Away.Score, present.WinnerText(g))
	} else {
		fmt.Fprintln(w, "Betting odds")
		if g.Odds != nil {
			fmt.Fprintf(w, "[%s]  %s  O/U %s\n", g.Odds.Provider, g.Odds.Details, g.Odds.OverUnder)
		} else {
			fmt.Fprintln(w, "No odds available yet.")
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Player matchups (season leaders)")
	switch {
	case s.Detail.Loading:
		fmt.Fprintln(w, "Loading leaders…")
	case s.Detail.Err != nil:
		fmt.Fprintln(w, "Could not load leader data.")
	default:
		tw := newTable(w)
		fmt.Fprintf(tw, "Category\t%s\t%s\n", g.Away.Abbr, g.Home.Abbr)
		for _, row := range present.LeaderRows(s.Detail.Away.Leaders, s.Detail.Home.Leaders) {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Label, row.Away, row.Home)
		}
		tw.Flush()
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Injuries & statuses")
	switch {
	case s.Detail.Loading:
		fmt.Fprintln(w, "Checking injuries…")
	case s.Detail.Err != nil:
		fmt.Fprintf(w, "Error: %v\n", s.Detail.Err)
	default:
		renderInjuries(w, g.Away.Abbr, s.Detail.Away.Injuries)
		renderInjuries(w, g.Home.Abbr, s.Detail.Home.Injuries)
	}
}

func renderInjuries(w io.Writer, team string, rows []models.InjuryEntry) {
	fmt.Fprintf(w, "[%s]\n", team)
	if len(rows) == 0 {
		fmt.Fprintln(w, "No listed injuries.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "Player\tPos\tStatus\tDescription")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.Name,
			present.OrPlaceholder(r.Position),
			present.InjuryStatus(r),
			present.OrPlaceholder(r.Description),
		)
	}
	tw.Flush()
}

// render prints the whole screen: the matchup panel when a game is open,
// the schedule otherwise
func render(w io.Writer, s dashboard.State) {
	fmt.Fprintln(w, strings.Repeat("─", 72))
	if s.Selected != nil {
		renderMatchup(w, s)
		return
	}
	renderSchedule(w, s)
}
