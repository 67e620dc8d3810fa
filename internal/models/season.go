package models

import (
	"fmt"
	"time"
)

// SeasonType is the phase of the league year as numbered upstream
type SeasonType int

const (
	Preseason     SeasonType = 1
	RegularSeason SeasonType = 2
	Postseason    SeasonType = 3
)

// Defaults used when the current week cannot be determined
const (
	DefaultWeek       = 1
	DefaultSeasonType = RegularSeason
)

// Valid returns true for the three known season types
func (s SeasonType) Valid() bool {
	return s == Preseason || s == RegularSeason || s == Postseason
}

func (s SeasonType) String() string {
	switch s {
	case Preseason:
		return "Preseason"
	case RegularSeason:
		return "Regular"
	case Postseason:
		return "Postseason"
	default:
		return fmt.Sprintf("SeasonType(%d)", int(s))
	}
}

// WeekCount returns the number of selectable weeks for a season type.
// Unknown season types get the preseason count.
func WeekCount(s SeasonType) int {
	switch s {
	case RegularSeason:
		return 18
	case Postseason:
		return 5
	case Preseason:
		return 4
	default:
		return 4
	}
}

// Weeks lists the selectable week numbers for a season type
func Weeks(s SeasonType) []int {
	n := WeekCount(s)
	weeks := make([]int, n)
	for i := range weeks {
		weeks[i] = i + 1
	}
	return weeks
}

// YearOptions returns the five selectable years, centered on now
func YearOptions(now time.Time) []int {
	current := now.Year()
	years := make([]int, 0, 5)
	for y := current - 2; y <= current+2; y++ {
		years = append(years, y)
	}
	return years
}

// ValidYear reports whether year is one of the selectable years at now
func ValidYear(now time.Time, year int) bool {
	current := now.Year()
	return year >= current-2 && year <= current+2
}

// CurrentWeek is the league's current position in its calendar
type CurrentWeek struct {
	Week       int        `json:"week"`
	SeasonType SeasonType `json:"season_type"`
	Year       int        `json:"year,omitempty"` // Season year, zero when upstream omits it
}

// Query selects the current week in year. An unknown season type falls back
// to the regular season, and a week outside the season type to week 1.
func (cw CurrentWeek) Query(year int) ScheduleQuery {
	q := ScheduleQuery{Year: year, Week: cw.Week, SeasonType: cw.SeasonType}
	if !q.SeasonType.Valid() {
		q.SeasonType = DefaultSeasonType
	}
	if q.Week < 1 || q.Week > WeekCount(q.SeasonType) {
		q.Week = DefaultWeek
	}
	return q
}

// ScheduleQuery selects one week of games
type ScheduleQuery struct {
	Year       int
	Week       int
	SeasonType SeasonType
}

// Validate checks that the query names a known season type and an in-range week
func (q ScheduleQuery) Validate() error {
	if !q.SeasonType.Valid() {
		return fmt.Errorf("invalid season type %d", int(q.SeasonType))
	}
	if q.Week < 1 || q.Week > WeekCount(q.SeasonType) {
		return fmt.Errorf("week %d out of range for %s season", q.Week, q.SeasonType)
	}
	if q.Year <= 0 {
		return fmt.Errorf("invalid year %d", q.Year)
	}
	return nil
}
