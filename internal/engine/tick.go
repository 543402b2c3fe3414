// Package engine provides the game session: the calendar, seasonal
// progression, occupation actions, travel, family life, and the market.
package engine

import (
	"fmt"

	"github.com/talgya/medieval-life/internal/world"
)

// Calendar constants.
const (
	StartYear     = 1200
	DaysPerSeason = 30
)

// Timestamp stamps event log entries: "Spring, Year 1200".
func Timestamp(year int, season uint8) string {
	return fmt.Sprintf("%s, Year %d", world.SeasonName(season), year)
}

// SimTime is the full calendar date: "Spring Day 3, Year 1200".
func SimTime(year int, season uint8, day int) string {
	return fmt.Sprintf("%s Day %d, Year %d", world.SeasonName(season), day, year)
}
