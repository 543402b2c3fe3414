package world

import "strings"

// SeasonsPerYear is the length of the seasonal cycle.
const SeasonsPerYear = 4

// Seasons in calendar order. The calendar and market prices both key on them.
const (
	SeasonSpring uint8 = 0
	SeasonSummer uint8 = 1
	SeasonAutumn uint8 = 2
	SeasonWinter uint8 = 3
)

var seasonNames = [SeasonsPerYear]string{"Spring", "Summer", "Autumn", "Winter"}

// SeasonName returns a human-readable season name.
func SeasonName(season uint8) string {
	if int(season) < len(seasonNames) {
		return seasonNames[season]
	}
	return "Unknown"
}

// ParseSeason accepts a season name; "Fall" is read as Autumn.
func ParseSeason(s string) (uint8, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "fall") {
		return SeasonAutumn, true
	}
	for i, name := range seasonNames {
		if strings.EqualFold(s, name) {
			return uint8(i), true
		}
	}
	return 0, false
}
