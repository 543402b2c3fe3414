// Travel between settlements and the events of the road.
package engine

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/talgya/medieval-life/internal/agents"
	"github.com/talgya/medieval-life/internal/apperr"
	"github.com/talgya/medieval-life/internal/entropy"
	"github.com/talgya/medieval-life/internal/world"
)

// TravelEventChance is the probability of an event on any journey.
const TravelEventChance = 0.3

type travelEvent struct {
	description string
	apply       func(g *Game, out *Outcome)
}

var travelEvents = []travelEvent{
	{
		"You encounter bandits on the road! They demand payment to let you pass safely.",
		func(g *Game, out *Outcome) {
			n := g.Player.AdjustWealth(-entropy.IntRange(g.src, 5, 20))
			g.log(out, fmt.Sprintf("You lost %d gold during your journey.", -n))
		},
	},
	{
		"You find a wounded traveler on the road. After helping them, they reward you for your kindness.",
		func(g *Game, out *Outcome) {
			n := entropy.IntRange(g.src, 5, 15)
			g.Player.Wealth += n
			g.log(out, fmt.Sprintf("You gained %d gold during your journey.", n))
		},
	},
	{
		"Bad weather makes the journey difficult. You slip and fall, injuring yourself.",
		func(g *Game, out *Outcome) {
			n := g.Player.AdjustHealth(-entropy.IntRange(g.src, 5, 15))
			g.log(out, fmt.Sprintf("You were injured during your journey, losing %d health.", -n))
		},
	},
	{
		"You come across an abandoned cart with some valuable goods inside.",
		func(g *Game, out *Outcome) {
			n := entropy.IntRange(g.src, 10, 30)
			g.Player.Wealth += n
			g.log(out, fmt.Sprintf("You gained %d gold during your journey.", n))
		},
	},
	{
		"You meet a traveling merchant and trade stories. They give you advice about the local markets.",
		func(g *Game, out *Outcome) {
			g.Player.RaiseSkill(agents.SkillTrading, 1)
			g.log(out, "Your trading skill increased by 1.")
		},
	},
}

// ListDestinations computes the reachable settlements with fresh travel
// times and keeps them for Travel.
func (g *Game) ListDestinations() []world.Destination {
	g.Destinations = g.World.Destinations(g.src, g.Location)
	g.changed()
	return slices.Clone(g.Destinations)
}

// Travel journeys to the i-th listed destination. The road may bring an
// event; the days spent on it advance the calendar and may end seasons.
func (g *Game) Travel(i int) (Outcome, error) {
	if len(g.Destinations) == 0 {
		return Outcome{}, g.reject("travel", apperr.NotFound("no destinations listed; look at the roads first"))
	}
	if i < 0 || i >= len(g.Destinations) {
		return Outcome{}, g.reject("travel", apperr.NotFound("no destination %d", i+1))
	}
	d := g.Destinations[i]
	from := g.Location

	out := &Outcome{}
	if entropy.Chance(g.src, TravelEventChance) {
		ev := entropy.Pick(g.src, travelEvents)
		g.notify(out, "Travel Event", ev.description)
		ev.apply(g, out)
	}

	g.Location = d.Name
	g.Destinations = nil
	g.Market = nil
	g.Candidates = nil
	g.log(out, fmt.Sprintf("You traveled to %s. The journey took %d days.", d.Name, d.Days))
	g.advanceDays(d.Days, out)

	slog.Info("travel", "from", from, "to", d.Name, "days", d.Days, "date", SimTime(g.Year, g.Season, g.Day))
	g.changed()
	return *out, nil
}

// advanceDays moves the calendar forward, running the end-of-season
// sequence each time a season's days run out.
func (g *Game) advanceDays(n int, out *Outcome) {
	for range n {
		g.Day++
		if g.Day > DaysPerSeason {
			g.advanceSeason(out)
		}
	}
}
