// Seasonal progression: income, flavor events, and the end-of-season summary.
package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/talgya/medieval-life/internal/agents"
	"github.com/talgya/medieval-life/internal/entropy"
	"github.com/talgya/medieval-life/internal/world"
)

// Probabilities of the end-of-season rolls.
const (
	SeasonalEventChance  = 0.5
	SeasonalNoticeChance = 0.2
	PersonalEventChance  = 0.3
	RealmEventChance     = 0.2
)

// AgePerSeason is added to every family member each season.
const AgePerSeason = 0.25

// IncomeRange is an occupation's seasonal base income.
type IncomeRange struct {
	Min, Max int
}

var incomeRanges = map[agents.Occupation]IncomeRange{
	agents.OccupationKing:        {100, 200},
	agents.OccupationNoble:       {50, 100},
	agents.OccupationKnight:      {30, 60},
	agents.OccupationMerchant:    {20, 80},
	agents.OccupationTavernOwner: {15, 40},
	agents.OccupationFarmer:      {5, 20},
}

var defaultIncome = IncomeRange{5, 15}

// Income returns the seasonal base income range of an occupation.
func Income(occ agents.Occupation) IncomeRange {
	if r, ok := incomeRanges[occ]; ok {
		return r
	}
	return defaultIncome
}

// SeasonalIncomeMod returns the income multiplier of an occupation in a season.
func SeasonalIncomeMod(occ agents.Occupation, season uint8) float64 {
	switch occ {
	case agents.OccupationFarmer:
		switch season {
		case world.SeasonSpring:
			return 0.5 // Planting
		case world.SeasonSummer:
			return 0.8
		case world.SeasonAutumn:
			return 2.0 // Harvest
		case world.SeasonWinter:
			return 0.3
		}
	case agents.OccupationMerchant, agents.OccupationTavernOwner:
		switch season {
		case world.SeasonSummer:
			return 1.3
		case world.SeasonWinter:
			return 0.7
		}
	}
	return 1.0
}

var seasonalEvents = [world.SeasonsPerYear][]string{
	{
		"The flowers are blooming and the fields are green.",
		"Spring rains have made the roads muddy and difficult to travel.",
		"A traveling fair has arrived in the area.",
		"Local farmers are busy planting their crops.",
	},
	{
		"The summer heat is intense this year.",
		"A drought has affected local crops.",
		"The summer festival is being prepared in nearby towns.",
		"Merchants from distant lands have arrived with exotic goods.",
	},
	{
		"The harvest season is in full swing.",
		"The leaves are changing color, painting the landscape in gold and red.",
		"Preparations for winter have begun.",
		"A bountiful harvest has led to celebrations in the region.",
	},
	{
		"Snow blankets the landscape, making travel difficult.",
		"The winter is harsh, and food supplies are dwindling.",
		"Winter festivities are being held to lift spirits during the cold months.",
		"A blizzard has struck the region, forcing people to stay indoors.",
	},
}

var personalEvents = map[agents.Occupation][]string{
	agents.OccupationKing: {
		"A neighboring kingdom proposes a marriage alliance.",
		"Your subjects are complaining about high taxes.",
		"A noble is plotting against you.",
		"Foreign envoys have arrived with gifts.",
	},
	agents.OccupationNoble: {
		"A rival house spreads rumors about your family.",
		"The king summons you to court.",
		"Your tenants petition for lower rents.",
		"A wealthy merchant seeks your patronage.",
	},
	agents.OccupationKnight: {
		"A tournament is being held.",
		"Your lord asks you to lead troops against bandits.",
		"A damsel seeks your protection.",
		"You've been challenged to a duel.",
	},
	agents.OccupationMerchant: {
		"A caravan from the east brings rare spices.",
		"A rival merchant undercuts your prices.",
		"The guild raises its dues.",
		"Pirates threaten the coastal trade routes.",
	},
	agents.OccupationCraftsman: {
		"A noble commissions a fine piece of work.",
		"Your apprentice shows real promise.",
		"The guild inspects your workshop.",
		"A shortage of materials slows your work.",
	},
	agents.OccupationTavernOwner: {
		"A brawl breaks out in your common room.",
		"A famous bard performs at your tavern.",
		"The brewer raises the price of ale.",
		"Travelers fill every room for the fair.",
	},
	agents.OccupationFarmer: {
		"The crops are failing.",
		"Bandits are stealing livestock.",
		"The landowner wants to increase your rent.",
		"A traveling merchant offers to buy your harvest upfront.",
	},
	agents.OccupationBeggar: {
		"A kind stranger shares a meal with you.",
		"The town watch moves you along.",
		"You find shelter in an old barn.",
		"A priest offers you alms.",
	},
}

// Realm event kinds. They are narrative and never change kingdom stats.
var realmEvents = []string{"war", "plague", "festival", "trade_boom", "famine", "religious_event"}

// EndSeason advances to the next season and runs the end-of-season sequence.
func (g *Game) EndSeason() Outcome {
	out := &Outcome{}
	g.advanceSeason(out)
	g.changed()
	return *out
}

// advanceSeason runs, in order: season and year change, aging, income,
// seasonal, personal and realm events, then the summary.
func (g *Game) advanceSeason(out *Outcome) {
	g.Season = (g.Season + 1) % world.SeasonsPerYear
	g.Day = 1
	rollover := g.Season == world.SeasonSpring
	if rollover {
		g.Year++
	}

	g.log(out, fmt.Sprintf("The season has changed to %s.", world.SeasonName(g.Season)))
	if rollover {
		g.log(out, fmt.Sprintf("A new year has begun! It is now the year %d.", g.Year))
		slog.Info("new year", "year", g.Year, "player", g.Player.Name)
	}
	g.Player.AgeBy(AgePerSeason)

	income := g.seasonalIncome()
	g.Player.Wealth += income
	g.log(out, fmt.Sprintf("You earned %d gold this season from your occupation.", income))

	if entropy.Chance(g.src, SeasonalEventChance) {
		ev := entropy.Pick(g.src, seasonalEvents[g.Season])
		g.log(out, ev)
		if entropy.Chance(g.src, SeasonalNoticeChance) {
			g.notify(out, world.SeasonName(g.Season)+" Event", ev)
		}
	}
	if events := personalEvents[g.Player.Occupation]; len(events) > 0 && entropy.Chance(g.src, PersonalEventChance) {
		g.log(out, entropy.Pick(g.src, events))
	}
	if entropy.Chance(g.src, RealmEventChance) {
		g.log(out, g.realmEvent())
	}

	g.notify(out, world.SeasonName(g.Season)+" Summary", g.seasonSummary())
	g.Turn++

	slog.Info("season change",
		"year", g.Year,
		"season", world.SeasonName(g.Season),
		"turn", g.Turn,
		"income", income,
		"wealth", g.Player.Wealth,
		"age", g.Player.Age,
	)
}

func (g *Game) seasonalIncome() int {
	r := Income(g.Player.Occupation)
	base := entropy.IntRange(g.src, r.Min, r.Max)
	return int(float64(base) * SeasonalIncomeMod(g.Player.Occupation, g.Season))
}

func (g *Game) realmEvent() string {
	kingdom, _ := g.World.KingdomOf(g.Location)
	switch entropy.Pick(g.src, realmEvents) {
	case "war":
		if len(g.World.Kingdoms) >= 2 {
			pair := entropy.Sample(g.src, g.World.Kingdoms, 2)
			return fmt.Sprintf("War erupted between %s and %s in %d.", pair[0].Name, pair[1].Name, g.Year)
		}
		return "Rumors of war spread through the realm."
	case "plague":
		return fmt.Sprintf("A plague is spreading through the towns of %s.", kingdom)
	case "festival":
		return fmt.Sprintf("A great festival is held across %s.", kingdom)
	case "trade_boom":
		return "Trade is booming along the roads between the kingdoms."
	case "famine":
		return fmt.Sprintf("Famine grips the countryside of %s.", kingdom)
	default:
		return "Pilgrims crowd the roads after reports of a miracle."
	}
}

func (g *Game) seasonSummary() string {
	p := g.Player
	var b strings.Builder
	years, months := agents.YearsMonths(p.Age)
	fmt.Fprintf(&b, "Season Summary: %s, Year %d\n\n", world.SeasonName(g.Season), g.Year)
	fmt.Fprintf(&b, "You are now %d years", years)
	if months > 0 {
		fmt.Fprintf(&b, " and %d months", months)
	}
	b.WriteString(" old.\n\n")
	fmt.Fprintf(&b, "Your current wealth: %d gold\n", p.Wealth)
	if p.Spouse != nil {
		fmt.Fprintf(&b, "\nYour spouse %s is by your side.", p.Spouse.Name)
	}
	if n := len(p.Children); n > 0 {
		fmt.Fprintf(&b, "\nYou have %d children.", n)
	}
	return b.String()
}
