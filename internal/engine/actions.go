// Occupation actions: each occupation's action set and the rule behind
// every action.
package engine

import (
	"fmt"
	"strings"

	"github.com/talgya/medieval-life/internal/agents"
	"github.com/talgya/medieval-life/internal/apperr"
	"github.com/talgya/medieval-life/internal/entropy"
	"github.com/talgya/medieval-life/internal/world"
)

// Costs and odds of the skill-weighted actions.
const (
	TournamentFee      = 20
	TournamentBase     = 0.30
	TournamentPerSkill = 0.05
	TournamentCap      = 0.95

	QuestBase     = 0.20
	QuestPerSkill = 0.05
	QuestCap      = 0.90

	InvestStake    = 50
	InvestBase     = 0.40
	InvestPerSkill = 0.03
)

var actionSets = map[agents.Occupation][]string{
	agents.OccupationKing:        {"Hold Court", "Collect Taxes", "Make Laws", "Diplomacy"},
	agents.OccupationNoble:       {"Manage Estate", "Host Event", "Collect Taxes", "Patronage"},
	agents.OccupationKnight:      {"Train", "Quest", "Tournament", "Patrol"},
	agents.OccupationMerchant:    {"Trade", "Invest", "Negotiate", "Scout Routes"},
	agents.OccupationFarmer:      {"Plant Crops", "Harvest", "Tend Animals", "Improve Farm"},
	agents.OccupationCraftsman:   {"Create Goods", "Sell Wares", "Improve Skills", "Take Orders"},
	agents.OccupationTavernOwner: {"Serve Guests", "Hire Staff", "Special Event", "Renovate"},
	agents.OccupationBeggar:      {"Beg", "Scavenge", "Perform", "Listen for Rumors"},
}

// Actions every occupation can take.
var commonActions = []string{"Rest", "Explore"}

// Actions lists the actions available to an occupation.
func Actions(occ agents.Occupation) []string {
	out := make([]string, 0, len(actionSets[occ])+len(commonActions))
	out = append(out, actionSets[occ]...)
	return append(out, commonActions...)
}

type rule func(g *Game, out *Outcome)

// Upfront costs, checked before an action runs.
var actionCosts = map[string]int{
	"Tournament": TournamentFee,
	"Invest":     InvestStake,
}

var rules = map[string]rule{
	"Hold Court": func(g *Game, out *Outcome) {
		g.log(out, "You hold court, listening to the petitions and disputes of your subjects.")
		g.notify(out, "Royal Court", "A peasant claims his neighbor stole his cow. A merchant seeks lower taxes. "+
			"A noble requests permission to build a new mill on his land.")
	},
	"Collect Taxes": func(g *Game, out *Outcome) {
		n := entropy.IntRange(g.src, 20, 100)
		g.Player.Wealth += n
		g.log(out, fmt.Sprintf("You collected %d gold in taxes.", n))
	},
	"Train": func(g *Game, out *Outcome) {
		n := entropy.IntRange(g.src, 1, 3)
		g.Player.RaiseSkill(agents.SkillCombat, n)
		g.log(out, fmt.Sprintf("Your combat skill increased by %d!", n))
	},
	"Plant Crops": func(g *Game, out *Outcome) {
		if g.Season == world.SeasonSpring {
			g.log(out, "You plant your fields for the coming season. With good weather, you expect a bountiful harvest.")
		} else {
			g.log(out, "It's not the right season for planting. You should wait until spring.")
		}
	},
	"Harvest": func(g *Game, out *Outcome) {
		if g.Season != world.SeasonAutumn {
			g.log(out, "Your crops aren't ready for harvest yet. Be patient.")
			return
		}
		n := entropy.IntRange(g.src, 10, 30)
		g.Player.Wealth += n
		g.log(out, fmt.Sprintf("You harvest your crops, earning %d gold at the market.", n))
	},
	"Trade": func(g *Game, out *Outcome) {
		n := g.Player.AdjustWealth(entropy.IntRange(g.src, -10, 30))
		switch {
		case n > 0:
			g.log(out, fmt.Sprintf("Your trading was successful! You earned %d gold.", n))
		case n < 0:
			g.log(out, fmt.Sprintf("Your trading went poorly. You lost %d gold.", -n))
		default:
			g.log(out, "You broke even on your trades today.")
		}
	},
	"Beg": func(g *Game, out *Outcome) {
		n := entropy.IntRange(g.src, 0, 5)
		g.Player.Wealth += n
		g.log(out, fmt.Sprintf("You spend the day begging. You collect %d gold coins.", n))
	},
	"Tournament": func(g *Game, out *Outcome) {
		g.Player.Wealth -= TournamentFee
		p := min(TournamentCap, TournamentBase+TournamentPerSkill*float64(g.Player.Skills[agents.SkillCombat]))
		if !entropy.Chance(g.src, p) {
			g.log(out, fmt.Sprintf("You were unhorsed in the lists and lost your %d gold entry fee.", TournamentFee))
			return
		}
		prize := entropy.IntRange(g.src, 100, 200)
		g.Player.Wealth += prize
		g.Player.AdjustReputation(5)
		g.log(out, fmt.Sprintf("You won the tournament! The prize is %d gold and your renown grows.", prize))
		g.notify(out, "Tournament", fmt.Sprintf("Victory! You claim a prize of %d gold.", prize))
	},
	"Quest": func(g *Game, out *Outcome) {
		p := min(QuestCap, QuestBase+QuestPerSkill*float64(g.Player.Skills[agents.SkillCombat]))
		if entropy.Chance(g.src, p) {
			n := entropy.IntRange(g.src, 20, 60)
			g.Player.Wealth += n
			g.log(out, fmt.Sprintf("Your quest succeeded. You return with %d gold.", n))
			return
		}
		n := g.Player.AdjustHealth(-entropy.IntRange(g.src, 5, 15))
		g.log(out, fmt.Sprintf("Your quest failed and you were wounded, losing %d health.", -n))
	},
	"Invest": func(g *Game, out *Outcome) {
		g.Player.Wealth -= InvestStake
		p := InvestBase + InvestPerSkill*float64(g.Player.Skills[agents.SkillTrading])
		if !entropy.Chance(g.src, p) {
			g.log(out, fmt.Sprintf("Your venture failed. The %d gold stake is lost.", InvestStake))
			return
		}
		n := entropy.IntRange(g.src, 75, 150)
		g.Player.Wealth += n
		g.log(out, fmt.Sprintf("Your investment paid off, returning %d gold.", n))
	},
	"Rest": func(g *Game, out *Outcome) {
		n := g.Player.AdjustHealth(entropy.IntRange(g.src, 5, 15))
		g.log(out, fmt.Sprintf("You rest and recover %d health.", n))
	},
	"Explore": func(g *Game, out *Outcome) {
		place := entropy.Pick(g.src, explorePlaces(g.Player.Occupation))
		g.log(out, fmt.Sprintf("You %s and discover something interesting.", place))
	},
}

// Narrative actions have no rule beyond a line in the log.
var narratives = map[string]string{
	"Make Laws":         "You draft new laws with your councillors.",
	"Diplomacy":         "You receive envoys and exchange letters with foreign courts.",
	"Manage Estate":     "You go over the accounts of your estate with your steward.",
	"Host Event":        "You host a feast for the local gentry.",
	"Patronage":         "You sponsor a promising artist.",
	"Patrol":            "You patrol the roads, keeping travelers safe.",
	"Negotiate":         "You negotiate terms with a supplier.",
	"Scout Routes":      "You scout new trade routes beyond the town walls.",
	"Tend Animals":      "You tend your animals from dawn to dusk.",
	"Improve Farm":      "You mend fences and dig a new ditch.",
	"Create Goods":      "You spend the day at your workbench creating goods.",
	"Sell Wares":        "You set out your wares on the market square.",
	"Improve Skills":    "You practice your craft late into the night.",
	"Take Orders":       "You take orders from new customers.",
	"Serve Guests":      "You serve ale and stew to a full common room.",
	"Hire Staff":        "You interview a new serving girl and a stable boy.",
	"Special Event":     "You hold a night of music and dancing.",
	"Renovate":          "You repair the roof and repaint the sign.",
	"Scavenge":          "You scavenge the refuse heaps for anything of use.",
	"Perform":           "You juggle and sing for passersby.",
	"Listen for Rumors": "You linger by the well, listening for rumors.",
}

func explorePlaces(occ agents.Occupation) []string {
	switch occ {
	case agents.OccupationKing:
		return []string{"inspect the castle", "visit the city", "tour the countryside", "meet with foreign dignitaries"}
	case agents.OccupationKnight:
		return []string{"patrol the roads", "visit the training grounds", "explore nearby villages", "hunt in the royal forest"}
	case agents.OccupationFarmer:
		return []string{"check your fields", "visit the village market", "explore the nearby forest", "visit neighboring farms"}
	default:
		return []string{"wander the streets", "explore the surrounding woods", "visit the local shrine", "walk along the river"}
	}
}

// Perform runs one of the player's actions, matched by name without regard
// to case. Off-season actions succeed with a neutral message.
func (g *Game) Perform(action string) (Outcome, error) {
	name, ok := g.findAction(action)
	if !ok {
		return Outcome{}, g.reject("perform", apperr.NotFound("%s cannot %q", g.Player.Occupation, action))
	}

	if cost := actionCosts[name]; cost > g.Player.Wealth {
		return Outcome{}, g.reject("perform", fmt.Errorf("%s: %w", strings.ToLower(name), apperr.InsufficientFunds(cost, g.Player.Wealth)))
	}

	out := &Outcome{}
	g.log(out, fmt.Sprintf("You decided to %s.", strings.ToLower(name)))
	if r, ok := rules[name]; ok {
		r(g, out)
	} else {
		g.log(out, narratives[name])
	}

	g.changed()
	return *out, nil
}

// PerformIndex runs the i-th available action.
func (g *Game) PerformIndex(i int) (Outcome, error) {
	actions := Actions(g.Player.Occupation)
	if i < 0 || i >= len(actions) {
		return Outcome{}, g.reject("perform", apperr.NotFound("no action %d", i+1))
	}
	return g.Perform(actions[i])
}

func (g *Game) findAction(action string) (string, bool) {
	action = strings.TrimSpace(action)
	for _, a := range Actions(g.Player.Occupation) {
		if strings.EqualFold(a, action) {
			return a, true
		}
	}
	return "", false
}
