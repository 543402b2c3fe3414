// Market visits, trade, and the use of goods.
package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/talgya/medieval-life/internal/agents"
	"github.com/talgya/medieval-life/internal/apperr"
	"github.com/talgya/medieval-life/internal/economy"
)

// VisitMarket stocks a fresh market for the current location and season.
// It replaces any market from an earlier visit.
func (g *Game) VisitMarket() *economy.Market {
	g.Market = economy.NewMarket(g.src, g.Location, g.kind(), g.Season)
	slog.Debug("market stocked", "location", g.Location, "items", len(g.Market.Items))
	g.changed()
	return g.Market
}

// Buy purchases the i-th item of the open market.
func (g *Game) Buy(i int) (Outcome, error) {
	if g.Market == nil {
		return Outcome{}, g.reject("buy", apperr.NotFound("no market open; visit the market first"))
	}
	it, err := economy.Buy(g.Player, g.Market, i)
	if err != nil {
		return Outcome{}, g.reject("buy", err)
	}
	out := &Outcome{}
	g.log(out, fmt.Sprintf("You purchased %s for %d gold.", it.Name, it.Value))
	g.changed()
	return *out, nil
}

// Sell sells the i-th inventory item at seven tenths of its value.
func (g *Game) Sell(i int) (Outcome, error) {
	return g.sold(economy.Sell(g.Player, i))
}

// SellNamed sells the first inventory item with the given name, ignoring case.
func (g *Game) SellNamed(name string) (Outcome, error) {
	return g.sold(economy.SellNamed(g.Player, name))
}

func (g *Game) sold(it agents.Item, price int, err error) (Outcome, error) {
	if err != nil {
		return Outcome{}, g.reject("sell", err)
	}
	out := &Outcome{}
	g.log(out, fmt.Sprintf("You sold %s for %d gold.", it.Name, price))
	g.changed()
	return *out, nil
}

// UseItem consumes the i-th inventory item.
func (g *Game) UseItem(i int) (Outcome, error) {
	eff, err := economy.Use(g.Player, i)
	if err != nil {
		return Outcome{}, g.reject("use", err)
	}
	out := &Outcome{}
	switch eff.Item.Category {
	case agents.CategoryBook:
		g.log(out, fmt.Sprintf("You read %s. Your %s skill increased by %d.", eff.Item.Name, eff.Skill, eff.SkillGain))
	case agents.CategoryPotion:
		g.log(out, fmt.Sprintf("You drank %s and recovered %d health.", eff.Item.Name, eff.Healed))
	default:
		g.log(out, fmt.Sprintf("You ate %s and recovered %d health.", strings.ToLower(eff.Item.Name), eff.Healed))
	}
	g.changed()
	return *out, nil
}

// Equip moves the i-th inventory item into its equipment slot.
func (g *Game) Equip(i int) (Outcome, error) {
	var name string
	if i >= 0 && i < len(g.Player.Inventory) {
		name = g.Player.Inventory[i].Name
	}
	displaced, err := economy.Equip(g.Player, i)
	if err != nil {
		return Outcome{}, g.reject("equip", err)
	}
	out := &Outcome{}
	if displaced != nil {
		g.log(out, fmt.Sprintf("You put away %s.", displaced.Name))
	}
	g.log(out, fmt.Sprintf("You equipped %s.", name))
	g.changed()
	return *out, nil
}

// Unequip returns the item in slot ("weapon" or "armor") to the inventory.
func (g *Game) Unequip(slot string) (Outcome, error) {
	cat := agents.Category(strings.ToLower(strings.TrimSpace(slot)))
	if cat != agents.CategoryWeapon && cat != agents.CategoryArmor {
		return Outcome{}, g.reject("unequip", apperr.Validation("slot", "choose weapon or armor"))
	}
	it, err := economy.Unequip(g.Player, cat)
	if err != nil {
		return Outcome{}, g.reject("unequip", err)
	}
	out := &Outcome{}
	g.log(out, fmt.Sprintf("You unequipped %s.", it.Name))
	g.changed()
	return *out, nil
}
