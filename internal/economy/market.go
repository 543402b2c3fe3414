package economy

import (
	"fmt"
	"math"
	"strings"

	"github.com/talgya/medieval-life/internal/agents"
	"github.com/talgya/medieval-life/internal/apperr"
	"github.com/talgya/medieval-life/internal/entropy"
	"github.com/talgya/medieval-life/internal/world"
)

// Market is the catalog offered on one visit. It is regenerated every visit.
type Market struct {
	Location string        `json:"location"`
	Items    []agents.Item `json:"items"`
}

// NewMarket samples one or two items from each category table, one more in a
// capital, prices them for the season, and shuffles the result.
func NewMarket(src entropy.Source, location string, kind world.Kind, season uint8) *Market {
	m := &Market{Location: location}
	for _, cat := range agents.Categories {
		n := entropy.IntRange(src, 1, 2)
		if kind == world.KindCapital {
			n++
		}
		for _, it := range entropy.Sample(src, Tables[cat], n) {
			mod := SeasonalPriceMod(season, cat)
			it.Value = max(1, int(math.Round(float64(it.Value)*mod)))
			m.Items = append(m.Items, it)
		}
	}
	entropy.Shuffle(src, m.Items)
	return m
}

// Buy purchases catalog item i. Wealth must cover the price; the player
// receives a normalized copy.
func Buy(p *agents.Player, m *Market, i int) (agents.Item, error) {
	if m == nil || i < 0 || i >= len(m.Items) {
		return agents.Item{}, apperr.NotFound("no market item %d", i+1)
	}
	it := m.Items[i]
	if err := p.Pay(it.Value); err != nil {
		return agents.Item{}, fmt.Errorf("buy %s: %w", it.Name, err)
	}
	bought := it.Normalize()
	p.Inventory = append(p.Inventory, bought)
	return bought, nil
}

// Sell removes inventory item i and credits its sell value.
func Sell(p *agents.Player, i int) (agents.Item, int, error) {
	it, err := take(p, i)
	if err != nil {
		return agents.Item{}, 0, err
	}
	gold := SellValue(it)
	p.Wealth += gold
	return it, gold, nil
}

// SellNamed sells the first inventory item with the given name, ignoring case.
func SellNamed(p *agents.Player, name string) (agents.Item, int, error) {
	for i, it := range p.Inventory {
		if strings.EqualFold(it.Name, name) {
			return Sell(p, i)
		}
	}
	return agents.Item{}, 0, apperr.NotFound("you carry no %s", name)
}

// Effect describes what using an item did.
type Effect struct {
	Item      agents.Item  `json:"item"`
	Healed    int          `json:"healed,omitempty"`
	Skill     agents.Skill `json:"skill,omitempty"`
	SkillGain int          `json:"skill_gain,omitempty"`
}

// Use consumes food, potions and books. Health is restored up to 100; books
// raise their skill.
func Use(p *agents.Player, i int) (Effect, error) {
	if i < 0 || i >= len(p.Inventory) {
		return Effect{}, apperr.NotFound("no inventory item %d", i+1)
	}
	it := p.Inventory[i]
	if !it.Usable() {
		return Effect{}, apperr.Precondition(apperr.ErrNotUsable, "%s cannot be used; equip it instead", it.Name)
	}
	p.Inventory = remove(p.Inventory, i)

	eff := Effect{Item: it}
	switch it.Category {
	case agents.CategoryFood, agents.CategoryPotion:
		eff.Healed = p.AdjustHealth(it.HealthValue)
	case agents.CategoryBook:
		p.RaiseSkill(it.Skill, it.SkillValue)
		eff.Skill = it.Skill
		eff.SkillGain = it.SkillValue
	}
	return eff, nil
}

// Equip moves a weapon or armor from the inventory into its slot. A previous
// occupant of the slot goes back to the inventory and is returned.
func Equip(p *agents.Player, i int) (*agents.Item, error) {
	if i < 0 || i >= len(p.Inventory) {
		return nil, apperr.NotFound("no inventory item %d", i+1)
	}
	it := p.Inventory[i]
	if !it.Equippable() {
		return nil, apperr.Precondition(apperr.ErrNotEquippable, "%s cannot be equipped", it.Name)
	}
	p.Inventory = remove(p.Inventory, i)
	if p.Equipment == nil {
		p.Equipment = make(map[agents.Category]agents.Item)
	}

	var displaced *agents.Item
	if prev, ok := p.Equipment[it.Category]; ok {
		p.Inventory = append(p.Inventory, prev)
		displaced = &prev
	}
	p.Equipment[it.Category] = it
	return displaced, nil
}

// Unequip returns the item in slot to the inventory.
func Unequip(p *agents.Player, slot agents.Category) (agents.Item, error) {
	it, ok := p.Equipment[slot]
	if !ok {
		return agents.Item{}, apperr.Precondition(apperr.ErrSlotEmpty, "nothing equipped as %s", slot)
	}
	delete(p.Equipment, slot)
	p.Inventory = append(p.Inventory, it)
	return it, nil
}

func take(p *agents.Player, i int) (agents.Item, error) {
	if i < 0 || i >= len(p.Inventory) {
		return agents.Item{}, apperr.NotFound("no inventory item %d", i+1)
	}
	it := p.Inventory[i]
	p.Inventory = remove(p.Inventory, i)
	return it, nil
}

func remove(items []agents.Item, i int) []agents.Item {
	out := make([]agents.Item, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}
