// Package economy provides the market: fixed category tables, per-visit
// catalogs, and the buy, sell, use and equip exchanges with the player.
package economy

import (
	"github.com/talgya/medieval-life/internal/agents"
	"github.com/talgya/medieval-life/internal/world"
)

// Tables lists every item a market can stock, by category.
var Tables = map[agents.Category][]agents.Item{
	agents.CategoryFood: {
		{Name: "Bread", Category: agents.CategoryFood, Value: 2, HealthValue: 2},
		{Name: "Ale", Category: agents.CategoryFood, Value: 3, HealthValue: 1},
		{Name: "Cheese", Category: agents.CategoryFood, Value: 5, HealthValue: 4},
		{Name: "Roast Chicken", Category: agents.CategoryFood, Value: 8, HealthValue: 6},
		{Name: "Spiced Wine", Category: agents.CategoryFood, Value: 15, HealthValue: 5},
	},
	agents.CategoryPotion: {
		{Name: "Minor Healing Draught", Category: agents.CategoryPotion, Value: 20, HealthValue: 15},
		{Name: "Healing Potion", Category: agents.CategoryPotion, Value: 45, HealthValue: 30},
		{Name: "Herbal Tonic", Category: agents.CategoryPotion, Value: 12, HealthValue: 8},
		{Name: "Elixir of Vigor", Category: agents.CategoryPotion, Value: 90, HealthValue: 60},
	},
	agents.CategoryBook: {
		{Name: "Treatise on Swordsmanship", Category: agents.CategoryBook, Value: 60, Skill: agents.SkillCombat, SkillValue: 1},
		{Name: "Rhetoric of Courts", Category: agents.CategoryBook, Value: 70, Skill: agents.SkillDiplomacy, SkillValue: 1},
		{Name: "Book of Estates", Category: agents.CategoryBook, Value: 65, Skill: agents.SkillStewardship, SkillValue: 1},
		{Name: "Almanac of Husbandry", Category: agents.CategoryBook, Value: 40, Skill: agents.SkillFarming, SkillValue: 1},
		{Name: "Guild Manual", Category: agents.CategoryBook, Value: 45, Skill: agents.SkillCrafting, SkillValue: 1},
		{Name: "Herbal Compendium", Category: agents.CategoryBook, Value: 55, Skill: agents.SkillMedicine, SkillValue: 1},
		{Name: "Ledger of Accounts", Category: agents.CategoryBook, Value: 50, Skill: agents.SkillTrading, SkillValue: 1},
	},
	agents.CategoryWeapon: {
		{Name: "Knife", Category: agents.CategoryWeapon, Value: 20, Damage: 2},
		{Name: "Spear", Category: agents.CategoryWeapon, Value: 45, Damage: 4},
		{Name: "Basic Sword", Category: agents.CategoryWeapon, Value: 60, Damage: 5},
		{Name: "War Axe", Category: agents.CategoryWeapon, Value: 90, Damage: 7},
		{Name: "Quality Sword", Category: agents.CategoryWeapon, Value: 120, Damage: 8},
	},
	agents.CategoryArmor: {
		{Name: "Leather Jerkin", Category: agents.CategoryArmor, Value: 35, Protection: 2},
		{Name: "Shield", Category: agents.CategoryArmor, Value: 40, Protection: 3},
		{Name: "Steel Helm", Category: agents.CategoryArmor, Value: 70, Protection: 3},
		{Name: "Chainmail", Category: agents.CategoryArmor, Value: 150, Protection: 6},
	},
}

// SeasonalPriceMod returns the price multiplier of a category in a season.
// Food is dear in winter and cheap after the harvest; potions peak in winter.
func SeasonalPriceMod(season uint8, cat agents.Category) float64 {
	switch season {
	case world.SeasonWinter:
		switch cat {
		case agents.CategoryFood:
			return 1.5
		case agents.CategoryPotion:
			return 1.2
		}
	case world.SeasonSpring:
		if cat == agents.CategoryFood {
			return 1.2
		}
	case world.SeasonAutumn:
		if cat == agents.CategoryFood {
			return 0.7
		}
	}
	return 1.0
}

// Share of stored value paid back on sale, in tenths.
const sellTenths = 7

// SellValue is floor(0.7 × value).
func SellValue(it agents.Item) int {
	return it.Value * sellTenths / 10
}
