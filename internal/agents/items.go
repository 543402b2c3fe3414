package agents

// Category is an item's kind. Weapons and armor also name the equipment
// slot they occupy.
type Category string

const (
	CategoryFood   Category = "food"
	CategoryPotion Category = "potion"
	CategoryBook   Category = "book"
	CategoryWeapon Category = "weapon"
	CategoryArmor  Category = "armor"
)

// Categories lists item categories in catalog order.
var Categories = []Category{CategoryFood, CategoryPotion, CategoryBook, CategoryWeapon, CategoryArmor}

// Item is something a character can carry. Only the effect fields relevant
// to its category are set.
type Item struct {
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Value       int      `json:"value"`
	HealthValue int      `json:"health_value,omitempty"`
	Skill       Skill    `json:"skill,omitempty"`
	SkillValue  int      `json:"skill_value,omitempty"`
	Damage      int      `json:"damage,omitempty"`
	Protection  int      `json:"protection,omitempty"`
}

// Normalize returns a copy carrying only the fields of its category.
func (it Item) Normalize() Item {
	out := Item{Name: it.Name, Category: it.Category, Value: it.Value}
	switch it.Category {
	case CategoryFood, CategoryPotion:
		out.HealthValue = it.HealthValue
	case CategoryBook:
		out.Skill = it.Skill
		out.SkillValue = it.SkillValue
	case CategoryWeapon:
		out.Damage = it.Damage
	case CategoryArmor:
		out.Protection = it.Protection
	}
	return out
}

// Usable reports whether the item is consumed on use.
func (it Item) Usable() bool {
	switch it.Category {
	case CategoryFood, CategoryPotion, CategoryBook:
		return true
	}
	return false
}

// Equippable reports whether the item occupies an equipment slot.
func (it Item) Equippable() bool {
	return it.Category == CategoryWeapon || it.Category == CategoryArmor
}
