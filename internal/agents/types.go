// Package agents provides the character model: the player, their spouse and
// children, spouse candidates, items they carry, and character creation.
package agents

import (
	"strings"
)

// Gender is one of two enumerated values.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Opposite returns the other gender.
func (g Gender) Opposite() Gender {
	if g == GenderMale {
		return GenderFemale
	}
	return GenderMale
}

// ParseGender accepts "male"/"female" or their first letter, in any case.
func ParseGender(s string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male":
		return GenderMale, true
	case "f", "female":
		return GenderFemale, true
	}
	return "", false
}

// Occupation is the player's fixed role.
type Occupation string

const (
	OccupationKing        Occupation = "King"
	OccupationNoble       Occupation = "Noble"
	OccupationKnight      Occupation = "Knight"
	OccupationMerchant    Occupation = "Merchant"
	OccupationCraftsman   Occupation = "Craftsman"
	OccupationTavernOwner Occupation = "Tavern Owner"
	OccupationFarmer      Occupation = "Farmer"
	OccupationBeggar      Occupation = "Beggar"
)

// Occupations lists every occupation in menu order.
var Occupations = []Occupation{
	OccupationKing, OccupationNoble, OccupationKnight, OccupationMerchant,
	OccupationCraftsman, OccupationTavernOwner, OccupationFarmer, OccupationBeggar,
}

// ParseOccupation matches an occupation name case-insensitively.
// "Peasant" is accepted for Beggar.
func ParseOccupation(s string) (Occupation, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "peasant") {
		return OccupationBeggar, true
	}
	for _, o := range Occupations {
		if strings.EqualFold(s, string(o)) {
			return o, true
		}
	}
	return "", false
}

// Class groups occupations by where they start.
type Class uint8

const (
	ClassRoyal   Class = iota // starts in a capital
	ClassBurgher              // starts in a city
	ClassCommon               // starts in a village
)

// Class returns the social class of an occupation.
func (o Occupation) Class() Class {
	switch o {
	case OccupationKing, OccupationNoble:
		return ClassRoyal
	case OccupationKnight, OccupationMerchant, OccupationTavernOwner:
		return ClassBurgher
	default:
		return ClassCommon
	}
}

// Skill names a character capability.
type Skill string

const (
	SkillCombat      Skill = "combat"
	SkillDiplomacy   Skill = "diplomacy"
	SkillStewardship Skill = "stewardship"
	SkillFarming     Skill = "farming"
	SkillCrafting    Skill = "crafting"
	SkillMedicine    Skill = "medicine"
	SkillTrading     Skill = "trading"
)

// AllSkills lists skills in a stable order.
var AllSkills = []Skill{
	SkillCombat, SkillDiplomacy, SkillStewardship, SkillFarming,
	SkillCrafting, SkillMedicine, SkillTrading,
}

// ParseSkill matches a skill name case-insensitively.
func ParseSkill(s string) (Skill, bool) {
	for _, sk := range AllSkills {
		if strings.EqualFold(strings.TrimSpace(s), string(sk)) {
			return sk, true
		}
	}
	return "", false
}

// Trait is a personality tag.
type Trait string

const (
	TraitBrave       Trait = "brave"
	TraitCowardly    Trait = "cowardly"
	TraitAmbitious   Trait = "ambitious"
	TraitContent     Trait = "content"
	TraitHonest      Trait = "honest"
	TraitDeceitful   Trait = "deceitful"
	TraitLoyal       Trait = "loyal"
	TraitTreacherous Trait = "treacherous"
	TraitKind        Trait = "kind"
	TraitCruel       Trait = "cruel"
	TraitPious       Trait = "pious"
	TraitCynical     Trait = "cynical"
)

// AllTraits is the fixed trait vocabulary.
var AllTraits = []Trait{
	TraitBrave, TraitCowardly, TraitAmbitious, TraitContent,
	TraitHonest, TraitDeceitful, TraitLoyal, TraitTreacherous,
	TraitKind, TraitCruel, TraitPious, TraitCynical,
}

// HasTrait reports whether t is in traits.
func HasTrait(traits []Trait, t Trait) bool {
	for _, x := range traits {
		if x == t {
			return true
		}
	}
	return false
}

// LogEntry is one line of the player's event log.
type LogEntry struct {
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// Spouse is the player's partner. Owned by the Player.
type Spouse struct {
	Name         string        `json:"name"`
	Gender       Gender        `json:"gender"`
	Age          float64       `json:"age"`
	Traits       []Trait       `json:"traits"`
	Relationship int           `json:"relationship"`
	Skills       map[Skill]int `json:"skills,omitempty"`
}

// Child is one of the player's children. Owned by the Player.
type Child struct {
	Name         string        `json:"name"`
	Gender       Gender        `json:"gender"`
	Age          float64       `json:"age"`
	Traits       []Trait       `json:"traits"`
	Relationship int           `json:"relationship"`
	Skills       map[Skill]int `json:"skills,omitempty"`
}

// SpouseCandidate is a prospective spouse offered by a search.
type SpouseCandidate struct {
	Name    string  `json:"name"`
	Gender  Gender  `json:"gender"`
	Age     int     `json:"age"`
	Traits  []Trait `json:"traits"`
	Fortune string  `json:"fortune,omitempty"` // "wealthy", "poor" or empty
	Wealth  int     `json:"wealth"`
	Dowry   int     `json:"dowry"`
}

// Player is the player character.
type Player struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Gender     Gender            `json:"gender"`
	Age        float64           `json:"age"` // years, a quarter per season
	Occupation Occupation        `json:"occupation"`
	Health     int               `json:"health"`     // 0–100
	Wealth     int               `json:"wealth"`     // gold, never negative
	Reputation int               `json:"reputation"` // 0–100
	Skills     map[Skill]int     `json:"skills"`
	Traits     []Trait           `json:"traits"`
	Inventory  []Item            `json:"inventory"`
	Equipment  map[Category]Item `json:"equipment"`
	Spouse     *Spouse           `json:"spouse"`
	Children   []Child           `json:"children"`
	Relations  map[string]int    `json:"relations,omitempty"` // NPC name → standing, -100..100
	Events     []LogEntry        `json:"events"`
}
