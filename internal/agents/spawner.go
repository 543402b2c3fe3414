// Character creation: the player at game start, spouse candidates, and
// newborn children.
package agents

import (
	"strings"

	"github.com/google/uuid"

	"github.com/talgya/medieval-life/internal/apperr"
	"github.com/talgya/medieval-life/internal/entropy"
	"github.com/talgya/medieval-life/internal/world"
)

// Age bounds for new characters and spouses.
const (
	StartAgeMin  = 18
	StartAgeMax  = 30
	SpouseAgeMin = 16
	SpouseAgeMax = 45
)

// WealthRange is an inclusive gold range.
type WealthRange struct {
	Min, Max int
}

// StartingWealth is the base-wealth range of each occupation.
var StartingWealth = map[Occupation]WealthRange{
	OccupationKing:        {800, 1000},
	OccupationNoble:       {400, 700},
	OccupationKnight:      {200, 400},
	OccupationMerchant:    {150, 300},
	OccupationCraftsman:   {80, 200},
	OccupationTavernOwner: {100, 250},
	OccupationFarmer:      {30, 120},
	OccupationBeggar:      {0, 20},
}

// SkillBonus is a fixed per-occupation boost applied at creation.
type SkillBonus struct {
	Skill Skill
	Bonus int
}

// SkillBonuses lists the creation boosts for each occupation.
var SkillBonuses = map[Occupation][]SkillBonus{
	OccupationKing:        {{SkillDiplomacy, 5}, {SkillStewardship, 5}},
	OccupationNoble:       {{SkillDiplomacy, 3}, {SkillStewardship, 3}},
	OccupationKnight:      {{SkillCombat, 5}, {SkillDiplomacy, 2}},
	OccupationMerchant:    {{SkillTrading, 5}, {SkillDiplomacy, 2}},
	OccupationFarmer:      {{SkillFarming, 5}, {SkillCrafting, 2}},
	OccupationCraftsman:   {{SkillCrafting, 5}, {SkillTrading, 2}},
	OccupationTavernOwner: {{SkillTrading, 3}, {SkillDiplomacy, 3}},
	OccupationBeggar:      {{SkillTrading, 2}},
}

// CreateInput carries the fields of the creation form.
type CreateInput struct {
	Name       string `json:"name"`
	Gender     string `json:"gender"`
	Occupation string `json:"occupation"`
}

// Spawner creates characters from a random source.
type Spawner struct {
	src entropy.Source
}

// NewSpawner creates a spawner drawing from src.
func NewSpawner(src entropy.Source) *Spawner {
	return &Spawner{src: src}
}

// Create validates the creation form and rolls a new player character.
// Nothing is rolled on a rejected form.
func (s *Spawner) Create(in CreateInput) (*Player, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("name", "please enter a name")
	}
	if strings.TrimSpace(in.Gender) == "" {
		return nil, apperr.Validation("gender", "please select a gender")
	}
	gender, ok := ParseGender(in.Gender)
	if !ok {
		return nil, apperr.Validation("gender", "gender must be male or female")
	}
	if strings.TrimSpace(in.Occupation) == "" {
		return nil, apperr.Validation("occupation", "please select an occupation")
	}
	occ, ok := ParseOccupation(in.Occupation)
	if !ok {
		return nil, apperr.Validation("occupation", "unknown occupation "+in.Occupation)
	}

	p := &Player{
		ID:         uuid.New().String(),
		Name:       name,
		Gender:     gender,
		Age:        float64(entropy.IntRange(s.src, StartAgeMin, StartAgeMax)),
		Occupation: occ,
		Health:     ScoreMax,
		Reputation: 50,
		Equipment:  make(map[Category]Item),
		Relations:  make(map[string]int),
	}
	p.Wealth = s.StartingWealth(occ)
	p.Skills = s.Skills(occ)
	p.Traits = s.Traits()
	return p, nil
}

// StartingWealth samples the base wealth of an occupation.
func (s *Spawner) StartingWealth(occ Occupation) int {
	r, ok := StartingWealth[occ]
	if !ok {
		return 50
	}
	return entropy.IntRange(s.src, r.Min, r.Max)
}

// Skills samples each skill from [1, 10] and applies occupation bonuses.
func (s *Spawner) Skills(occ Occupation) map[Skill]int {
	skills := make(map[Skill]int, len(AllSkills))
	for _, sk := range AllSkills {
		skills[sk] = entropy.IntRange(s.src, 1, 10)
	}
	for _, b := range SkillBonuses[occ] {
		skills[b.Skill] += b.Bonus
	}
	return skills
}

// Traits samples two to four distinct traits.
func (s *Spawner) Traits() []Trait {
	n := entropy.IntRange(s.src, 2, 4)
	return entropy.Sample(s.src, AllTraits, n)
}

// StartingLocation picks where an occupation begins: royalty in a capital,
// burghers in a city, everyone else in a village.
func (s *Spawner) StartingLocation(occ Occupation, w *world.World) string {
	switch occ.Class() {
	case ClassRoyal:
		return w.RandomCapital(s.src)
	case ClassBurgher:
		return w.RandomCity(s.src)
	default:
		return w.RandomVillage(s.src)
	}
}

// Name returns a random first name for a gender.
func (s *Spawner) Name(g Gender) string {
	if g == GenderMale {
		return entropy.Pick(s.src, maleNames)
	}
	return entropy.Pick(s.src, femaleNames)
}

// Candidate rolls a prospective spouse for p.
func (s *Spawner) Candidate(p *Player) SpouseCandidate {
	gender := p.Gender.Opposite()
	c := SpouseCandidate{
		Name:   s.Name(gender),
		Gender: gender,
	}

	age := int(p.Age)
	if gender == GenderFemale {
		c.Age = entropy.IntRange(s.src, SpouseAgeMin, max(age, SpouseAgeMin))
	} else {
		c.Age = entropy.IntRange(s.src, age-5, age+10)
	}
	c.Age = Clamp(c.Age, SpouseAgeMin, SpouseAgeMax)
	c.Traits = s.Traits()

	c.Wealth = entropy.IntRange(s.src, 10, 50)
	switch f := s.src.Float64(); {
	case f < 0.1:
		c.Fortune = "wealthy"
		c.Wealth *= 3
	case f < 0.2:
		c.Fortune = "poor"
		c.Wealth = max(5, c.Wealth/2)
	}
	c.Dowry = c.Wealth * 2
	return c
}

// Newborn rolls a child at age zero with full relationship.
func (s *Spawner) Newborn() Child {
	gender := entropy.Pick(s.src, []Gender{GenderMale, GenderFemale})
	return Child{
		Name:         s.Name(gender),
		Gender:       gender,
		Traits:       s.Traits(),
		Relationship: ScoreMax,
		Skills:       make(map[Skill]int),
	}
}

var maleNames = []string{
	"William", "Robert", "John", "Richard", "Thomas", "Henry", "Edward", "Walter",
	"Hugh", "Simon", "Geoffrey", "Adam", "Stephen", "Peter", "Nicholas", "Roger",
	"Bartholomew", "Gilbert", "Martin", "Ralph", "Edmund", "Philip", "Gregory",
}

var femaleNames = []string{
	"Alice", "Agnes", "Matilda", "Margaret", "Joan", "Isabella", "Emma", "Cecilia",
	"Eleanor", "Beatrice", "Juliana", "Katherine", "Margery", "Edith", "Mabel",
	"Constance", "Avice", "Johanna", "Elizabeth", "Amice", "Eloise", "Philippa",
}
