package agents

import (
	"math"
	"sort"

	"github.com/talgya/medieval-life/internal/apperr"
)

// MaxChildren caps family size.
const MaxChildren = 5

// HeirAge is the minimum age of an heir.
const HeirAge = 16

// Pay deducts cost, rejecting the spend if the player cannot afford it.
func (p *Player) Pay(cost int) error {
	if cost > p.Wealth {
		return apperr.InsufficientFunds(cost, p.Wealth)
	}
	p.Wealth -= cost
	return nil
}

// AdjustWealth applies a gain or loss. Losses are floored at zero gold.
// Returns the change actually applied.
func (p *Player) AdjustWealth(delta int) int {
	before := p.Wealth
	p.Wealth = max(p.Wealth+delta, 0)
	return p.Wealth - before
}

// AdjustHealth applies a delta clamped to [0, 100].
func (p *Player) AdjustHealth(delta int) int {
	before := p.Health
	p.Health = ClampScore(p.Health + delta)
	return p.Health - before
}

// AdjustReputation applies a delta clamped to [0, 100].
func (p *Player) AdjustReputation(delta int) int {
	before := p.Reputation
	p.Reputation = ClampScore(p.Reputation + delta)
	return p.Reputation - before
}

// RaiseSkill adds to a skill. Skills have no upper bound.
func (p *Player) RaiseSkill(s Skill, n int) {
	if p.Skills == nil {
		p.Skills = make(map[Skill]int)
	}
	p.Skills[s] += n
}

// HasTrait reports whether the player has trait t.
func (p *Player) HasTrait(t Trait) bool {
	return HasTrait(p.Traits, t)
}

// Married reports whether the spouse slot is filled.
func (p *Player) Married() bool {
	return p.Spouse != nil
}

// Heir returns the eldest child of age, or nil.
func (p *Player) Heir() *Child {
	var heir *Child
	for i := range p.Children {
		c := &p.Children[i]
		if c.Age < HeirAge {
			continue
		}
		if heir == nil || c.Age > heir.Age {
			heir = c
		}
	}
	return heir
}

// AgeBy advances the player and their family by years.
func (p *Player) AgeBy(years float64) {
	p.Age += years
	if p.Spouse != nil {
		p.Spouse.Age += years
	}
	for i := range p.Children {
		p.Children[i].Age += years
	}
}

// AdjustRelation changes the standing with a named NPC, clamped to [-100, 100].
func (p *Player) AdjustRelation(name string, delta int) int {
	if p.Relations == nil {
		p.Relations = make(map[string]int)
	}
	p.Relations[name] = Clamp(p.Relations[name]+delta, -100, 100)
	return p.Relations[name]
}

// HasTrait reports whether the spouse has trait t.
func (s *Spouse) HasTrait(t Trait) bool {
	return HasTrait(s.Traits, t)
}

// AdjustRelationship applies a delta clamped to [0, 100].
func (s *Spouse) AdjustRelationship(delta int) int {
	before := s.Relationship
	s.Relationship = ClampScore(s.Relationship + delta)
	return s.Relationship - before
}

// AdjustRelationship applies a delta clamped to [0, 100].
func (c *Child) AdjustRelationship(delta int) int {
	before := c.Relationship
	c.Relationship = ClampScore(c.Relationship + delta)
	return c.Relationship - before
}

// RelationshipLabel describes a spouse or child relationship score.
func RelationshipLabel(score int) string {
	switch {
	case score > 75:
		return "Loving"
	case score > 50:
		return "Good"
	case score > 25:
		return "Neutral"
	default:
		return "Poor"
	}
}

// YearsMonths splits a fractional age for display.
func YearsMonths(age float64) (years, months int) {
	whole, frac := math.Modf(age)
	return int(whole), int(math.Round(frac * 12))
}

// AddEvent appends a timestamped line to the player's log.
func (p *Player) AddEvent(timestamp, text string) {
	p.Events = append(p.Events, LogEntry{Text: text, Timestamp: timestamp})
}

// RecentEvents returns up to count log entries, newest first.
// A count of zero or less returns the whole log.
func RecentEvents(p *Player, count int) []LogEntry {
	if len(p.Events) == 0 {
		return nil
	}
	out := make([]LogEntry, len(p.Events))
	for i, e := range p.Events {
		out[len(p.Events)-1-i] = e
	}
	if count > 0 && count < len(out) {
		out = out[:count]
	}
	return out
}

// SortedSkills returns skill names in a stable display order.
func SortedSkills(skills map[Skill]int) []Skill {
	out := make([]Skill, 0, len(skills))
	for s := range skills {
		out = append(out, s)
	}
	order := make(map[Skill]int, len(AllSkills))
	for i, s := range AllSkills {
		order[s] = i
	}
	sort.Slice(out, func(i, j int) bool {
		return order[out[i]] < order[out[j]]
	})
	return out
}
