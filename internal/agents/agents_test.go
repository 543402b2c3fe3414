package agents

import (
	"errors"
	"testing"

	"github.com/talgya/medieval-life/internal/apperr"
	"github.com/talgya/medieval-life/internal/entropy"
	"github.com/talgya/medieval-life/internal/world"
)

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		in    CreateInput
		field string
	}{
		{"missing name", CreateInput{Gender: "male", Occupation: "King"}, "name"},
		{"blank name", CreateInput{Name: "   ", Gender: "male", Occupation: "King"}, "name"},
		{"missing gender", CreateInput{Name: "Ada", Occupation: "King"}, "gender"},
		{"bad gender", CreateInput{Name: "Ada", Gender: "dragon", Occupation: "King"}, "gender"},
		{"missing occupation", CreateInput{Name: "Ada", Gender: "female"}, "occupation"},
		{"bad occupation", CreateInput{Name: "Ada", Gender: "female", Occupation: "Wizard"}, "occupation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := entropy.NewSequence(0.5)
			p, err := NewSpawner(src).Create(tt.in)
			if p != nil {
				t.Fatal("expected no player")
			}
			var ae *apperr.Error
			if !errors.As(err, &ae) || ae.Kind != apperr.KindValidation {
				t.Fatalf("err = %v, want validation error", err)
			}
			if ae.Field != tt.field {
				t.Errorf("field = %q, want %q", ae.Field, tt.field)
			}
			if src.Draws() != 0 {
				t.Errorf("rejected creation drew %d random values", src.Draws())
			}
		})
	}
}

func TestCreateFarmerSkills(t *testing.T) {
	// Every draw is 0.5, so every base skill rolls 1 + 5 = 6.
	p, err := NewSpawner(entropy.NewSequence(0.5)).Create(CreateInput{Name: "Tom", Gender: "m", Occupation: "farmer"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	want := map[Skill]int{
		SkillCombat: 6, SkillDiplomacy: 6, SkillStewardship: 6,
		SkillFarming: 11, SkillCrafting: 8, SkillMedicine: 6, SkillTrading: 6,
	}
	for sk, v := range want {
		if p.Skills[sk] != v {
			t.Errorf("%s = %d, want %d", sk, p.Skills[sk], v)
		}
	}
	if p.Age != 24 {
		t.Errorf("age = %v, want 24", p.Age)
	}
	if p.Wealth != 75 {
		t.Errorf("wealth = %d, want 75", p.Wealth)
	}
	if p.Health != 100 || p.Reputation != 50 {
		t.Errorf("health/reputation = %d/%d, want 100/50", p.Health, p.Reputation)
	}
	if p.Occupation != OccupationFarmer || p.Gender != GenderMale {
		t.Errorf("occupation/gender = %q/%q", p.Occupation, p.Gender)
	}
	if p.ID == "" {
		t.Error("player has no id")
	}
}

func TestCreateProperties(t *testing.T) {
	vocab := map[Trait]bool{}
	for _, tr := range AllTraits {
		vocab[tr] = true
	}
	src := entropy.NewSeeded(99)
	sp := NewSpawner(src)
	for i := 0; i < 300; i++ {
		occ := Occupations[i%len(Occupations)]
		p, err := sp.Create(CreateInput{Name: "X", Gender: "female", Occupation: string(occ)})
		if err != nil {
			t.Fatalf("Create(%s): %v", occ, err)
		}
		r := StartingWealth[occ]
		if p.Wealth < r.Min || p.Wealth > r.Max {
			t.Errorf("%s wealth %d outside [%d,%d]", occ, p.Wealth, r.Min, r.Max)
		}
		if p.Age < StartAgeMin || p.Age > StartAgeMax {
			t.Errorf("age %v outside [18,30]", p.Age)
		}
		if n := len(p.Traits); n < 2 || n > 4 {
			t.Errorf("%d traits, want 2–4", n)
		}
		seen := map[Trait]bool{}
		for _, tr := range p.Traits {
			if !vocab[tr] {
				t.Errorf("trait %q not in vocabulary", tr)
			}
			if seen[tr] {
				t.Errorf("duplicate trait %q", tr)
			}
			seen[tr] = true
		}
		for _, sk := range AllSkills {
			if p.Skills[sk] < 1 {
				t.Errorf("%s skill %d below 1", sk, p.Skills[sk])
			}
		}
	}
}

func TestStartingLocation(t *testing.T) {
	w := world.Generate(3)
	sp := NewSpawner(entropy.NewSeeded(4))
	for i := 0; i < 50; i++ {
		for _, occ := range Occupations {
			loc := sp.StartingLocation(occ, w)
			kind, ok := w.KindOf(loc)
			if !ok {
				t.Fatalf("%s started in unknown location %q", occ, loc)
			}
			switch occ.Class() {
			case ClassRoyal:
				if kind != world.KindCapital {
					t.Errorf("%s started in %s (%v)", occ, loc, kind)
				}
			case ClassBurgher:
				if kind == world.KindVillage {
					t.Errorf("%s started in village %s", occ, loc)
				}
			case ClassCommon:
				if kind != world.KindVillage {
					t.Errorf("%s started in %s (%v)", occ, loc, kind)
				}
			}
		}
	}
}

func TestParseOccupation(t *testing.T) {
	tests := []struct {
		in   string
		want Occupation
		ok   bool
	}{
		{"King", OccupationKing, true},
		{"tavern owner", OccupationTavernOwner, true},
		{"Peasant", OccupationBeggar, true},
		{"wizard", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseOccupation(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseOccupation(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCandidateBounds(t *testing.T) {
	sp := NewSpawner(entropy.NewSeeded(8))
	p := &Player{Gender: GenderMale, Age: 44}
	for i := 0; i < 300; i++ {
		c := sp.Candidate(p)
		if c.Gender != GenderFemale {
			t.Fatalf("candidate gender = %q, want female", c.Gender)
		}
		if c.Age < SpouseAgeMin || c.Age > SpouseAgeMax {
			t.Errorf("candidate age %d outside [16,45]", c.Age)
		}
		if c.Dowry != c.Wealth*2 {
			t.Errorf("dowry %d, want %d", c.Dowry, c.Wealth*2)
		}
		switch c.Fortune {
		case "wealthy":
			if c.Wealth < 30 || c.Wealth > 150 {
				t.Errorf("wealthy candidate wealth %d", c.Wealth)
			}
		case "poor":
			if c.Wealth < 5 || c.Wealth > 25 {
				t.Errorf("poor candidate wealth %d", c.Wealth)
			}
		default:
			if c.Wealth < 10 || c.Wealth > 50 {
				t.Errorf("candidate wealth %d", c.Wealth)
			}
		}
	}
}

func TestPayRejectsOverspend(t *testing.T) {
	p := &Player{Wealth: 30}
	err := p.Pay(50)
	if !apperr.IsInsufficientFunds(err) {
		t.Fatalf("err = %v, want insufficient funds", err)
	}
	if p.Wealth != 30 {
		t.Errorf("wealth = %d, want 30", p.Wealth)
	}
	if err := p.Pay(30); err != nil || p.Wealth != 0 {
		t.Errorf("Pay(30) = %v, wealth %d", err, p.Wealth)
	}
}

func TestClamping(t *testing.T) {
	p := &Player{Health: 95, Wealth: 10, Reputation: 3}
	p.AdjustHealth(20)
	if p.Health != 100 {
		t.Errorf("health = %d, want 100", p.Health)
	}
	p.AdjustHealth(-150)
	if p.Health != 0 {
		t.Errorf("health = %d, want 0", p.Health)
	}
	if got := p.AdjustWealth(-25); got != -10 || p.Wealth != 0 {
		t.Errorf("AdjustWealth(-25) = %d, wealth %d", got, p.Wealth)
	}
	p.AdjustReputation(-10)
	if p.Reputation != 0 {
		t.Errorf("reputation = %d, want 0", p.Reputation)
	}

	s := &Spouse{Relationship: 98}
	s.AdjustRelationship(10)
	if s.Relationship != 100 {
		t.Errorf("spouse relationship = %d, want 100", s.Relationship)
	}
	c := &Child{Relationship: 2}
	c.AdjustRelationship(-5)
	if c.Relationship != 0 {
		t.Errorf("child relationship = %d, want 0", c.Relationship)
	}
	if got := p.AdjustRelation("Galen", -500); got != -100 {
		t.Errorf("AdjustRelation = %d, want -100", got)
	}
}

func TestHeir(t *testing.T) {
	p := &Player{Children: []Child{{Name: "A", Age: 12}, {Name: "B", Age: 17}, {Name: "C", Age: 16}}}
	if h := p.Heir(); h == nil || h.Name != "B" {
		t.Errorf("Heir = %+v, want B", h)
	}
	p.Children = p.Children[:1]
	if p.Heir() != nil {
		t.Error("no child of age, want nil heir")
	}
}

func TestRecentEventsNewestFirst(t *testing.T) {
	p := &Player{}
	p.AddEvent("Spring, Year 1200", "one")
	p.AddEvent("Spring, Year 1200", "two")
	p.AddEvent("Summer, Year 1200", "three")
	got := RecentEvents(p, 2)
	if len(got) != 2 || got[0].Text != "three" || got[1].Text != "two" {
		t.Errorf("RecentEvents = %+v", got)
	}
	if all := RecentEvents(p, 0); len(all) != 3 || all[2].Text != "one" {
		t.Errorf("RecentEvents(0) = %+v", all)
	}
}

func TestItemNormalize(t *testing.T) {
	raw := Item{Name: "Odd Book", Category: CategoryBook, Value: 40, HealthValue: 9, Skill: SkillMedicine, SkillValue: 1, Damage: 3}
	got := raw.Normalize()
	want := Item{Name: "Odd Book", Category: CategoryBook, Value: 40, Skill: SkillMedicine, SkillValue: 1}
	if got != want {
		t.Errorf("Normalize = %+v, want %+v", got, want)
	}
	if !got.Usable() || got.Equippable() {
		t.Error("book should be usable and not equippable")
	}
}

func TestLabelsAndAge(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{{100, "Loving"}, {76, "Loving"}, {75, "Good"}, {51, "Good"}, {50, "Neutral"}, {26, "Neutral"}, {25, "Poor"}, {0, "Poor"}}
	for _, tt := range tests {
		if got := RelationshipLabel(tt.score); got != tt.want {
			t.Errorf("RelationshipLabel(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
	if y, m := YearsMonths(24.75); y != 24 || m != 9 {
		t.Errorf("YearsMonths(24.75) = %d, %d", y, m)
	}
}
