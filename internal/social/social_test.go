package social

import (
	"strings"
	"testing"

	"github.com/talgya/medieval-life/internal/agents"
	"github.com/talgya/medieval-life/internal/apperr"
	"github.com/talgya/medieval-life/internal/entropy"
	"github.com/talgya/medieval-life/internal/world"
)

func TestResidents(t *testing.T) {
	for _, kind := range []world.Kind{world.KindCapital, world.KindCity, world.KindVillage} {
		if n := len(Residents(kind)); n != 5 {
			t.Errorf("%v has %d residents, want 5", kind, n)
		}
	}
	r := Residents(world.KindVillage)
	r[0].Name = "changed"
	if Residents(world.KindVillage)[0].Name == "changed" {
		t.Error("Residents returned the shared roster")
	}
}

func TestGreeting(t *testing.T) {
	formal := NPC{Name: "Lord Harrington", Role: "Noble", Attitude: AttitudeFormal}
	guard := NPC{Name: "Sergeant Roderick", Role: "City Guard", Attitude: AttitudeSuspicious}
	tests := []struct {
		name string
		npc  NPC
		occ  agents.Occupation
		want string
	}{
		{"formal to king", formal, agents.OccupationKing, "my King"},
		{"formal to farmer", formal, agents.OccupationFarmer, "Well met"},
		{"suspicious to beggar", guard, agents.OccupationBeggar, "watching you"},
		{"suspicious to merchant", guard, agents.OccupationMerchant, "State your business"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Greeting(tt.npc, tt.occ); !strings.Contains(got, tt.want) {
				t.Errorf("Greeting = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestOptions(t *testing.T) {
	tests := []struct {
		role string
		occ  agents.Occupation
		want []Topic
	}{
		{"Royal Guard Captain", agents.OccupationKnight, []Topic{TopicNews, TopicIntroduce, TopicSafety, TopicQuests}},
		{"Tavern Owner", agents.OccupationNoble, []Topic{TopicNews, TopicIntroduce, TopicGoods, TopicService}},
		{"Cathedral Priest", agents.OccupationFarmer, []Topic{TopicNews, TopicIntroduce, TopicBlessing}},
		{"Miller", agents.OccupationBeggar, []Topic{TopicNews, TopicIntroduce}},
	}
	for _, tt := range tests {
		got := Options(NPC{Role: tt.role}, tt.occ)
		if len(got) != len(tt.want) {
			t.Errorf("%s/%s: %d options, want %d", tt.role, tt.occ, len(got), len(tt.want))
			continue
		}
		for i := range got {
			if got[i].Topic != tt.want[i] {
				t.Errorf("%s/%s option %d = %s, want %s", tt.role, tt.occ, i, got[i].Topic, tt.want[i])
			}
		}
	}
}

func TestTalkRaisesStanding(t *testing.T) {
	p := &agents.Player{Occupation: agents.OccupationFarmer}
	n := Residents(world.KindVillage)[0]
	// The last draw of 0.99 rolls the maximum gain.
	ex, err := Talk(entropy.NewSequence(0, 0, 0, 0.99), p, n, 0)
	if err != nil {
		t.Fatalf("Talk: %v", err)
	}
	if ex.Delta != 5 || ex.Standing != 5 || p.Relations[n.Name] != 5 {
		t.Errorf("exchange %+v, relations %v", ex, p.Relations)
	}
	if StandingLabel(ex.Standing) != "Acquaintance" {
		t.Errorf("label = %q", StandingLabel(ex.Standing))
	}
	if _, err := Talk(entropy.NewSequence(0.5), p, n, 9); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("Talk(bad option) err = %v", err)
	}
}

func TestStandingLabel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "Best Friend"}, {81, "Best Friend"}, {80, "Friend"}, {51, "Friend"},
		{50, "Acquaintance"}, {1, "Acquaintance"}, {0, "Disliked"}, {-49, "Disliked"},
		{-50, "Enemy"}, {-100, "Enemy"},
	}
	for _, tt := range tests {
		if got := StandingLabel(tt.score); got != tt.want {
			t.Errorf("StandingLabel(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
