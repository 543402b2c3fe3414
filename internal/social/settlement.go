// Package social provides the townsfolk of each settlement class: who lives
// there, how they greet the player, and what they will talk about.
package social

import (
	"fmt"
	"strings"

	"github.com/talgya/medieval-life/internal/agents"
	"github.com/talgya/medieval-life/internal/apperr"
	"github.com/talgya/medieval-life/internal/entropy"
	"github.com/talgya/medieval-life/internal/world"
)

// Attitude colors how an NPC greets the player.
type Attitude string

const (
	AttitudeFormal      Attitude = "formal"
	AttitudeRespectful  Attitude = "respectful"
	AttitudeCautious    Attitude = "cautious"
	AttitudeKind        Attitude = "kind"
	AttitudeStern       Attitude = "stern"
	AttitudeBusy        Attitude = "busy"
	AttitudeFriendly    Attitude = "friendly"
	AttitudeProud       Attitude = "proud"
	AttitudeHumble      Attitude = "humble"
	AttitudeSuspicious  Attitude = "suspicious"
	AttitudeWise        Attitude = "wise"
	AttitudeHardworking Attitude = "hardworking"
	AttitudeCaring      Attitude = "caring"
	AttitudeStrong      Attitude = "strong"
	AttitudeCheerful    Attitude = "cheerful"
)

// NPC is a named resident the player can talk to.
type NPC struct {
	Name     string   `json:"name"`
	Role     string   `json:"role"`
	Attitude Attitude `json:"attitude"`
}

var rosters = map[world.Kind][]NPC{
	world.KindCapital: {
		{"Lord Harrington", "Noble", AttitudeFormal},
		{"Master Thomas", "Royal Blacksmith", AttitudeRespectful},
		{"Lady Elaine", "Court Advisor", AttitudeCautious},
		{"Brother Michael", "Cathedral Priest", AttitudeKind},
		{"Galen", "Royal Guard Captain", AttitudeStern},
	},
	world.KindCity: {
		{"Alderman William", "City Official", AttitudeBusy},
		{"Goodwife Martha", "Tavern Owner", AttitudeFriendly},
		{"Master Edwin", "Guild Master", AttitudeProud},
		{"Father Thomas", "Priest", AttitudeHumble},
		{"Sergeant Roderick", "City Guard", AttitudeSuspicious},
	},
	world.KindVillage: {
		{"Elder Tomas", "Village Elder", AttitudeWise},
		{"Goodman John", "Farmer", AttitudeHardworking},
		{"Goodwife Emma", "Herbalist", AttitudeCaring},
		{"Blacksmith Gareth", "Blacksmith", AttitudeStrong},
		{"Miller's Son Adam", "Miller", AttitudeCheerful},
	},
}

// Residents returns the NPCs of a settlement class.
func Residents(kind world.Kind) []NPC {
	out := make([]NPC, len(rosters[kind]))
	copy(out, rosters[kind])
	return out
}

// Greeting is the NPC's opening line, shaped by attitude and the player's
// station.
func Greeting(n NPC, occ agents.Occupation) string {
	switch n.Attitude {
	case AttitudeFormal:
		if occ == agents.OccupationKing || occ == agents.OccupationNoble {
			return fmt.Sprintf("Greetings, my %s. It is an honor to speak with you today. How may I be of service?", occ)
		}
		return "Well met. What business brings you to see me today?"
	case AttitudeFriendly:
		return "Hello there! It's good to see a new face. What can I do for you today?"
	case AttitudeSuspicious:
		if occ == agents.OccupationBeggar || occ == agents.OccupationFarmer {
			return "What do you want? Make it quick, I'm watching you."
		}
		return "State your business. I don't have all day."
	case AttitudeRespectful:
		return "Good day to you. How may I assist you?"
	default:
		return "Hello there. What brings you to me today?"
	}
}

// Topic identifies a dialogue option.
type Topic string

const (
	TopicNews      Topic = "news"
	TopicIntroduce Topic = "introduce"
	TopicSafety    Topic = "safety"
	TopicGoods     Topic = "goods"
	TopicBlessing  Topic = "blessing"
	TopicService   Topic = "service"
	TopicQuests    Topic = "quests"
)

// Option is one line the player can say.
type Option struct {
	Topic  Topic  `json:"topic"`
	Prompt string `json:"prompt"`
}

// Options lists what the player may say to n. Two base options are always
// offered, then one for the NPC's trade and one for the player's station.
func Options(n NPC, occ agents.Occupation) []Option {
	opts := []Option{
		{TopicNews, "Ask about local news"},
		{TopicIntroduce, "Introduce yourself"},
	}
	switch {
	case strings.Contains(n.Role, "Guard"):
		opts = append(opts, Option{TopicSafety, "Ask about safety in the area"})
	case strings.Contains(n.Role, "Merchant"), strings.Contains(n.Role, "Blacksmith"), n.Role == "Tavern Owner":
		opts = append(opts, Option{TopicGoods, "Ask about goods for sale"})
	case strings.Contains(n.Role, "Priest"):
		opts = append(opts, Option{TopicBlessing, "Ask for a blessing"})
	}
	switch occ {
	case agents.OccupationKing, agents.OccupationNoble:
		opts = append(opts, Option{TopicService, "Request service or information"})
	case agents.OccupationKnight:
		opts = append(opts, Option{TopicQuests, "Ask about quests or missions"})
	}
	return opts
}

// Reply rolls the NPC's answer to a topic.
func Reply(src entropy.Source, t Topic, occ agents.Occupation) string {
	pick := func(words ...string) string { return entropy.Pick(src, words) }
	switch t {
	case TopicNews:
		return fmt.Sprintf("Well, the weather has been %s for the season. The %s has been %s this year.",
			pick("fair", "poor", "excellent"), pick("harvest", "hunting", "fishing"), pick("good", "bad", "average"))
	case TopicIntroduce:
		return fmt.Sprintf("A %s? Interesting. We don't get many of your kind around here.", occ)
	case TopicSafety:
		return fmt.Sprintf("It's been %s lately. A few reports of %s to the %s, but nothing too concerning.",
			pick("quiet", "troubled", "peaceful"), pick("bandits", "wolves", "thieves"), pick("north", "south", "east", "west"))
	case TopicGoods:
		return fmt.Sprintf("I have the finest %s in the area. My prices are %s, I assure you.",
			pick("goods", "wares", "merchandise"), pick("fair", "reasonable", "the best you will find"))
	case TopicBlessing:
		return fmt.Sprintf("May the heavens smile upon you and guide your path. These are %s times we live in.",
			pick("challenging", "blessed", "interesting"))
	case TopicService:
		return fmt.Sprintf("Of course, my %s! I am at your service. What would you like to know?", occ)
	case TopicQuests:
		return fmt.Sprintf("A knight seeking glory? Well, there have been reports of %s near the %s.",
			pick("bandits", "a monster", "raiders"), pick("forest", "hills", "old bridge"))
	}
	return "Hmm."
}

// Exchange is the result of one conversation.
type Exchange struct {
	NPC      NPC    `json:"npc"`
	Prompt   string `json:"prompt"`
	Reply    string `json:"reply"`
	Delta    int    `json:"delta"`
	Standing int    `json:"standing"`
}

// Talk has the player say option opt to n. Standing with the NPC rises by
// one to five.
func Talk(src entropy.Source, p *agents.Player, n NPC, opt int) (Exchange, error) {
	opts := Options(n, p.Occupation)
	if opt < 0 || opt >= len(opts) {
		return Exchange{}, apperr.NotFound("%s has no option %d", n.Name, opt+1)
	}
	o := opts[opt]
	ex := Exchange{NPC: n, Prompt: o.Prompt}
	ex.Reply = Reply(src, o.Topic, p.Occupation)
	before := p.Relations[n.Name]
	ex.Standing = p.AdjustRelation(n.Name, entropy.IntRange(src, 1, 5))
	ex.Delta = ex.Standing - before
	return ex, nil
}

// StandingLabel describes standing with an NPC on the -100..100 scale.
func StandingLabel(score int) string {
	switch {
	case score > 80:
		return "Best Friend"
	case score > 50:
		return "Friend"
	case score > 0:
		return "Acquaintance"
	case score > -50:
		return "Disliked"
	default:
		return "Enemy"
	}
}
