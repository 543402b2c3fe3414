// Family life: courtship, marriage, time with the spouse, and children.
package engine

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/talgya/medieval-life/internal/agents"
	"github.com/talgya/medieval-life/internal/apperr"
	"github.com/talgya/medieval-life/internal/entropy"
	"github.com/talgya/medieval-life/internal/world"
)

// Family thresholds.
const (
	MarriageRelationship = 75
	ChildRelationshipMin = 70
	ChildSpouseAgeMax    = 45
	ChildBaseChance      = 0.3
	ChildChanceCap       = 0.8
	TeachAgeMin          = 5
	TraitResponseChance  = 0.7
)

// FindSpouse offers fresh marriage candidates: three to five in a city or
// capital, one to three in a village.
func (g *Game) FindSpouse() ([]agents.SpouseCandidate, error) {
	if g.Player.Married() {
		return nil, g.reject("find spouse", apperr.Precondition(apperr.ErrAlreadyMarried, "you are already married to %s", g.Player.Spouse.Name))
	}
	n := entropy.IntRange(g.src, 1, 3)
	if g.kind() != world.KindVillage {
		n = entropy.IntRange(g.src, 3, 5)
	}
	g.Candidates = make([]agents.SpouseCandidate, n)
	for i := range g.Candidates {
		g.Candidates[i] = g.spawner.Candidate(g.Player)
	}
	g.changed()
	return slices.Clone(g.Candidates), nil
}

// Marry weds the i-th candidate of the last search. The dowry goes to the
// player.
func (g *Game) Marry(i int) (Outcome, error) {
	if g.Player.Married() {
		return Outcome{}, g.reject("marry", apperr.Precondition(apperr.ErrAlreadyMarried, "you are already married to %s", g.Player.Spouse.Name))
	}
	if i < 0 || i >= len(g.Candidates) {
		return Outcome{}, g.reject("marry", apperr.NotFound("no candidate %d", i+1))
	}
	c := g.Candidates[i]

	g.Player.Spouse = &agents.Spouse{
		Name:         c.Name,
		Gender:       c.Gender,
		Age:          float64(c.Age),
		Traits:       slices.Clone(c.Traits),
		Relationship: MarriageRelationship,
		Skills:       make(map[agents.Skill]int),
	}
	g.Player.Wealth += c.Dowry
	g.Candidates = nil

	out := &Outcome{}
	g.log(out, fmt.Sprintf("You married %s.", c.Name))
	if c.Dowry > 0 {
		g.log(out, fmt.Sprintf("%s brought a dowry of %d gold.", c.Name, c.Dowry))
	}
	g.notify(out, "Marriage", fmt.Sprintf("Congratulations on your marriage to %s!\n\n"+
		"You have a lovely ceremony, and your new spouse moves into your home in %s.", c.Name, g.Location))

	slog.Info("marriage", "player", g.Player.Name, "spouse", c.Name, "dowry", c.Dowry)
	g.changed()
	return *out, nil
}

// Topic is a conversation subject with the spouse.
type Topic struct {
	Name      string
	Responses map[agents.Trait]string
	Default   string
	// Spouses with this trait enjoy the topic more.
	Favored agents.Trait
}

var baseTopics = []Topic{
	{
		Name: "Discuss the future",
		Responses: map[agents.Trait]string{
			agents.TraitAmbitious: "Your spouse excitedly shares their grand plans for your future together.",
			agents.TraitContent:   "Your spouse seems happy with your current life, but is open to small changes.",
		},
		Default: "You and your spouse discuss your hopes and dreams for the future.",
	},
	{
		Name: "Talk about the kingdom",
		Responses: map[agents.Trait]string{
			agents.TraitLoyal:       "Your spouse speaks highly of the current ruler and their policies.",
			agents.TraitTreacherous: "Your spouse whispers about the weaknesses of the current leadership.",
		},
		Default: "You and your spouse discuss recent events in the kingdom.",
	},
	{
		Name: "Share stories from your past",
		Responses: map[agents.Trait]string{
			agents.TraitBrave: "Your spouse tells exciting tales of adventure from their youth.",
		},
		Default: "You and your spouse reminisce about your lives before you met.",
	},
	{
		Name: "Discuss local gossip",
		Responses: map[agents.Trait]string{
			agents.TraitDeceitful: "Your spouse seems to know all the scandalous secrets of the local nobility.",
			agents.TraitHonest:    "Your spouse seems uncomfortable discussing rumors about others.",
		},
		Default: "You and your spouse share interesting tidbits you've heard around town.",
	},
	{
		Name: "Talk about your feelings",
		Responses: map[agents.Trait]string{
			agents.TraitKind:  "Your spouse listens attentively and offers comforting words.",
			agents.TraitCruel: "Your spouse seems disinterested in your emotional state.",
		},
		Default: "You and your spouse have a heart-to-heart conversation.",
	},
}

var traitTopics = []Topic{
	{
		Name:    "Discuss plans for advancement",
		Default: "Your spouse shares ambitious ideas about how you could improve your standing.",
		Favored: agents.TraitAmbitious,
	},
	{
		Name:    "Discuss religious matters",
		Default: "You and your spouse discuss matters of faith and spirituality.",
		Favored: agents.TraitPious,
	},
	{
		Name:    "Talk about helping others",
		Default: "Your spouse suggests ways you could help those less fortunate in your community.",
		Favored: agents.TraitKind,
	},
}

// SpouseTopics lists what the player can talk about with the spouse. Some
// topics only come up with spouses of a matching trait.
func (g *Game) SpouseTopics() []string {
	if !g.Player.Married() {
		return nil
	}
	var out []string
	for _, t := range g.topics() {
		out = append(out, t.Name)
	}
	return out
}

func (g *Game) topics() []Topic {
	out := slices.Clone(baseTopics)
	for _, t := range traitTopics {
		if g.Player.Spouse.HasTrait(t.Favored) {
			out = append(out, t)
		}
	}
	return out
}

// SpouseTalk holds a conversation on the i-th topic. Each of the spouse's
// traits with its own response to the topic gets a chance to color the
// reply; favored topics please the spouse more and a cruel spouse resents
// talk of feelings.
func (g *Game) SpouseTalk(i int) (Outcome, error) {
	s := g.Player.Spouse
	if s == nil {
		return Outcome{}, g.reject("spouse talk", apperr.Precondition(apperr.ErrNotMarried, "you are not married"))
	}
	topics := g.topics()
	if i < 0 || i >= len(topics) {
		return Outcome{}, g.reject("spouse talk", apperr.NotFound("no topic %d", i+1))
	}
	t := topics[i]

	response := t.Default
	for _, tr := range s.Traits {
		if r, ok := t.Responses[tr]; ok && entropy.Chance(g.src, TraitResponseChance) {
			response = r
			break
		}
	}

	var delta int
	switch {
	case t.Favored != "" && s.HasTrait(t.Favored):
		delta = entropy.IntRange(g.src, 5, 10)
	case t.Name == "Talk about your feelings" && s.HasTrait(agents.TraitCruel):
		delta = entropy.IntRange(g.src, -5, -2)
	default:
		delta = entropy.IntRange(g.src, 1, 5)
	}
	s.AdjustRelationship(delta)

	out := &Outcome{}
	g.log(out, fmt.Sprintf("You had a conversation with your spouse about %s.", strings.ToLower(topicObject(t.Name))))
	g.notify(out, "Conversation", response+"\n\n"+relationshipChange(s.Name, delta))
	g.changed()
	return *out, nil
}

// topicObject drops the leading verb of a topic: "Discuss the future" reads
// as "the future".
func topicObject(name string) string {
	for _, verb := range []string{"Discuss", "Talk about", "Share"} {
		if rest, ok := strings.CutPrefix(name, verb+" "); ok {
			return rest
		}
	}
	return name
}

func relationshipChange(name string, delta int) string {
	switch {
	case delta > 0:
		return fmt.Sprintf("Your relationship with %s has improved.", name)
	case delta < 0:
		return fmt.Sprintf("Your relationship with %s has slightly deteriorated.", name)
	default:
		return fmt.Sprintf("Your relationship with %s remains unchanged.", name)
	}
}

// GiftGain is the relationship gain of a gift before trait bonuses.
func GiftGain(value int) int {
	return agents.Clamp(value/2, 2, 40)
}

// SpouseGift gives inventory item i to the spouse. The item is consumed.
func (g *Game) SpouseGift(i int) (Outcome, error) {
	s := g.Player.Spouse
	if s == nil {
		return Outcome{}, g.reject("spouse gift", apperr.Precondition(apperr.ErrNotMarried, "you are not married"))
	}
	if i < 0 || i >= len(g.Player.Inventory) {
		return Outcome{}, g.reject("spouse gift", apperr.NotFound("no inventory item %d", i+1))
	}
	it := g.Player.Inventory[i]
	g.Player.Inventory = slices.Delete(slices.Clone(g.Player.Inventory), i, i+1)

	gain := GiftGain(it.Value)
	var response string
	switch {
	case s.HasTrait(agents.TraitContent) && it.Value <= 10:
		gain += 5
		response = fmt.Sprintf("%s is delighted with the simple but thoughtful gift.", s.Name)
	case s.HasTrait(agents.TraitAmbitious) && it.Value >= 50:
		gain += 10
		response = fmt.Sprintf("%s is impressed by your generous and luxurious gift.", s.Name)
	case s.HasTrait(agents.TraitPious) && it.Category == agents.CategoryBook:
		gain += 5
		response = fmt.Sprintf("%s appreciates the gift of knowledge and wisdom.", s.Name)
	default:
		response = fmt.Sprintf("%s thanks you for the %s.", s.Name, strings.ToLower(it.Name))
	}
	s.AdjustRelationship(gain)

	out := &Outcome{}
	g.log(out, fmt.Sprintf("You gave %s a gift of %s.", s.Name, strings.ToLower(it.Name)))
	g.notify(out, "Gift", response+"\n\n"+relationshipChange(s.Name, gain))
	g.changed()
	return *out, nil
}

// Outing is a paid activity with the spouse.
type Outing struct {
	Key      string
	Name     string
	CostMin  int
	CostMax  int
	GainMin  int
	GainMax  int
	Favoured []agents.Trait
	Delight  string
}

// Outings in order of expense.
var Outings = []Outing{
	{"walk", "Walk in the countryside", 0, 0, 3, 7, []agents.Trait{agents.TraitKind},
		"%s enjoys the peaceful time spent in nature with you."},
	{"market", "Visit the local market", 5, 15, 8, 12, nil, ""},
	{"festival", "Attend a festival", 20, 30, 12, 18, nil, ""},
	{"tavern", "Dine at a tavern", 30, 50, 15, 25, []agents.Trait{agents.TraitAmbitious},
		"%s appreciates the opportunity to be seen in society."},
	{"tournament", "Attend a royal tournament", 60, 90, 25, 35, []agents.Trait{agents.TraitBrave, agents.TraitAmbitious},
		"%s is thrilled by the excitement of the tournament."},
}

// OutingBonus is the relationship bonus when the spouse favors an outing.
const OutingBonus = 5

type outingMood struct {
	description string
	mod         int
}

var outingMoods = []outingMood{
	{"You have a wonderful time together.", 2},
	{"The weather is perfect for your outing.", 1},
	{"You encounter some interesting people during your outing.", 0},
	{"A small mishap occurs, but you laugh it off together.", -1},
	{"The outing doesn't go quite as planned, but you make the best of it.", -2},
}

// FindOuting looks up an outing by key or by 1-based number.
func FindOuting(key string) (Outing, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for i, o := range Outings {
		if o.Key == key || fmt.Sprint(i+1) == key {
			return o, true
		}
	}
	return Outing{}, false
}

// SpouseOuting takes the spouse on an outing. The cost is drawn first and
// the outing is refused if the player cannot pay it.
func (g *Game) SpouseOuting(key string) (Outcome, error) {
	s := g.Player.Spouse
	if s == nil {
		return Outcome{}, g.reject("spouse outing", apperr.Precondition(apperr.ErrNotMarried, "you are not married"))
	}
	o, ok := FindOuting(key)
	if !ok {
		return Outcome{}, g.reject("spouse outing", apperr.NotFound("no outing %q", key))
	}
	cost := entropy.IntRange(g.src, o.CostMin, o.CostMax)
	if err := g.Player.Pay(cost); err != nil {
		return Outcome{}, g.reject("spouse outing", fmt.Errorf("%s: %w", strings.ToLower(o.Name), err))
	}

	gain := entropy.IntRange(g.src, o.GainMin, o.GainMax)
	response := fmt.Sprintf("You and %s enjoy your time together: %s.", s.Name, strings.ToLower(o.Name))
	for _, tr := range o.Favoured {
		if s.HasTrait(tr) {
			gain += OutingBonus
			response = fmt.Sprintf(o.Delight, s.Name)
			break
		}
	}
	mood := entropy.Pick(g.src, outingMoods)
	gain += mood.mod
	s.AdjustRelationship(gain)

	out := &Outcome{}
	g.log(out, fmt.Sprintf("You went on an outing with %s: %s.", s.Name, strings.ToLower(o.Name)))
	if cost > 0 {
		g.log(out, fmt.Sprintf("The outing cost %d gold.", cost))
	}
	g.notify(out, "Outing", response+"\n\n"+mood.description+"\n\n"+relationshipChange(s.Name, gain))
	g.changed()
	return *out, nil
}

// ChildChance is the probability that trying for a child succeeds.
func ChildChance(relationship int) float64 {
	return min(ChildChanceCap, ChildBaseChance+float64(relationship-ChildRelationshipMin)/100)
}

// TryForChild rolls once against ChildChance. It needs a spouse of at most
// 45 whose relationship is at least 70, and room in the family.
func (g *Game) TryForChild() (Outcome, error) {
	s := g.Player.Spouse
	switch {
	case s == nil:
		return Outcome{}, g.reject("try for child", apperr.Precondition(apperr.ErrNotMarried, "you are not married"))
	case len(g.Player.Children) >= agents.MaxChildren:
		return Outcome{}, g.reject("try for child", apperr.Precondition(apperr.ErrTooManyChildren, "you already have %d children", len(g.Player.Children)))
	case s.Age > ChildSpouseAgeMax:
		return Outcome{}, g.reject("try for child", apperr.Precondition(apperr.ErrSpouseTooOld, "%s is too old to bear children", s.Name))
	case s.Relationship < ChildRelationshipMin:
		return Outcome{}, g.reject("try for child", apperr.Precondition(apperr.ErrRelationshipTooLow, "your relationship with %s is not strong enough", s.Name))
	}

	out := &Outcome{}
	if !entropy.Chance(g.src, ChildChance(s.Relationship)) {
		g.log(out, "Despite your efforts, no child comes this time.")
		g.changed()
		return *out, nil
	}

	child := g.spawner.Newborn()
	g.Player.Children = append(g.Player.Children, child)
	s.AdjustRelationship(10)

	word := "girl"
	if child.Gender == agents.GenderMale {
		word = "boy"
	}
	g.log(out, fmt.Sprintf("Your child %s was born.", child.Name))
	g.notify(out, "New Child", fmt.Sprintf("Congratulations! A healthy baby %s named %s has joined your family.", word, child.Name))

	slog.Info("birth", "player", g.Player.Name, "child", child.Name, "children", len(g.Player.Children))
	g.changed()
	return *out, nil
}

// Child interaction kinds.
const (
	ChildTalk  = "talk"
	ChildPlay  = "play"
	ChildTeach = "teach"
)

var childGains = map[string]int{ChildTalk: 2, ChildPlay: 4, ChildTeach: 3}

// TeachGain is the skill gain of a lesson for a child of age.
func TeachGain(src entropy.Source, age float64) int {
	switch {
	case age < 10:
		return 1
	case age < 16:
		return entropy.IntRange(src, 1, 2)
	default:
		return entropy.IntRange(src, 2, 3)
	}
}

// ChildInteract spends time with child i. Teaching needs a child of at
// least five and a skill to teach.
func (g *Game) ChildInteract(i int, kind, skill string) (Outcome, error) {
	if i < 0 || i >= len(g.Player.Children) {
		return Outcome{}, g.reject("child interact", apperr.NotFound("no child %d", i+1))
	}
	c := &g.Player.Children[i]
	kind = strings.ToLower(strings.TrimSpace(kind))
	gain, ok := childGains[kind]
	if !ok {
		return Outcome{}, g.reject("child interact", apperr.Validation("kind", "choose talk, play or teach"))
	}

	out := &Outcome{}
	switch kind {
	case ChildTalk:
		g.log(out, childTalkLine(c))
	case ChildPlay:
		g.log(out, childPlayLine(c))
	case ChildTeach:
		if c.Age < TeachAgeMin {
			return Outcome{}, g.reject("child interact", apperr.Precondition(apperr.ErrChildTooYoung, "%s is too young to be taught", c.Name))
		}
		sk, ok := agents.ParseSkill(skill)
		if !ok {
			return Outcome{}, g.reject("child interact", apperr.Validation("skill", "unknown skill "+skill))
		}
		n := TeachGain(g.src, c.Age)
		if c.Skills == nil {
			c.Skills = make(map[agents.Skill]int)
		}
		c.Skills[sk] += n
		g.log(out, fmt.Sprintf("You teach %s about %s. Their skill grows by %d.", c.Name, sk, n))
	}
	c.AdjustRelationship(gain)
	g.changed()
	return *out, nil
}

func childTalkLine(c *agents.Child) string {
	switch {
	case c.Age < 3:
		return fmt.Sprintf("You coo at little %s, who gurgles happily.", c.Name)
	case c.Age < 10:
		return fmt.Sprintf("%s chatters about everything they saw today.", c.Name)
	case c.Age < 16:
		return fmt.Sprintf("You and %s talk about what they want to become.", c.Name)
	default:
		return fmt.Sprintf("You and %s speak as equals about the family's future.", c.Name)
	}
}

func childPlayLine(c *agents.Child) string {
	switch {
	case c.Age < 3:
		return fmt.Sprintf("You play peekaboo with %s.", c.Name)
	case c.Age < 10:
		return fmt.Sprintf("You and %s chase each other through the fields.", c.Name)
	case c.Age < 16:
		return fmt.Sprintf("You and %s spar with wooden swords.", c.Name)
	default:
		return fmt.Sprintf("You and %s ride out together for the day.", c.Name)
	}
}
