// Game ties together the player, the realm and the calendar, and runs every
// player command against them.
package engine

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/talgya/medieval-life/internal/agents"
	"github.com/talgya/medieval-life/internal/economy"
	"github.com/talgya/medieval-life/internal/entropy"
	"github.com/talgya/medieval-life/internal/persistence"
	"github.com/talgya/medieval-life/internal/world"
)

// Game holds the complete session state. It is owned by one controller and
// is not safe for concurrent use.
type Game struct {
	Player   *agents.Player
	World    *world.World
	Year     int
	Season   uint8 // 0=Spring, 1=Summer, 2=Autumn, 3=Winter
	Day      int   // 1..DaysPerSeason
	Turn     int   // Seasons played, starting at 1
	Location string

	// Per-visit offers, cleared when the player moves on.
	Candidates   []agents.SpouseCandidate
	Market       *economy.Market
	Destinations []world.Destination

	// OnChange fires with a fresh snapshot after every successful mutation.
	OnChange func(State)

	src     entropy.Source
	spawner *agents.Spawner
}

// Notice is a message important enough to interrupt play.
type Notice struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Outcome collects what one command did: the lines it added to the event
// log and any notices it raised.
type Outcome struct {
	Lines   []string `json:"lines"`
	Notices []Notice `json:"notices,omitempty"`
}

// New creates a character from the creation form and starts a game in w.
func New(src entropy.Source, w *world.World, in agents.CreateInput) (*Game, error) {
	sp := agents.NewSpawner(src)
	p, err := sp.Create(in)
	if err != nil {
		slog.Debug("character creation rejected", "err", err)
		return nil, err
	}

	g := &Game{
		Player:   p,
		World:    w,
		Year:     StartYear,
		Season:   world.SeasonSpring,
		Day:      1,
		Turn:     1,
		Location: sp.StartingLocation(p.Occupation, w),
		src:      src,
		spawner:  sp,
	}
	g.log(&Outcome{}, fmt.Sprintf("You begin your life as a %s in %s.", p.Occupation, g.Location))

	slog.Info("new game",
		"player", p.Name,
		"occupation", p.Occupation,
		"location", g.Location,
		"wealth", p.Wealth,
	)
	return g, nil
}

// Resume rebuilds a game from a save document. A document without a world
// gets a freshly generated one; an unknown location falls back to the
// occupation's starting place.
func Resume(src entropy.Source, doc persistence.Document) (*Game, error) {
	if doc.Player == nil {
		return nil, fmt.Errorf("resume: save has no player")
	}
	w := doc.World
	if w == nil || len(w.Locations) == 0 {
		w = world.Generate(entropy.NewSeed())
	}
	sp := agents.NewSpawner(src)

	season, ok := world.ParseSeason(doc.Season)
	if !ok {
		season = world.SeasonSpring
	}
	g := &Game{
		Player:   doc.Player,
		World:    w,
		Year:     doc.Year,
		Season:   season,
		Day:      agents.Clamp(doc.Day, 1, DaysPerSeason),
		Turn:     max(doc.Turn, 1),
		Location: doc.Location,
		src:      src,
		spawner:  sp,
	}
	if g.Year == 0 {
		g.Year = StartYear
	}
	if _, ok := w.Location(g.Location); !ok {
		g.Location = sp.StartingLocation(doc.Player.Occupation, w)
	}

	slog.Info("game resumed", "player", g.Player.Name, "year", g.Year, "season", world.SeasonName(g.Season), "location", g.Location)
	return g, nil
}

// Document captures the game for saving.
func (g *Game) Document() persistence.Document {
	p := clonePlayer(g.Player)
	return persistence.Document{
		Player:   &p,
		World:    g.World,
		Year:     g.Year,
		Season:   world.SeasonName(g.Season),
		Location: g.Location,
		Day:      g.Day,
		Turn:     g.Turn,
	}
}

// Now is the timestamp for log entries made at this point in the game.
func (g *Game) Now() string {
	return Timestamp(g.Year, g.Season)
}

// log appends a line to the player's event log and to out.
func (g *Game) log(out *Outcome, text string) {
	g.Player.AddEvent(g.Now(), text)
	out.Lines = append(out.Lines, text)
}

func (g *Game) notify(out *Outcome, title, body string) {
	out.Notices = append(out.Notices, Notice{Title: title, Body: body})
}

// reject logs a refused command. The error is returned unchanged.
func (g *Game) reject(op string, err error) error {
	slog.Debug("operation rejected", "op", op, "err", err)
	return err
}

// changed publishes a snapshot to OnChange.
func (g *Game) changed() {
	if g.OnChange != nil {
		g.OnChange(g.State())
	}
}

// kind returns the settlement class of the current location.
func (g *Game) kind() world.Kind {
	k, _ := g.World.KindOf(g.Location)
	return k
}

// State is an immutable snapshot of the game for rendering.
type State struct {
	Player       agents.Player            `json:"player"`
	Year         int                      `json:"year"`
	Season       string                   `json:"season"`
	Day          int                      `json:"day"`
	Turn         int                      `json:"turn"`
	Date         string                   `json:"date"`
	Location     string                   `json:"location"`
	LocationKind world.Kind               `json:"location_kind"`
	Kingdom      string                   `json:"kingdom"`
	Description  string                   `json:"description"`
	Heir         *agents.Child            `json:"heir,omitempty"`
	Actions      []string                 `json:"actions"`
	Candidates   []agents.SpouseCandidate `json:"candidates,omitempty"`
	Market       *economy.Market          `json:"market,omitempty"`
	Destinations []world.Destination      `json:"destinations,omitempty"`
}

// State returns a snapshot that shares no memory with the game.
func (g *Game) State() State {
	kingdom, _ := g.World.KingdomOf(g.Location)
	s := State{
		Player:       clonePlayer(g.Player),
		Year:         g.Year,
		Season:       world.SeasonName(g.Season),
		Day:          g.Day,
		Turn:         g.Turn,
		Date:         SimTime(g.Year, g.Season, g.Day),
		Location:     g.Location,
		LocationKind: g.kind(),
		Kingdom:      kingdom,
		Description:  g.World.Describe(g.Location),
		Actions:      Actions(g.Player.Occupation),
		Candidates:   slices.Clone(g.Candidates),
		Destinations: slices.Clone(g.Destinations),
	}
	if h := s.Player.Heir(); h != nil {
		heir := *h
		s.Heir = &heir
	}
	if g.Market != nil {
		s.Market = &economy.Market{Location: g.Market.Location, Items: slices.Clone(g.Market.Items)}
	}
	return s
}

func clonePlayer(p *agents.Player) agents.Player {
	c := *p
	c.Skills = maps.Clone(p.Skills)
	c.Traits = slices.Clone(p.Traits)
	c.Inventory = slices.Clone(p.Inventory)
	c.Equipment = maps.Clone(p.Equipment)
	c.Relations = maps.Clone(p.Relations)
	c.Events = slices.Clone(p.Events)
	if p.Spouse != nil {
		s := *p.Spouse
		s.Traits = slices.Clone(p.Spouse.Traits)
		s.Skills = maps.Clone(p.Spouse.Skills)
		c.Spouse = &s
	}
	c.Children = make([]agents.Child, len(p.Children))
	for i, ch := range p.Children {
		ch.Traits = slices.Clone(ch.Traits)
		ch.Skills = maps.Clone(ch.Skills)
		c.Children[i] = ch
	}
	return c
}
