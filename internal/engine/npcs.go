package engine

import (
	"fmt"
	"strings"

	"github.com/talgya/medieval-life/internal/apperr"
	"github.com/talgya/medieval-life/internal/social"
)

// NPCs returns the residents of the current location.
func (g *Game) NPCs() []social.NPC {
	return social.Residents(g.kind())
}

// Greet returns what resident npc says on meeting the player, with the
// conversation options it offers.
func (g *Game) Greet(npc int) (string, []social.Option, error) {
	n, err := g.npc(npc)
	if err != nil {
		return "", nil, g.reject("greet", err)
	}
	return social.Greeting(n, g.Player.Occupation), social.Options(n, g.Player.Occupation), nil
}

// TalkNPC says option opt to resident npc. Standing with them improves.
func (g *Game) TalkNPC(npc, opt int) (Outcome, error) {
	n, err := g.npc(npc)
	if err != nil {
		return Outcome{}, g.reject("talk", err)
	}
	ex, err := social.Talk(g.src, g.Player, n, opt)
	if err != nil {
		return Outcome{}, g.reject("talk", err)
	}

	out := &Outcome{}
	g.log(out, fmt.Sprintf("You spoke with %s the %s.", n.Name, strings.ToLower(n.Role)))
	g.notify(out, n.Name, fmt.Sprintf("%q\n\n%s\n\nYour standing with %s is now %d (%s).",
		ex.Prompt, ex.Reply, n.Name, ex.Standing, social.StandingLabel(ex.Standing)))
	g.changed()
	return *out, nil
}

func (g *Game) npc(i int) (social.NPC, error) {
	npcs := g.NPCs()
	if i < 0 || i >= len(npcs) {
		return social.NPC{}, apperr.NotFound("no one numbered %d lives here", i+1)
	}
	return npcs[i], nil
}
