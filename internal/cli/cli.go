// Package cli runs the game as a line-oriented terminal session: one
// command per input line, one render per command.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/talgya/medieval-life/internal/agents"
	"github.com/talgya/medieval-life/internal/engine"
	"github.com/talgya/medieval-life/internal/render"
	"github.com/talgya/medieval-life/internal/session"
)

// EventLogLines is how many log entries the log command shows.
const EventLogLines = 15

const help = `Commands:
  new <name> <gender> <occupation>   start a new life
  status | actions | do <n> | end    your life and the seasons
  travel | go <n>                    roads and journeys
  market | buy <n> | sell <n|name>   trade
  inv | use <n> | equip <n> | unequip <weapon|armor>
  spouse | marry <n> | talk <n> | gift <n> | outing <walk|market|festival|tavern|tournament>
  child | kid <n> talk|play|teach <skill>
  npcs | npc <n> [option]            townsfolk
  save | load [path] | saves | history <n>
  log | help | quit`

// ErrQuit ends a session.
var ErrQuit = errors.New("quit")

// Shell reads commands and writes renders.
type Shell struct {
	Session *session.Session
	Out     io.Writer
}

// Run processes lines from r until it is exhausted, the context is done or
// the player quits. Rejected commands are reported and play goes on.
func (s *Shell) Run(ctx context.Context, r io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				scanErr <- ctx.Err()
				return
			}
		}
		scanErr <- sc.Err()
	}()

	fmt.Fprintln(s.Out, "Welcome to Medieval Life. Type help for commands.")
	for {
		fmt.Fprint(s.Out, "> ")
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.Out)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.Out)
				return <-scanErr
			}
			line = l
		}

		err := s.Exec(line)
		if errors.Is(err, ErrQuit) {
			fmt.Fprintln(s.Out, "Farewell.")
			return nil
		}
		if err != nil {
			fmt.Fprintln(s.Out, err)
		}
	}
}

// Exec runs one command line.
func (s *Shell) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "help", "?":
		return s.print(help)
	case "quit", "exit":
		return ErrQuit
	case "new":
		return s.newGame(args)
	case "load":
		var st engine.State
		var err error
		if len(args) == 0 {
			st, err = s.Session.Continue()
		} else {
			st, err = s.Session.Load(strings.Join(args, " "))
		}
		if err != nil {
			return err
		}
		return s.print(render.Status(st))
	case "saves":
		recs, err := s.Session.Saves(0)
		if err != nil {
			return err
		}
		return s.print(render.Saves(recs, time.Now()))
	case "history":
		return s.history(args)
	case "save":
		rec, err := s.Session.Save()
		if err != nil {
			return err
		}
		return s.print("Game saved to " + rec.Path)
	}

	return s.Session.Run(func(g *engine.Game) error {
		return s.play(g, cmd, args)
	})
}

func (s *Shell) newGame(args []string) error {
	if len(args) < 3 {
		return errors.New("usage: new <name> <gender> <occupation>")
	}
	st, err := s.Session.NewGame(agents.CreateInput{
		Name:       args[0],
		Gender:     args[1],
		Occupation: strings.Join(args[2:], " "),
	})
	if err != nil {
		return err
	}
	return s.print(render.Status(st) + "\n" + render.EventLog(st.Player, 1))
}

func (s *Shell) play(g *engine.Game, cmd string, args []string) error {
	switch cmd {
	case "status":
		return s.print(render.Status(g.State()))
	case "actions":
		return s.print(render.Actions(engine.Actions(g.Player.Occupation)))
	case "do":
		if len(args) == 0 {
			return errors.New("usage: do <n|action>")
		}
		if n, err := strconv.Atoi(args[0]); err == nil {
			return s.outcome(g.PerformIndex(n - 1))
		}
		return s.outcome(g.Perform(strings.Join(args, " ")))
	case "end":
		return s.outcome(g.EndSeason(), nil)
	case "log":
		return s.print(render.EventLog(*g.Player, EventLogLines))

	case "travel":
		return s.print(render.Destinations(g.ListDestinations()))
	case "go":
		return s.indexed(args, g.Travel)

	case "market":
		return s.print(render.Market(g.VisitMarket(), g.Player.Wealth))
	case "buy":
		return s.indexed(args, g.Buy)
	case "sell":
		if len(args) > 0 {
			if _, err := strconv.Atoi(args[0]); err != nil {
				return s.outcome(g.SellNamed(strings.Join(args, " ")))
			}
		}
		return s.indexed(args, g.Sell)
	case "inv":
		return s.print(render.Inventory(*g.Player))
	case "use":
		return s.indexed(args, g.UseItem)
	case "equip":
		return s.indexed(args, g.Equip)
	case "unequip":
		if len(args) == 0 {
			return errors.New("usage: unequip <weapon|armor>")
		}
		return s.outcome(g.Unequip(args[0]))

	case "spouse":
		if !g.Player.Married() {
			cands, err := g.FindSpouse()
			if err != nil {
				return err
			}
			return s.print(render.Candidates(cands))
		}
		var b strings.Builder
		b.WriteString(render.Family(*g.Player))
		for i, t := range g.SpouseTopics() {
			fmt.Fprintf(&b, "\n  %d. %s", i+1, t)
		}
		return s.print(b.String())
	case "marry":
		return s.indexed(args, g.Marry)
	case "talk":
		return s.indexed(args, g.SpouseTalk)
	case "gift":
		return s.indexed(args, g.SpouseGift)
	case "outing":
		if len(args) == 0 {
			return errors.New("usage: outing <walk|market|festival|tavern|tournament>")
		}
		return s.outcome(g.SpouseOuting(args[0]))
	case "child":
		return s.outcome(g.TryForChild())
	case "kid":
		if len(args) < 2 {
			return errors.New("usage: kid <n> talk|play|teach <skill>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("not a number: %s", args[0])
		}
		var skill string
		if len(args) > 2 {
			skill = args[2]
		}
		return s.outcome(g.ChildInteract(n-1, args[1], skill))

	case "npcs":
		return s.print(render.NPCs(g.NPCs(), g.Player.Relations))
	case "npc":
		if len(args) == 0 {
			return errors.New("usage: npc <n> [option]")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("not a number: %s", args[0])
		}
		if len(args) == 1 {
			greeting, opts, err := g.Greet(n - 1)
			if err != nil {
				return err
			}
			return s.print(render.Options(greeting, opts))
		}
		opt, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("not a number: %s", args[1])
		}
		return s.outcome(g.TalkNPC(n-1, opt-1))
	}
	return fmt.Errorf("unknown command %q; type help", cmd)
}

// history shows the event log captured by the n-th listed save.
func (s *Shell) history(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: history <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("not a number: %s", args[0])
	}
	recs, err := s.Session.Saves(0)
	if err != nil {
		return err
	}
	if n < 1 || n > len(recs) {
		return fmt.Errorf("no save %d; type saves", n)
	}
	events, err := s.Session.History(recs[n-1].ID)
	if err != nil {
		return err
	}
	return s.print(render.History(recs[n-1], events))
}

// indexed parses a 1-based number argument and runs op with it.
func (s *Shell) indexed(args []string, op func(int) (engine.Outcome, error)) error {
	if len(args) == 0 {
		return errors.New("which number?")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("not a number: %s", args[0])
	}
	return s.outcome(op(n - 1))
}

func (s *Shell) outcome(out engine.Outcome, err error) error {
	if err != nil {
		return err
	}
	return s.print(render.Outcome(out))
}

func (s *Shell) print(text string) error {
	_, err := fmt.Fprintln(s.Out, text)
	return err
}
