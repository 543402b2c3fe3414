// Package tools exposes the game session as MCP tools. Every tool answers
// with JSON, or with an error result when the game refuses the command.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/talgya/medieval-life/internal/agents"
	"github.com/talgya/medieval-life/internal/apperr"
	"github.com/talgya/medieval-life/internal/engine"
	"github.com/talgya/medieval-life/internal/session"
)

// GameTools holds the session the tool handlers drive.
type GameTools struct {
	Session *session.Session
}

// --- Input types ---

type NewGameInput struct {
	Name       string `json:"name" jsonschema:"Character name"`
	Gender     string `json:"gender" jsonschema:"male or female"`
	Occupation string `json:"occupation" jsonschema:"King, Noble, Knight, Merchant, Craftsman, Tavern Owner, Farmer or Beggar"`
}

type PerformActionInput struct {
	Action string `json:"action,omitempty" jsonschema:"Action name as listed by list_actions"`
	Number int    `json:"number,omitempty" jsonschema:"Action number from list_actions, used when action is empty"`
}

type NumberInput struct {
	Number int `json:"number" jsonschema:"Item number from the last listing, starting at 1"`
}

type SellInput struct {
	Number int    `json:"number,omitempty" jsonschema:"Inventory item number, starting at 1"`
	Name   string `json:"name,omitempty" jsonschema:"Item name, used instead of number"`
}

type UnequipInput struct {
	Slot string `json:"slot" jsonschema:"weapon or armor"`
}

type SpouseTalkInput struct {
	Topic int `json:"topic,omitempty" jsonschema:"Topic number; leave empty to list the topics"`
}

type SpouseOutingInput struct {
	Outing string `json:"outing" jsonschema:"walk, market, festival, tavern or tournament"`
}

type ChildInteractInput struct {
	Child int    `json:"child" jsonschema:"Child number from status, starting at 1"`
	Kind  string `json:"kind" jsonschema:"talk, play or teach"`
	Skill string `json:"skill,omitempty" jsonschema:"Skill to teach"`
}

type TalkNPCInput struct {
	NPC    int `json:"npc" jsonschema:"Resident number from npcs, starting at 1"`
	Option int `json:"option,omitempty" jsonschema:"Conversation option; leave empty to hear the greeting and options"`
}

type LoadGameInput struct {
	Path string `json:"path,omitempty" jsonschema:"Save file path as listed by list_saves; leave empty to continue the latest save"`
}

type SaveHistoryInput struct {
	ID string `json:"id" jsonschema:"Save id as listed by list_saves"`
}

type ListSavesInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of saves to list"`
}

// --- Results ---

// Result pairs what a command did with the state it left behind.
type Result struct {
	Outcome *engine.Outcome `json:"outcome,omitempty"`
	State   engine.State    `json:"state"`
}

// play runs a mutating command and reports its outcome with the new state.
func (t *GameTools) play(fn func(g *engine.Game) (engine.Outcome, error)) (*mcp.CallToolResult, any, error) {
	var res Result
	err := t.Session.Run(func(g *engine.Game) error {
		out, err := fn(g)
		if err != nil {
			return err
		}
		res = Result{Outcome: &out, State: g.State()}
		return nil
	})
	if err != nil {
		return toolError("%v", err), nil, nil
	}
	return toolJSON(res)
}

// view runs a read or listing command and reports its value.
func (t *GameTools) view(fn func(g *engine.Game) (any, error)) (*mcp.CallToolResult, any, error) {
	var v any
	err := t.Session.Run(func(g *engine.Game) error {
		var err error
		v, err = fn(g)
		return err
	})
	if err != nil {
		return toolError("%v", err), nil, nil
	}
	return toolJSON(v)
}

// --- Handlers ---

func (t *GameTools) NewGame(_ context.Context, _ *mcp.CallToolRequest, input NewGameInput) (*mcp.CallToolResult, any, error) {
	st, err := t.Session.NewGame(agents.CreateInput{Name: input.Name, Gender: input.Gender, Occupation: input.Occupation})
	if err != nil {
		return toolError("%v", err), nil, nil
	}
	return toolJSON(Result{State: st})
}

func (t *GameTools) Status(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return t.view(func(g *engine.Game) (any, error) { return g.State(), nil })
}

func (t *GameTools) EndSeason(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return t.play(func(g *engine.Game) (engine.Outcome, error) { return g.EndSeason(), nil })
}

func (t *GameTools) ListActions(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return t.view(func(g *engine.Game) (any, error) { return engine.Actions(g.Player.Occupation), nil })
}

func (t *GameTools) PerformAction(_ context.Context, _ *mcp.CallToolRequest, input PerformActionInput) (*mcp.CallToolResult, any, error) {
	return t.play(func(g *engine.Game) (engine.Outcome, error) {
		if input.Action != "" {
			return g.Perform(input.Action)
		}
		return g.PerformIndex(input.Number - 1)
	})
}

func (t *GameTools) Destinations(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return t.view(func(g *engine.Game) (any, error) { return g.ListDestinations(), nil })
}

func (t *GameTools) Travel(_ context.Context, _ *mcp.CallToolRequest, input NumberInput) (*mcp.CallToolResult, any, error) {
	return t.play(func(g *engine.Game) (engine.Outcome, error) { return g.Travel(input.Number - 1) })
}

func (t *GameTools) Market(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return t.view(func(g *engine.Game) (any, error) { return g.VisitMarket(), nil })
}

func (t *GameTools) Buy(_ context.Context, _ *mcp.CallToolRequest, input NumberInput) (*mcp.CallToolResult, any, error) {
	return t.play(func(g *engine.Game) (engine.Outcome, error) { return g.Buy(input.Number - 1) })
}

func (t *GameTools) Sell(_ context.Context, _ *mcp.CallToolRequest, input SellInput) (*mcp.CallToolResult, any, error) {
	if input.Name != "" {
		return t.play(func(g *engine.Game) (engine.Outcome, error) { return g.SellNamed(input.Name) })
	}
	return t.play(func(g *engine.Game) (engine.Outcome, error) { return g.Sell(input.Number - 1) })
}

func (t *GameTools) UseItem(_ context.Context, _ *mcp.CallToolRequest, input NumberInput) (*mcp.CallToolResult, any, error) {
	return t.play(func(g *engine.Game) (engine.Outcome, error) { return g.UseItem(input.Number - 1) })
}

func (t *GameTools) Equip(_ context.Context, _ *mcp.CallToolRequest, input NumberInput) (*mcp.CallToolResult, any, error) {
	return t.play(func(g *engine.Game) (engine.Outcome, error) { return g.Equip(input.Number - 1) })
}

func (t *GameTools) Unequip(_ context.Context, _ *mcp.CallToolRequest, input UnequipInput) (*mcp.CallToolResult, any, error) {
	return t.play(func(g *engine.Game) (engine.Outcome, error) { return g.Unequip(input.Slot) })
}

func (t *GameTools) FindSpouse(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return t.view(func(g *engine.Game) (any, error) { return g.FindSpouse() })
}

func (t *GameTools) Marry(_ context.Context, _ *mcp.CallToolRequest, input NumberInput) (*mcp.CallToolResult, any, error) {
	return t.play(func(g *engine.Game) (engine.Outcome, error) { return g.Marry(input.Number - 1) })
}

func (t *GameTools) SpouseTalk(_ context.Context, _ *mcp.CallToolRequest, input SpouseTalkInput) (*mcp.CallToolResult, any, error) {
	if input.Topic == 0 {
		return t.view(func(g *engine.Game) (any, error) {
			topics := g.SpouseTopics()
			if topics == nil {
				return nil, apperr.Precondition(apperr.ErrNotMarried, "you are not married")
			}
			return topics, nil
		})
	}
	return t.play(func(g *engine.Game) (engine.Outcome, error) { return g.SpouseTalk(input.Topic - 1) })
}

func (t *GameTools) SpouseGift(_ context.Context, _ *mcp.CallToolRequest, input NumberInput) (*mcp.CallToolResult, any, error) {
	return t.play(func(g *engine.Game) (engine.Outcome, error) { return g.SpouseGift(input.Number - 1) })
}

func (t *GameTools) SpouseOuting(_ context.Context, _ *mcp.CallToolRequest, input SpouseOutingInput) (*mcp.CallToolResult, any, error) {
	return t.play(func(g *engine.Game) (engine.Outcome, error) { return g.SpouseOuting(input.Outing) })
}

func (t *GameTools) TryForChild(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return t.play(func(g *engine.Game) (engine.Outcome, error) { return g.TryForChild() })
}

func (t *GameTools) ChildInteract(_ context.Context, _ *mcp.CallToolRequest, input ChildInteractInput) (*mcp.CallToolResult, any, error) {
	return t.play(func(g *engine.Game) (engine.Outcome, error) {
		return g.ChildInteract(input.Child-1, input.Kind, input.Skill)
	})
}

// Resident is an NPC with the player's standing.
type Resident struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Standing int    `json:"standing"`
}

func (t *GameTools) NPCs(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return t.view(func(g *engine.Game) (any, error) {
		npcs := g.NPCs()
		out := make([]Resident, len(npcs))
		for i, n := range npcs {
			out[i] = Resident{Name: n.Name, Role: n.Role, Standing: g.Player.Relations[n.Name]}
		}
		return out, nil
	})
}

// Greeting is what a resident says before the player picks an option.
type Greeting struct {
	Greeting string   `json:"greeting"`
	Options  []string `json:"options"`
}

func (t *GameTools) TalkNPC(_ context.Context, _ *mcp.CallToolRequest, input TalkNPCInput) (*mcp.CallToolResult, any, error) {
	if input.Option == 0 {
		return t.view(func(g *engine.Game) (any, error) {
			greeting, opts, err := g.Greet(input.NPC - 1)
			if err != nil {
				return nil, err
			}
			out := Greeting{Greeting: greeting}
			for _, o := range opts {
				out.Options = append(out.Options, o.Prompt)
			}
			return out, nil
		})
	}
	return t.play(func(g *engine.Game) (engine.Outcome, error) { return g.TalkNPC(input.NPC-1, input.Option-1) })
}

func (t *GameTools) SaveGame(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	rec, err := t.Session.Save()
	if err != nil {
		return toolError("Failed to save: %v", err), nil, nil
	}
	return toolJSON(rec)
}

func (t *GameTools) LoadGame(_ context.Context, _ *mcp.CallToolRequest, input LoadGameInput) (*mcp.CallToolResult, any, error) {
	var st engine.State
	var err error
	if input.Path == "" {
		st, err = t.Session.Continue()
	} else {
		st, err = t.Session.Load(input.Path)
	}
	if err != nil {
		return toolError("Failed to load: %v", err), nil, nil
	}
	return toolJSON(Result{State: st})
}

func (t *GameTools) SaveHistory(_ context.Context, _ *mcp.CallToolRequest, input SaveHistoryInput) (*mcp.CallToolResult, any, error) {
	if input.ID == "" {
		return toolError("Save id is required"), nil, nil
	}
	events, err := t.Session.History(input.ID)
	if err != nil {
		return toolError("Failed to read history: %v", err), nil, nil
	}
	return toolJSON(events)
}

func (t *GameTools) ListSaves(_ context.Context, _ *mcp.CallToolRequest, input ListSavesInput) (*mcp.CallToolResult, any, error) {
	recs, err := t.Session.Saves(input.Limit)
	if err != nil {
		return toolError("Failed to list saves: %v", err), nil, nil
	}
	return toolJSON(recs)
}

// --- Helpers ---

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("Failed to marshal result: %v", err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}
