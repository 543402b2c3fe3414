package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/talgya/medieval-life/internal/agents"
	"github.com/talgya/medieval-life/internal/entropy"
	"github.com/talgya/medieval-life/internal/world"
)

// Document is the on-disk shape of a saved game.
type Document struct {
	Player   *agents.Player `json:"player"`
	World    *world.World   `json:"world"`
	Year     int            `json:"current_year"`
	Season   string         `json:"current_season"`
	Location string         `json:"current_location"`
	Day      int            `json:"current_day"`
	Turn     int            `json:"turn"`
}

// FileTimeLayout stamps save file names.
const FileTimeLayout = "20060102_150405"

// FileName builds save_<name>_<stamp>.json for a player name.
func FileName(player string, at time.Time) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r == '/' || r == '\\' || r == ':' || r == '.':
			return -1
		}
		return r
	}, strings.TrimSpace(player))
	return fmt.Sprintf("save_%s_%s.json", name, at.Format(FileTimeLayout))
}

// WriteSave writes doc into dir and returns the file path.
func WriteSave(dir string, doc Document, at time.Time) (string, error) {
	if doc.Player == nil {
		return "", fmt.Errorf("write save: no player")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create save dir: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encode save: %w", err)
	}
	path := filepath.Join(dir, FileName(doc.Player.Name, at))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write save: %w", err)
	}
	return path, nil
}

// ListSaveFiles returns the save files in dir, newest name first.
// A missing directory has no saves.
func ListSaveFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "save_*.json"))
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(matches)))
	return matches, nil
}

// Older saves held a spouse or children as bare name strings. legacyPlayer
// captures both fields raw so either shape decodes.
type legacyPlayer struct {
	agents.Player
	Spouse   json.RawMessage   `json:"spouse"`
	Children []json.RawMessage `json:"children"`
}

// legacyDocument keeps the world raw as well. Older saves keyed kingdoms by
// name; such a world is dropped and the game regenerates one.
type legacyDocument struct {
	Player   *legacyPlayer   `json:"player"`
	World    json.RawMessage `json:"world"`
	Year     int             `json:"current_year"`
	Season   string          `json:"current_season"`
	Location string          `json:"current_location"`
	Day      int             `json:"current_day"`
	Turn     int             `json:"turn"`
}

// ReadSave loads a save document and resolves legacy shapes into canonical
// records. src rolls the attributes a legacy record lacks.
func ReadSave(src entropy.Source, path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read save: %w", err)
	}
	var raw legacyDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("decode save %s: %w", filepath.Base(path), err)
	}
	if raw.Player == nil {
		return Document{}, fmt.Errorf("decode save %s: no player", filepath.Base(path))
	}

	p := raw.Player.Player
	sp := agents.NewSpawner(src)
	spouse, err := decodeSpouse(src, sp, raw.Player.Spouse, p.Gender)
	if err != nil {
		return Document{}, fmt.Errorf("decode spouse: %w", err)
	}
	p.Spouse = spouse
	p.Children = nil
	for i, rc := range raw.Player.Children {
		c, err := decodeChild(src, sp, rc)
		if err != nil {
			return Document{}, fmt.Errorf("decode child %d: %w", i, err)
		}
		p.Children = append(p.Children, c)
	}
	Normalize(&p)

	return Document{
		Player:   &p,
		World:    decodeWorld(raw.World),
		Year:     raw.Year,
		Season:   raw.Season,
		Location: raw.Location,
		Day:      raw.Day,
		Turn:     raw.Turn,
	}, nil
}

func decodeWorld(raw json.RawMessage) *world.World {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var w world.World
	if err := json.Unmarshal(raw, &w); err != nil {
		slog.Debug("saved world has an unknown shape; it will be regenerated", "error", err)
		return nil
	}
	return &w
}

func decodeSpouse(src entropy.Source, sp *agents.Spawner, raw json.RawMessage, playerGender agents.Gender) (*agents.Spouse, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return nil, err
		}
		return &agents.Spouse{
			Name:         name,
			Gender:       playerGender.Opposite(),
			Age:          float64(entropy.IntRange(src, 16, 40)),
			Traits:       sp.Traits(),
			Relationship: 75,
		}, nil
	}
	var s agents.Spouse
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func decodeChild(src entropy.Source, sp *agents.Spawner, raw json.RawMessage) (agents.Child, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return agents.Child{}, err
		}
		c := sp.Newborn()
		c.Name = name
		c.Age = float64(entropy.IntRange(src, 0, 10))
		return c, nil
	}
	var c agents.Child
	if err := json.Unmarshal(raw, &c); err != nil {
		return agents.Child{}, err
	}
	return c, nil
}

// Normalize clamps every bounded score and fills missing collections.
func Normalize(p *agents.Player) {
	if occ, ok := agents.ParseOccupation(string(p.Occupation)); ok {
		p.Occupation = occ
	}
	if g, ok := agents.ParseGender(string(p.Gender)); ok {
		p.Gender = g
	}
	p.Health = agents.ClampScore(p.Health)
	p.Reputation = agents.ClampScore(p.Reputation)
	p.Wealth = max(p.Wealth, 0)
	if p.Skills == nil {
		p.Skills = make(map[agents.Skill]int)
	}
	if p.Equipment == nil {
		p.Equipment = make(map[agents.Category]agents.Item)
	}
	if p.Relations == nil {
		p.Relations = make(map[string]int)
	}
	for name, v := range p.Relations {
		p.Relations[name] = agents.Clamp(v, -100, 100)
	}
	for i, it := range p.Inventory {
		p.Inventory[i] = it.Normalize()
	}
	if p.Spouse != nil {
		p.Spouse.Relationship = agents.ClampScore(p.Spouse.Relationship)
	}
	for i := range p.Children {
		c := &p.Children[i]
		c.Relationship = agents.ClampScore(c.Relationship)
		if c.Skills == nil {
			c.Skills = make(map[agents.Skill]int)
		}
	}
}
