// Package session holds the one game being played, shared by the terminal
// and MCP front ends, with saving and loading against the save directory
// and the chronicle.
package session

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/talgya/medieval-life/internal/agents"
	"github.com/talgya/medieval-life/internal/apperr"
	"github.com/talgya/medieval-life/internal/engine"
	"github.com/talgya/medieval-life/internal/entropy"
	"github.com/talgya/medieval-life/internal/persistence"
	"github.com/talgya/medieval-life/internal/world"
)

// Session serializes access to the current game.
type Session struct {
	mu      sync.Mutex
	src     entropy.Source
	saveDir string
	db      *persistence.DB
	game    *engine.Game

	// OnChange is handed to every game the session starts or loads.
	OnChange func(engine.State)
	// Now stamps save files. Defaults to time.Now.
	Now func() time.Time
}

// New creates a session with no game. db may be nil, in which case saves
// are written but not chronicled.
func New(src entropy.Source, saveDir string, db *persistence.DB) *Session {
	return &Session{src: src, saveDir: saveDir, db: db, Now: time.Now}
}

// NewGame generates a realm and starts a new life in it, replacing any
// game in progress.
func (s *Session) NewGame(in agents.CreateInput) (engine.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := world.Generate(int64(s.src.Intn(math.MaxInt32)) + 1)
	g, err := engine.New(s.src, w, in)
	if err != nil {
		return engine.State{}, err
	}
	g.OnChange = s.OnChange
	s.game = g
	return g.State(), nil
}

// Run calls fn with the current game while holding the session lock.
func (s *Session) Run(fn func(g *engine.Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game == nil {
		return apperr.Precondition(apperr.ErrNoGame, "no game in progress; start a new one or load a save")
	}
	return fn(s.game)
}

// State returns a snapshot of the current game.
func (s *Session) State() (engine.State, error) {
	var st engine.State
	err := s.Run(func(g *engine.Game) error {
		st = g.State()
		return nil
	})
	return st, err
}

// Save writes the game to a new save file and records it in the chronicle.
func (s *Session) Save() (persistence.SaveRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game == nil {
		return persistence.SaveRecord{}, apperr.Precondition(apperr.ErrNoGame, "nothing to save")
	}

	g := s.game
	at := s.Now()
	path, err := persistence.WriteSave(s.saveDir, g.Document(), at)
	if err != nil {
		return persistence.SaveRecord{}, err
	}
	rec := persistence.SaveRecord{
		Player:    g.Player.Name,
		Path:      path,
		Year:      g.Year,
		Season:    world.SeasonName(g.Season),
		Wealth:    g.Player.Wealth,
		CreatedAt: at,
	}
	if s.db != nil {
		rec, err = s.db.RecordSave(rec, g.Player.Events)
		if err != nil {
			return rec, fmt.Errorf("chronicle save %s: %w", path, err)
		}
	}
	slog.Info("game saved", "player", rec.Player, "path", path)
	return rec, nil
}

// Load replaces the current game with the one saved at path.
func (s *Session) Load(path string) (engine.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(path)
}

// Continue loads the most recent save: the chronicle's last save when one
// is open, otherwise the newest file in the save directory.
func (s *Session) Continue() (engine.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var path string
	if s.db != nil {
		rec, err := s.db.LastSave()
		if errors.Is(err, sql.ErrNoRows) {
			return engine.State{}, apperr.NotFound("no saves yet")
		}
		if err != nil {
			return engine.State{}, fmt.Errorf("last save: %w", err)
		}
		path = rec.Path
	} else {
		paths, err := persistence.ListSaveFiles(s.saveDir)
		if err != nil {
			return engine.State{}, err
		}
		if len(paths) == 0 {
			return engine.State{}, apperr.NotFound("no saves yet")
		}
		path = paths[0]
	}
	return s.load(path)
}

func (s *Session) load(path string) (engine.State, error) {
	doc, err := persistence.ReadSave(s.src, path)
	if err != nil {
		return engine.State{}, err
	}
	g, err := engine.Resume(s.src, doc)
	if err != nil {
		return engine.State{}, err
	}
	g.OnChange = s.OnChange
	s.game = g
	slog.Info("game loaded", "player", g.Player.Name, "path", path)
	return g.State(), nil
}

// History returns the event log a chronicled save captured, oldest first.
func (s *Session) History(saveID string) ([]agents.LogEntry, error) {
	if s.db == nil {
		return nil, apperr.Precondition(apperr.ErrNoChronicle, "saves are not chronicled in this session")
	}
	events, err := s.db.SaveEvents(saveID)
	if err != nil {
		return nil, fmt.Errorf("save history %s: %w", saveID, err)
	}
	if len(events) == 0 {
		return nil, apperr.NotFound("no history for save %s", saveID)
	}
	return events, nil
}

// DefaultSaveListLimit bounds Saves when no limit is given.
const DefaultSaveListLimit = 20

// Saves lists known saves, newest first. Without a chronicle it falls back
// to the files in the save directory.
func (s *Session) Saves(limit int) ([]persistence.SaveRecord, error) {
	if limit <= 0 {
		limit = DefaultSaveListLimit
	}
	if s.db != nil {
		return s.db.Saves(limit)
	}
	paths, err := persistence.ListSaveFiles(s.saveDir)
	if err != nil {
		return nil, err
	}
	if len(paths) > limit {
		paths = paths[:limit]
	}
	out := make([]persistence.SaveRecord, len(paths))
	for i, p := range paths {
		out[i] = persistence.SaveRecord{Path: p}
	}
	return out, nil
}
