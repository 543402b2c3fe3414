package session

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/talgya/medieval-life/internal/agents"
	"github.com/talgya/medieval-life/internal/apperr"
	"github.com/talgya/medieval-life/internal/engine"
	"github.com/talgya/medieval-life/internal/entropy"
	"github.com/talgya/medieval-life/internal/persistence"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	dir := t.TempDir()
	db, err := persistence.Open(filepath.Join(dir, "chronicle.db"))
	if err != nil {
		t.Fatalf("open chronicle: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := New(entropy.NewSeeded(7), filepath.Join(dir, "saves"), db)
	s.Now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) }
	return s
}

func TestRunWithoutGame(t *testing.T) {
	s := newTestSession(t)
	err := s.Run(func(*engine.Game) error { return nil })
	if !errors.Is(err, apperr.ErrNoGame) || !apperr.IsPrecondition(err) {
		t.Fatalf("err = %v, want no game precondition", err)
	}
	if _, err := s.Save(); !errors.Is(err, apperr.ErrNoGame) {
		t.Fatalf("save err = %v", err)
	}
}

func TestNewGameRejectsBadForm(t *testing.T) {
	s := newTestSession(t)
	if _, err := s.NewGame(agents.CreateInput{Name: "Ada", Gender: "female", Occupation: "Wizard"}); !apperr.IsValidation(err) {
		t.Fatalf("err = %v, want validation", err)
	}
	if _, err := s.State(); !errors.Is(err, apperr.ErrNoGame) {
		t.Errorf("rejected form started a game: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := newTestSession(t)
	var changes int
	s.OnChange = func(engine.State) { changes++ }

	st, err := s.NewGame(agents.CreateInput{Name: "Ada Lovel", Gender: "female", Occupation: "Merchant"})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if st.Player.Name != "Ada Lovel" || st.Year != engine.StartYear {
		t.Fatalf("state = %+v", st)
	}
	if err := s.Run(func(g *engine.Game) error {
		g.EndSeason()
		return nil
	}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if changes != 1 {
		t.Errorf("OnChange fired %d times, want 1", changes)
	}

	rec, err := s.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.ID == "" || rec.Season != "Summer" || filepath.Base(rec.Path) != "save_Ada_Lovel_20240501_093000.json" {
		t.Errorf("record = %+v", rec)
	}

	saves, err := s.Saves(0)
	if err != nil || len(saves) != 1 || saves[0].ID != rec.ID {
		t.Fatalf("Saves = %+v, %v", saves, err)
	}

	loaded, err := s.Load(rec.Path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Season != "Summer" || loaded.Player.Name != "Ada Lovel" || loaded.Location != st.Location {
		t.Errorf("loaded = %s %s at %s", loaded.Player.Name, loaded.Season, loaded.Location)
	}
}

func TestSavesWithoutChronicle(t *testing.T) {
	s := New(entropy.NewSeeded(7), t.TempDir(), nil)
	if _, err := s.NewGame(agents.CreateInput{Name: "Tom", Gender: "male", Occupation: "Farmer"}); err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	rec, err := s.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	saves, err := s.Saves(5)
	if err != nil || len(saves) != 1 || saves[0].Path != rec.Path {
		t.Fatalf("Saves = %+v, %v", saves, err)
	}
}

func TestContinueAndHistory(t *testing.T) {
	s := newTestSession(t)
	if _, err := s.Continue(); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("Continue with no saves err = %v", err)
	}

	if _, err := s.NewGame(agents.CreateInput{Name: "Ada", Gender: "female", Occupation: "Knight"}); err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	rec, err := s.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := s.NewGame(agents.CreateInput{Name: "Tom", Gender: "male", Occupation: "Farmer"}); err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	st, err := s.Continue()
	if err != nil {
		t.Fatalf("Continue: %v", err)
	}
	if st.Player.Name != "Ada" {
		t.Errorf("continued as %q, want Ada", st.Player.Name)
	}

	events, err := s.History(rec.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(events) != len(st.Player.Events) || events[0].Text != st.Player.Events[0].Text {
		t.Errorf("history = %+v", events)
	}
	if _, err := s.History("missing"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("History(missing) err = %v", err)
	}
}

func TestHistoryWithoutChronicle(t *testing.T) {
	s := New(entropy.NewSeeded(7), t.TempDir(), nil)
	if _, err := s.History("x"); !errors.Is(err, apperr.ErrNoChronicle) {
		t.Errorf("err = %v", err)
	}
	if _, err := s.NewGame(agents.CreateInput{Name: "Tom", Gender: "male", Occupation: "Farmer"}); err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if _, err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if st, err := s.Continue(); err != nil || st.Player.Name != "Tom" {
		t.Errorf("Continue = %s, %v", st.Player.Name, err)
	}
}
