package persistence

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/talgya/medieval-life/internal/agents"
	"github.com/talgya/medieval-life/internal/entropy"
	"github.com/talgya/medieval-life/internal/world"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "chronicle.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testPlayer() *agents.Player {
	return &agents.Player{
		ID:         "p1",
		Name:       "Ada of Millvale",
		Gender:     agents.GenderFemale,
		Age:        21.5,
		Occupation: agents.OccupationFarmer,
		Health:     80,
		Wealth:     42,
		Reputation: 50,
		Skills:     map[agents.Skill]int{agents.SkillFarming: 9},
		Traits:     []agents.Trait{agents.TraitKind, agents.TraitPious},
		Inventory:  []agents.Item{{Name: "Bread", Category: agents.CategoryFood, Value: 2, HealthValue: 2}},
		Equipment:  map[agents.Category]agents.Item{},
		Spouse:     &agents.Spouse{Name: "Hugh", Gender: agents.GenderMale, Age: 25, Relationship: 80},
		Children:   []agents.Child{{Name: "Emma", Gender: agents.GenderFemale, Age: 2, Relationship: 100}},
		Events:     []agents.LogEntry{{Text: "You begin your life as a Farmer in Millvale.", Timestamp: "Spring, Year 1200"}},
	}
}

func TestFileName(t *testing.T) {
	at := time.Date(1999, 3, 4, 5, 6, 7, 0, time.UTC)
	if got := FileName("Ada of Millvale", at); got != "save_Ada_of_Millvale_19990304_050607.json" {
		t.Errorf("FileName = %q", got)
	}
	if got := FileName("../etc", at); strings.Contains(got, "/") {
		t.Errorf("FileName kept a path separator: %q", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "saves")
	doc := Document{
		Player:   testPlayer(),
		World:    world.Generate(7),
		Year:     1203,
		Season:   "Autumn",
		Location: "Millvale",
		Day:      12,
		Turn:     14,
	}
	path, err := WriteSave(dir, doc, time.Now())
	if err != nil {
		t.Fatalf("WriteSave: %v", err)
	}

	got, err := ReadSave(entropy.NewSequence(0.5), path)
	if err != nil {
		t.Fatalf("ReadSave: %v", err)
	}
	if got.Year != 1203 || got.Season != "Autumn" || got.Location != "Millvale" || got.Day != 12 || got.Turn != 14 {
		t.Errorf("header = %d %s %s %d %d", got.Year, got.Season, got.Location, got.Day, got.Turn)
	}
	p := got.Player
	if p.Name != "Ada of Millvale" || p.Wealth != 42 || p.Skills[agents.SkillFarming] != 9 {
		t.Errorf("player = %+v", p)
	}
	if p.Spouse == nil || p.Spouse.Name != "Hugh" || p.Spouse.Relationship != 80 {
		t.Errorf("spouse = %+v", p.Spouse)
	}
	if len(p.Children) != 1 || p.Children[0].Name != "Emma" {
		t.Errorf("children = %+v", p.Children)
	}
	if len(got.World.Locations) != len(doc.World.Locations) {
		t.Errorf("world has %d locations, want %d", len(got.World.Locations), len(doc.World.Locations))
	}
	if k, _ := got.World.KindOf("Crownhaven"); k != world.KindCapital {
		t.Errorf("Crownhaven kind = %v", k)
	}

	files, err := ListSaveFiles(dir)
	if err != nil || len(files) != 1 || files[0] != path {
		t.Errorf("ListSaveFiles = %v, %v", files, err)
	}
}

func TestReadSaveNormalizesLegacyShapes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save_old.json")
	legacy := `{
		"player": {
			"name": "Tom", "gender": "male", "age": 30, "occupation": "Farmer",
			"health": 140, "wealth": -5, "reputation": 50,
			"spouse": "Agnes",
			"children": ["Hugh", {"name": "Joan", "gender": "female", "age": 3, "relationship": 250}],
			"events": []
		},
		"current_year": 1201,
		"current_season": "Winter",
		"current_location": "Oakhill",
		"turn": 5
	}`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := ReadSave(entropy.NewSeeded(1), path)
	if err != nil {
		t.Fatalf("ReadSave: %v", err)
	}
	p := doc.Player
	if p.Health != 100 || p.Wealth != 0 {
		t.Errorf("health %d, wealth %d, want clamped 100 and 0", p.Health, p.Wealth)
	}
	s := p.Spouse
	if s == nil || s.Name != "Agnes" || s.Relationship != 75 || s.Gender != agents.GenderFemale {
		t.Fatalf("spouse = %+v", s)
	}
	if s.Age < 16 || s.Age > 40 || len(s.Traits) < 2 {
		t.Errorf("spouse age %v, traits %v", s.Age, s.Traits)
	}
	if len(p.Children) != 2 {
		t.Fatalf("children = %+v", p.Children)
	}
	hugh := p.Children[0]
	if hugh.Name != "Hugh" || hugh.Relationship != 100 || hugh.Age < 0 || hugh.Age > 10 {
		t.Errorf("legacy child = %+v", hugh)
	}
	if p.Children[1].Relationship != 100 {
		t.Errorf("child relationship = %d, want clamped 100", p.Children[1].Relationship)
	}
	if p.Skills == nil || p.Equipment == nil || p.Relations == nil {
		t.Error("missing collections were not filled")
	}
}

func TestReadSaveDropsKingdomMapWorld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save_old.json")
	legacy := `{
		"player": {"name": "Tom", "gender": "male", "age": 30, "occupation": "Farmer", "health": 90, "wealth": 20},
		"world": {"kingdoms": {"Westoria": {"ruler": "King Edmund", "capital": "Crownhaven",
			"cities": ["Crownhaven"], "villages": ["Millvale"], "prosperity": 70, "stability": 65}}},
		"current_year": 1202,
		"current_season": "Autumn",
		"current_location": "Millvale"
	}`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := ReadSave(entropy.NewSeeded(1), path)
	if err != nil {
		t.Fatalf("ReadSave: %v", err)
	}
	if doc.World != nil {
		t.Errorf("world = %+v, want it dropped", doc.World)
	}
	if doc.Player.Name != "Tom" || doc.Year != 1202 || doc.Location != "Millvale" {
		t.Errorf("doc = %+v", doc)
	}
}

func TestReadSaveErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{not json"), 0o644)
	empty := filepath.Join(dir, "empty.json")
	os.WriteFile(empty, []byte(`{"current_year": 1200}`), 0o644)

	for _, path := range []string{bad, empty, filepath.Join(dir, "missing.json")} {
		if _, err := ReadSave(entropy.NewSequence(0.5), path); err == nil {
			t.Errorf("ReadSave(%s) succeeded", filepath.Base(path))
		}
	}
}

func TestChronicle(t *testing.T) {
	db := openTestDB(t)
	p := testPlayer()

	first, err := db.RecordSave(SaveRecord{Player: p.Name, Path: "a.json", Year: 1200, Season: "Spring", Wealth: 10, CreatedAt: time.Unix(1000, 0)}, p.Events)
	if err != nil {
		t.Fatalf("RecordSave: %v", err)
	}
	if first.ID == "" {
		t.Fatal("no save id assigned")
	}
	p.AddEvent("Summer, Year 1200", "You harvested.")
	second, err := db.RecordSave(SaveRecord{Player: p.Name, Path: "b.json", Year: 1200, Season: "Summer", Wealth: 30, CreatedAt: time.Unix(2000, 0)}, p.Events)
	if err != nil {
		t.Fatalf("RecordSave: %v", err)
	}

	saves, err := db.Saves(10)
	if err != nil {
		t.Fatalf("Saves: %v", err)
	}
	if len(saves) != 2 || saves[0].ID != second.ID || saves[1].Path != "a.json" {
		t.Errorf("saves = %+v", saves)
	}

	last, err := db.LastSave()
	if err != nil || last.ID != second.ID || last.Season != "Summer" {
		t.Errorf("LastSave = %+v, %v", last, err)
	}

	events, err := db.SaveEvents(second.ID)
	if err != nil {
		t.Fatalf("SaveEvents: %v", err)
	}
	if len(events) != 2 || events[1].Text != "You harvested." || events[1].Timestamp != "Summer, Year 1200" {
		t.Errorf("events = %+v", events)
	}

	if v, err := db.GetMeta("last_player"); err != nil || v != second.Player {
		t.Errorf("GetMeta(last_player) = %q, %v", v, err)
	}
}
