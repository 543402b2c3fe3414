package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/talgya/medieval-life/internal/entropy"
	"github.com/talgya/medieval-life/internal/persistence"
	"github.com/talgya/medieval-life/internal/session"
)

func newShell(t *testing.T) (*Shell, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &Shell{Session: session.New(entropy.NewSeeded(3), t.TempDir(), nil), Out: &out}, &out
}

func TestRunScript(t *testing.T) {
	sh, out := newShell(t)
	script := strings.Join([]string{
		"status",
		"new Ada female Tavern Owner",
		"actions",
		"do 1",
		"end",
		"frobnicate",
		"buy x",
		"save",
		"quit",
		"status",
	}, "\n")

	if err := sh.Run(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"no game in progress",
		"Ada the Tavern Owner",
		"Serve Guests",
		"You decided to serve guests.",
		"Summer Summary",
		`unknown command "frobnicate"`,
		"not a number: x",
		"Game saved to",
		"Farewell.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Count(got, "Ada the Tavern Owner") != 1 {
		t.Error("commands after quit were run")
	}
}

func TestExec(t *testing.T) {
	sh, out := newShell(t)
	if err := sh.Exec("new Tom male Farmer"); err != nil {
		t.Fatalf("new: %v", err)
	}

	tests := []struct {
		line    string
		wantErr bool
		want    string
	}{
		{"", false, ""},
		{"inv", false, "You carry nothing."},
		{"spouse", false, "Dowry"},
		{"marry 99", true, ""},
		{"child", true, ""},
		{"kid 1 play", true, ""},
		{"unequip", true, ""},
		{"npcs", false, "Standing"},
		{"npc 1", false, "1."},
		{"travel", false, "Destination"},
		{"go 1", false, "You traveled to"},
		{"new Tom", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			out.Reset()
			err := sh.Exec(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Exec(%q) err = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("Exec(%q) output = %q, want %q", tt.line, out.String(), tt.want)
			}
		})
	}
}

func TestQuit(t *testing.T) {
	sh, _ := newShell(t)
	if err := sh.Exec("quit"); !errors.Is(err, ErrQuit) {
		t.Errorf("quit err = %v", err)
	}
}

func TestLoadAndHistory(t *testing.T) {
	dir := t.TempDir()
	db, err := persistence.Open(filepath.Join(dir, "chronicle.db"))
	if err != nil {
		t.Fatalf("open chronicle: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	var out bytes.Buffer
	sh := &Shell{Session: session.New(entropy.NewSeeded(5), filepath.Join(dir, "saves"), db), Out: &out}

	if err := sh.Exec("load"); err == nil {
		t.Fatal("load with no saves succeeded")
	}
	for _, line := range []string{"new Ada female Merchant", "save", "new Tom male Farmer"} {
		if err := sh.Exec(line); err != nil {
			t.Fatalf("Exec(%q): %v", line, err)
		}
	}
	out.Reset()
	if err := sh.Exec("load"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.Contains(out.String(), "Ada the Merchant") {
		t.Errorf("load did not continue the last save:\n%s", out.String())
	}

	out.Reset()
	if err := sh.Exec("history 1"); err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out.String(), "You begin your life as a Merchant") {
		t.Errorf("history output = %q", out.String())
	}
	if err := sh.Exec("history 2"); err == nil {
		t.Error("history of a missing save succeeded")
	}
}

func TestRunStopsWhenCancelled(t *testing.T) {
	sh, out := newShell(t)
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sh.Run(ctx, pr); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run err = %v, want context.Canceled", err)
	}
	if strings.Contains(out.String(), "Farewell.") {
		t.Error("cancelled session said farewell")
	}
}
