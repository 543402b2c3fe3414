package config

import (
	"flag"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("medieval", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	want := Config{
		SaveDir:   "saves",
		DBPath:    "data/chronicle.db",
		LogLevel:  "info",
		Transport: TransportCLI,
	}
	if cfg != want {
		t.Fatalf("config = %+v, want %+v", cfg, want)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("MEDIEVAL_SAVE_DIR", "/tmp/saves")
	t.Setenv("MEDIEVAL_SEED", "42")
	t.Setenv("MEDIEVAL_TRANSPORT", "mcp")
	t.Setenv("RANDOM_ORG_API_KEY", "key")

	cfg, err := ParseConfig(newFlagSet(), []string{"-seed", "7", "-log-level", "debug"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.SaveDir != "/tmp/saves" || cfg.Transport != TransportMCP || cfg.RandomOrgAPIKey != "key" {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.Seed != 7 {
		t.Errorf("seed = %d, want the flag to win", cfg.Seed)
	}
	if l, _ := cfg.Level(); l != slog.LevelDebug {
		t.Errorf("level = %v", l)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
		want string
	}{
		{"bad seed", map[string]string{"MEDIEVAL_SEED": "soon"}, nil, "parse env:"},
		{"bad transport", nil, []string{"-transport", "telegraph"}, "unknown transport"},
		{"bad level", nil, []string{"-log-level", "loud"}, "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := ParseConfig(newFlagSet(), tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}
