// Command medieval runs the medieval life game in the terminal or as an MCP
// stdio server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/talgya/medieval-life/internal/cli"
	"github.com/talgya/medieval-life/internal/config"
	"github.com/talgya/medieval-life/internal/engine"
	"github.com/talgya/medieval-life/internal/entropy"
	"github.com/talgya/medieval-life/internal/persistence"
	"github.com/talgya/medieval-life/internal/session"
	"github.com/talgya/medieval-life/internal/tools"
)

const version = "0.1.0"

func main() {
	// A missing .env is normal; the environment and flags still apply.
	envErr := godotenv.Load()

	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	level, _ := cfg.Level()

	// Logs go to stderr so they never mix with the game or the MCP stream.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	if envErr != nil {
		slog.Debug("no .env file loaded", "error", envErr)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg)
	cancel()
	if err != nil {
		slog.Error("medieval stopped", "error", err)
		os.Exit(1)
	}
}

// run plays until the front end finishes or ctx is cancelled. Deferred
// cleanup runs before main decides the exit code.
func run(ctx context.Context, cfg config.Config) error {
	// ── Randomness ───────────────────────────────────────────────────
	var src entropy.Source
	switch {
	case cfg.Seed != 0:
		src = entropy.NewSeeded(cfg.Seed)
		slog.Info("seeded random source", "seed", cfg.Seed)
	case cfg.RandomOrgAPIKey != "":
		src = entropy.NewClient(cfg.RandomOrgAPIKey)
		slog.Info("random.org source enabled")
	default:
		src = entropy.NewSeeded(entropy.NewSeed())
	}

	// ── Chronicle ────────────────────────────────────────────────────
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open chronicle %s: %w", cfg.DBPath, err)
	}
	defer db.Close()
	slog.Info("chronicle opened", "path", cfg.DBPath)

	sess := session.New(src, cfg.SaveDir, db)
	sess.OnChange = logSnapshot

	switch cfg.Transport {
	case config.TransportMCP:
		slog.Info("MCP server starting (stdio)", "version", version)
		if err := tools.NewServer(sess, version).Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			return fmt.Errorf("mcp server: %w", err)
		}
	default:
		sh := &cli.Shell{Session: sess, Out: os.Stdout}
		if err := sh.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
			return fmt.Errorf("terminal session: %w", err)
		}
	}
	return nil
}

// logSnapshot traces every state change at debug level.
func logSnapshot(st engine.State) {
	slog.Debug("state changed",
		"turn", st.Turn,
		"date", st.Date,
		"location", st.Location,
		"wealth", st.Player.Wealth,
		"health", st.Player.Health,
	)
}
