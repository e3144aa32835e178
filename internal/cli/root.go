// Package cli implements the intake CLI commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/wellbeing-intake/internal/config"
	"github.com/rcliao/wellbeing-intake/internal/generator"
	"github.com/rcliao/wellbeing-intake/internal/intake"
	"github.com/rcliao/wellbeing-intake/internal/logging"
	"github.com/rcliao/wellbeing-intake/internal/rules"
	"github.com/rcliao/wellbeing-intake/internal/store"
)

// Version is reported by the MCP server.
const Version = "0.1.0"

var (
	dbPath     string
	nsFlag     string
	backend    string
	genFlag    string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "intake",
	Short: "Conversational wellbeing check-in",
	Long: "Turns a free-text check-in into stored factors, a risk-banded snapshot and at most one " +
		"clarifying question. SQLite-backed by default, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $INTAKE_DB or ~/.intake/intake.db)")
	RootCmd.PersistentFlags().StringVarP(&nsFlag, "ns", "n", "", "Conversation namespace (default: $INTAKE_NS or default)")
	RootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Storage backend: sqlite or redis (default: $INTAKE_BACKEND or sqlite)")
	RootCmd.PersistentFlags().StringVar(&genFlag, "generator", "", "Question generator: none, ollama, openai or genai (default: $INTAKE_GENERATOR)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

// loadConfig layers persistent flags over config.LoadConfig.
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		cfg.Storage.DBPath = dbPath
	}
	if nsFlag != "" {
		cfg.Namespace = nsFlag
	}
	if backend != "" {
		cfg.Storage.Backend = backend
	}
	if genFlag != "" {
		cfg.Generator.Provider = genFlag
	}
	if err := cfg.Validate(); err != nil {
		exitErr("config", err)
	}
	return cfg
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Storage.Backend {
	case "redis":
		return store.NewRedisStore(cfg.Storage.RedisAddr, cfg.Storage.RedisPrefix)
	default:
		return store.NewSQLiteStore(cfg.Storage.DBPath)
	}
}

// app is everything a command needs, opened from config.
type app struct {
	cfg   *config.Config
	store store.Store
	log   *logging.Logger
	orch  *intake.Orchestrator
}

func (a *app) Close() {
	a.log.Sync()
	a.store.Close()
}

func openApp(ctx context.Context) *app {
	cfg := loadConfig()
	log, err := logging.New(cfg.Log.Mode)
	if err != nil {
		exitErr("logger", err)
	}
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	gen, err := generator.New(ctx, generator.Settings{
		Provider: cfg.Generator.Provider,
		Model:    cfg.Generator.Model,
		URL:      cfg.Generator.URL,
		APIKey:   cfg.Generator.APIKey,
	})
	if err != nil {
		s.Close()
		exitErr("generator", err)
	}

	d := intake.Deps{
		Store:            s,
		Rules:            rules.New(rules.WithMaxFollowUps(cfg.Intake.MaxFollowUps)),
		GeneratorTimeout: cfg.Generator.Timeout,
		Log:              log,
	}
	if gen != nil {
		d.Generator = gen
		log.Debug("question generator enabled", "provider", gen.Name())
	}
	return &app{cfg: cfg, store: s, log: log, orch: intake.New(d)}
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
