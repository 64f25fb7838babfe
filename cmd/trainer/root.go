// ABOUTME: Root Cobra command for the trainer CLI.
// ABOUTME: Opens storage, config, and exporters in PersistentPreRunE and closes them after.
package main

import (
	"fmt"

	"github.com/harperreed/trainer/internal/app"
	"github.com/harperreed/trainer/internal/config"
	"github.com/harperreed/trainer/internal/export"
	"github.com/harperreed/trainer/internal/export/contrib"
	"github.com/harperreed/trainer/internal/logging"
	"github.com/harperreed/trainer/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	dbFlag     string
	configFlag string
	verbose    bool
)

var (
	env      config.Env
	logger   *zap.Logger
	db       *storage.DB
	cfgStore *config.Store
	svc      *app.Service
)

var rootCmd = &cobra.Command{
	Use:           "trainer",
	Short:         "Student and training plan manager",
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version,
	Long: `Trainer keeps track of the people you coach and the training plans you
write for them.

QUICK START:

  $ trainer student add "Ana Souza" --email ana@example.com
  $ trainer student list
  $ trainer plan add 1 "Treino A" -e "Supino:4:10:40kg" -e "Remada:3:12"
  $ trainer plan show 1
  $ trainer plan export 1 --format pdf -o ~/Documents

STUDENT FIELDS:

  name, email, enrollment_date, plan, payment, progress, diet, training

  $ trainer student set 1 payment "paid until 2024-06"

EXPORT FORMATS:

  pdf, csv, xlsx are built in. yaml and markdown ship as plugins and can be
  turned off with DISABLED_PLUGINS=yaml,markdown.

SERVERS:

  $ trainer serve --addr :8080     # REST API, reloads config on change
  $ trainer mcp                    # MCP server over stdio

DATA STORAGE:

  Records live in SQLite at ~/.local/share/trainer/trainer.db (override with
  --db or TRAINER_DB). Settings live in ~/.config/trainer/config.json
  (override with --config or CONFIG_FILE).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}
		return setup()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

func setup() error {
	var err error
	logger, err = logging.New(logging.Options{Verbose: verbose, Console: true})
	if err != nil {
		return err
	}

	env, err = config.FromEnv()
	if err != nil {
		return err
	}

	dbPath := dbFlag
	if dbPath == "" {
		dbPath = env.DBPath
	}
	if dbPath == "" {
		dbPath = storage.DefaultDBPath()
	}
	db, err = storage.Open(config.ExpandPath(dbPath), storage.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	cfgPath := configFlag
	if cfgPath == "" {
		cfgPath = env.ConfigPath()
	}
	cfgStore = config.NewStore(config.ExpandPath(cfgPath), logger)

	loader := export.NewLoader(contrib.Catalog(), env.DisabledPlugins, logger)
	svc = app.New(db, cfgStore, export.NewDefaultRegistry(loader, logger), logger)
	return nil
}

func teardown() error {
	var err error
	if db != nil {
		err = db.Close()
		db = nil
	}
	if logger != nil {
		_ = logger.Sync()
	}
	return err
}

// Execute runs the root command. Resources are released even when the
// command fails, since cobra skips PersistentPostRunE on error.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := teardown(); err == nil {
		err = cerr
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "database file (default ~/.local/share/trainer/trainer.db)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default ~/.config/trainer/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
}
