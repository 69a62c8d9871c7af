// Package cli wires the journal packages into the journal command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fabiareis/trading-journal/blobstore"
	"github.com/fabiareis/trading-journal/config"
	"github.com/fabiareis/trading-journal/internal/i18n"
	"github.com/fabiareis/trading-journal/internal/logger"
	"github.com/fabiareis/trading-journal/internal/telemetry"
	"github.com/fabiareis/trading-journal/journal"
	"github.com/fabiareis/trading-journal/users"
	"github.com/fabiareis/trading-journal/view"
)

// RootConfig holds the persistent flags.
type RootConfig struct {
	ConfigPath  string
	EnvFile     string
	StoreType   string
	DataDir     string
	LogLevel    string
	MetricsFile string
}

// app is everything a subcommand needs, built once per invocation.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	metrics *telemetry.Metrics
	store   blobstore.Store
	journal *journal.Journal
	users   *users.Manager
	tr      *i18n.Translator
	fmt     *view.Formatter
}

// skipSetup marks commands that run without opening the store.
const skipSetup = "skip-setup"

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}
	a := &app{}

	cmd := &cobra.Command{
		Use:           "journal",
		Short:         "Trading journal: daily operations, trades and performance reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.EnvFile, "env-file", ".env", "Environment file loaded before the config")
	cmd.PersistentFlags().StringVar(&rc.StoreType, "store", "", "Blob store: memory|file|sqlite|redis|postgres")
	cmd.PersistentFlags().StringVar(&rc.DataDir, "data", "", "Data directory for the file and sqlite stores")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().StringVar(&rc.MetricsFile, "metrics-file", "", "Write prometheus metrics to this file on exit")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[skipSetup] != "" {
			return nil
		}
		return a.setup(cmd, rc)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[skipSetup] != "" {
			return nil
		}
		return a.close(rc)
	}

	cmd.AddCommand(
		newOpCmd(a),
		newTradeCmd(a),
		newStatsCmd(a),
		newEvolutionCmd(a),
		newEquityCmd(a),
		newProjectionCmd(a),
		newReportCmd(a),
		newUserCmd(a),
		newConfigCmd(),
		newVersionCmd(),
	)

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, rc *RootConfig) error {
	if rc.EnvFile != "" {
		if err := godotenv.Load(rc.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", rc.EnvFile, err)
		}
	}

	cfg := config.Default()
	if rc.ConfigPath != "" {
		var err error
		if cfg, err = config.LoadFromFile(rc.ConfigPath); err != nil {
			return err
		}
	}
	cfg.ApplyEnv()
	if rc.StoreType != "" {
		cfg.Store.Type = rc.StoreType
	}
	if rc.DataDir != "" {
		if err := os.MkdirAll(rc.DataDir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		cfg.Store.Dir = rc.DataDir
		cfg.Store.DBPath = filepath.Join(rc.DataDir, "journal.sqlite")
	}
	if rc.LogLevel != "" {
		cfg.Log.Level = rc.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.cfg = cfg

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.log = log
	a.metrics = telemetry.New()

	tr, err := i18n.New(cfg.Locale)
	if err != nil {
		return err
	}
	a.tr = tr
	a.fmt = view.NewFormatter(cfg.Locale, cfg.Account.Currency)

	c := ctx(cmd)
	store, err := blobstore.Open(c, cfg.Store)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Type, err)
	}
	a.store = store

	j, err := journal.Open(c, store, journal.Options{
		Logger:           log,
		Metrics:          a.metrics,
		InitialPatrimony: cfg.Account.InitialPatrimony,
		DailyLossLimit:   cfg.Limits.DailyLossLimit,
	})
	if j == nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
	}
	a.journal = j

	a.users = users.New(store, users.Options{Logger: log, Metrics: a.metrics, Translator: tr})
	if err := a.users.Load(c); err != nil {
		if !errors.Is(err, journal.ErrCorruptSnapshot) {
			return fmt.Errorf("load users: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
	}

	log.Debug("journal ready",
		zap.String("store", cfg.Store.Type),
		zap.Int("operations", len(j.Operations.Operations())),
		zap.Int("trades", len(j.Trades.Trades())),
	)
	return nil
}

func (a *app) close(rc *RootConfig) error {
	var errs []error
	if rc.MetricsFile != "" && a.metrics != nil {
		if err := a.metrics.WriteTextfile(rc.MetricsFile); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
	return errors.Join(errs...)
}

// ctx returns the command context, or Background when run outside Execute.
func ctx(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}
