package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-work-ledger/internal/config"
	"github.com/Tiliavir/trivial-work-ledger/internal/holiday"
	"github.com/Tiliavir/trivial-work-ledger/internal/ledger"
	"github.com/Tiliavir/trivial-work-ledger/internal/storage"
)

// osExit is replaced in tests.
var osExit = os.Exit

var (
	configPath string
	ledgerPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "twl",
	Short: "Trivial Work Ledger – keep a daily work-hours ledger consistent",
	Long: `twl records daily working times in a single ledger file and keeps it
consistent: it removes duplicates, backfills missing days with holidays or
absences, squashes same-day rows and estimates the working week.
Configuration lives in ~/.twl/config.yaml.`,
	SilenceUsage: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.twl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&ledgerPath, "ledger", "", "Ledger file, overrides ledger.path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug diagnostics to stderr")

	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(dedupCmd)
	rootCmd.AddCommand(gapsCmd)
	rootCmd.AddCommand(squashCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(holidaysCmd)
	rootCmd.AddCommand(outlookCmd)
}

// newLogger returns the diagnostics logger writing text records to w.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads the config selected by --config and applies --ledger.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if ledgerPath != "" {
		cfg.Ledger.Path = ledgerPath
	}
	return cfg, nil
}

// app bundles the pieces a ledger command works with.
type app struct {
	cfg    config.Config
	opts   ledger.Options
	cal    *holiday.Calendar
	store  storage.Store
	engine *ledger.Engine
	log    *slog.Logger
	closed bool
}

func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.LedgerOptions()
	if err != nil {
		return nil, err
	}
	cal, err := cfg.Calendar()
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(cfg.Ledger.Path)
	if err != nil {
		return nil, err
	}
	log := newLogger(os.Stderr, verbose)
	log.Debug("opened ledger", "path", cfg.Ledger.Path, "holidays", cal.Region())

	rec := ledger.NewReconciler(opts, cal, log)
	return &app{
		cfg:    cfg,
		opts:   rec.Options(),
		cal:    cal,
		store:  store,
		engine: ledger.NewEngine(store, rec),
		log:    log,
	}, nil
}

// mustOpenApp opens the configured ledger or exits with status 2.
func mustOpenApp() *app {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		osExit(2)
	}
	return a
}

// engineFor returns the ledger engine, or with dryRun an engine over an
// in-memory copy of the ledger that is discarded afterwards.
func (a *app) engineFor(dryRun bool) (*ledger.Engine, error) {
	if !dryRun {
		return a.engine, nil
	}
	rows, err := a.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}
	return ledger.NewEngine(storage.NewMemory(rows...), a.engine.Reconciler()), nil
}

// Close closes the ledger store once.
func (a *app) Close() {
	if a.closed {
		return
	}
	a.closed = true
	if err := a.store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: closing ledger: %v\n", err)
	}
}

// check closes the ledger, prints err and exits with status 2.
func (a *app) check(err error) {
	if err != nil {
		a.Close()
		exitOnError(err)
	}
}

// exitOnError prints err and exits with status 2.
func exitOnError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		osExit(2)
	}
}
