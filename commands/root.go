package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"callscope/internal/config"
	"callscope/internal/core/model"
	"callscope/internal/core/phone"
	"callscope/internal/core/reconcile"
	"callscope/internal/data/store"
	"callscope/internal/presentation/formatter"
	"callscope/internal/provider"
	"callscope/internal/provider/calllog"
	"callscope/internal/util"
)

var (
	// Logging related
	debug bool

	// Paths and config
	configPath  string
	callLogPath string
	dbPath      string
	cacheDir    string
	logFile     string

	// Output related
	outputFormat string
	timezone     string

	// Root command (recents) flags
	recentsLimit int
	recentsSince time.Duration

	rootCmd = &cobra.Command{
		Use:   "callscope [flags]",
		Short: "Call history and contacts tool",
		Long: `callscope reconciles a device call log export against your contacts,
showing recent calls, per-number history, and live updates while a call
log is changing.

Examples:
  callscope                                  # Recent calls across all numbers
  callscope history 555-123-4567             # History for one number
  callscope history alice --output json      # History for a contact, as JSON
  callscope watch alice                      # Live view, repolling the call log
  callscope contacts add Alice 5551234567    # Manage the address book
  callscope dial alice                       # Place a call`,
		RunE: runRecents,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file path (default ~/.callscope/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&callLogPath, "calllog", "",
		"Call log export file (JSON array or JSONL)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "",
		"Contacts database path")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "",
		"Snapshot cache directory")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"Log file path")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "",
		"Timezone setting (e.g., America/New_York, UTC)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv, summary)")

	rootCmd.Flags().IntVar(&recentsLimit, "limit", 50,
		"Maximum number of recent calls to show")
	rootCmd.Flags().DurationVar(&recentsSince, "since", 0,
		"Only show calls newer than this (e.g., 24h, 168h; 0 = all)")
}

func Execute() error {
	return rootCmd.Execute()
}

// initRuntime loads the config file, applies flag overrides, and brings
// up logging and the time provider. Every command calls it first.
func initRuntime() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if callLogPath != "" {
		cfg.CallLogPath = config.ExpandPath(callLogPath)
	}
	if dbPath != "" {
		cfg.DatabasePath = config.ExpandPath(dbPath)
	}
	if cacheDir != "" {
		cfg.CacheDir = config.ExpandPath(cacheDir)
	}
	if logFile != "" {
		cfg.LogFile = config.ExpandPath(logFile)
	}
	if timezone != "" {
		cfg.Timezone = timezone
	}

	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	if err := config.EnsureDir(filepath.Dir(cfg.LogFile)); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	if err := util.InitLogger(logLevel, cfg.LogFile, debug); err != nil {
		return nil, err
	}
	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return nil, err
	}

	return cfg, nil
}

func openStore(cfg *config.Config) (*store.Store, error) {
	if err := config.EnsureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	return store.Open(cfg.DatabasePath)
}

func newCallLogProvider(cfg *config.Config) *calllog.FileProvider {
	return calllog.NewFileProvider(cfg.CallLogPath)
}

// resolveTarget turns a command argument into a dialable number and an
// optional contact name. Contact id, contact name, and raw numbers are
// all accepted.
func resolveTarget(ctx context.Context, st *store.Store, arg string) (name, number string, err error) {
	contact, err := st.Find(ctx, arg)
	if err == nil {
		return contact.Name, contact.Phone, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", "", err
	}

	if phone.Normalize(arg) == "" {
		return "", "", fmt.Errorf("no contact or phone number matches %q", arg)
	}
	return "", arg, nil
}

// annotateNames fills empty record names from the address book.
func annotateNames(ctx context.Context, st *store.Store, records []model.CallRecord) {
	contacts, err := st.List(ctx)
	if err != nil {
		util.LogWarnf("Skipping contact name annotation: %v", err)
		return
	}
	for i := range records {
		if records[i].Name != "" {
			continue
		}
		for _, c := range contacts {
			if phone.MatchesRaw(c.Phone, records[i].PhoneNumber) {
				records[i].Name = c.Name
				break
			}
		}
	}
}

// describeProviderError converts the provider sentinels into actionable
// messages; anything else passes through.
func describeProviderError(err error, cfg *config.Config) error {
	switch {
	case errors.Is(err, provider.ErrProviderUnavailable):
		return fmt.Errorf("call log is not available: no export at %s (set call_log_path or --calllog)", cfg.CallLogPath)
	case errors.Is(err, provider.ErrPermissionDenied):
		return fmt.Errorf("call log access denied for %s: fix permissions and re-run", cfg.CallLogPath)
	default:
		return err
	}
}

func runRecents(cmd *cobra.Command, args []string) error {
	cfg, err := initRuntime()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var minTimestamp int64
	if recentsSince > 0 {
		minTimestamp = time.Now().Add(-recentsSince).UnixMilli()
	}

	prov := newCallLogProvider(cfg)
	entries, err := prov.Load(ctx, cfg.FetchLimit, minTimestamp)
	if err != nil {
		return describeProviderError(err, cfg)
	}

	records := reconcile.MapAll(entries)
	if recentsLimit > 0 && len(records) > recentsLimit {
		records = records[:recentsLimit]
	}
	annotateNames(ctx, st, records)

	report := formatter.Report{
		Records:     records,
		Aggregates:  reconcile.Aggregate(records),
		GeneratedAt: time.Now(),
	}

	f, err := formatter.New(outputFormat, os.Stdout)
	if err != nil {
		return err
	}
	return f.Format(report)
}
