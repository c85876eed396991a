package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"callscope/internal/core/phone"
	"callscope/internal/core/reconcile"
	"callscope/internal/data/cache"
	"callscope/internal/presentation/formatter"
	"callscope/internal/provider"
	"callscope/internal/provider/calllog"
	"callscope/internal/util"
)

var (
	historyLimit int
	historySince time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history <number|contact>",
	Short: "Show the call history for one number or contact",
	Long: `Reconciles the call log against a single number, matching formatting
variants of the same number (separators, country code, 7-digit local
forms), and prints the matching calls newest first with per-direction
totals.

When the call log cannot be read, the last cached snapshot for the
number is shown instead, marked as stale.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 0,
		"Maximum matching calls to show (0 = all)")
	historyCmd.Flags().DurationVar(&historySince, "since", 0,
		"Only consider calls newer than this (0 = all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
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

	name, number, err := resolveTarget(ctx, st, args[0])
	if err != nil {
		return err
	}
	if len(phone.Normalize(number)) < phone.MinMatchDigits {
		return fmt.Errorf("number %q is too short to match against the call log (need at least %d digits)", number, phone.MinMatchDigits)
	}

	snapCache, err := cache.NewSnapshotCache(cfg.CacheDir)
	if err != nil {
		return err
	}
	if err := snapCache.Preload(); err != nil {
		util.LogWarnf("Snapshot preload failed: %v", err)
	}

	f, err := formatter.New(outputFormat, os.Stdout)
	if err != nil {
		return err
	}

	var minTimestamp int64
	if historySince > 0 {
		minTimestamp = time.Now().Add(-historySince).UnixMilli()
	}

	prov := newCallLogProvider(cfg)
	entries, err := prov.Load(ctx, cfg.FetchLimit, minTimestamp)
	if errors.Is(err, provider.ErrPermissionDenied) {
		// A manual command run counts as an explicit retry, so re-request
		// access once before giving up.
		if prov.Request(calllog.PermissionName) == provider.PermissionGranted {
			entries, err = prov.Load(ctx, cfg.FetchLimit, minTimestamp)
		}
	}
	if err != nil {
		// Permission and availability problems are terminal; transient
		// read errors fall back to the cached snapshot when one exists.
		if errors.Is(err, provider.ErrProviderUnavailable) || errors.Is(err, provider.ErrPermissionDenied) {
			return describeProviderError(err, cfg)
		}
		snap, ok := snapCache.Get(number)
		if !ok {
			return describeProviderError(err, cfg)
		}
		util.LogWarnf("Call log read failed, serving cached snapshot: %v", err)
		fmt.Fprintf(os.Stderr, "Warning: call log unreadable, showing snapshot from %s\n",
			snap.UpdatedAt.Format("2006-01-02 15:04:05"))
		return f.Format(formatter.Report{
			Name:        name,
			Phone:       number,
			Records:     snap.Records,
			Aggregates:  snap.Aggregates,
			GeneratedAt: snap.UpdatedAt,
		})
	}

	records := reconcile.Reconcile(entries, number)
	aggregates := reconcile.Aggregate(records)
	if err := snapCache.Put(number, records, aggregates); err != nil {
		util.LogWarnf("Failed to persist snapshot: %v", err)
	}

	if historyLimit > 0 && len(records) > historyLimit {
		records = records[:historyLimit]
	}
	for i := range records {
		if records[i].Name == "" {
			records[i].Name = name
		}
	}

	return f.Format(formatter.Report{
		Name:        name,
		Phone:       number,
		Records:     records,
		Aggregates:  aggregates,
		GeneratedAt: time.Now(),
	})
}
