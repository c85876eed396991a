package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"callscope/internal/data/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached reconciliation snapshots",
	Long: `Snapshots of reconciled call history are cached per number so
history can fall back to the last known state when the call log is
unreadable. The cache rebuilds itself on the next successful read.`,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached snapshots",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	cfg, err := initRuntime()
	if err != nil {
		return err
	}

	snapCache, err := cache.NewSnapshotCache(cfg.CacheDir)
	if err != nil {
		return err
	}
	if err := snapCache.Clear(); err != nil {
		return err
	}

	fmt.Println("Snapshot cache cleared")
	return nil
}
