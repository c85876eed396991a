package commands

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"callscope/internal/core/poller"
	"callscope/internal/data/cache"
	"callscope/internal/presentation/display"
	"callscope/internal/presentation/interaction"
	"callscope/internal/provider/calllog"
	"callscope/internal/util"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <number|contact>",
	Short: "Watch a number's call history update live",
	Long: `Polls the call log on an interval and redraws whenever the reconciled
history actually changes. A change to the export file triggers an
immediate out-of-band poll.

Keys: q quit, r force refresh, p pause/resume polling.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0,
		"Poll interval (default from config, 3s)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := initRuntime()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	name, number, err := resolveTarget(ctx, st, args[0])
	if err != nil {
		return err
	}

	interval := cfg.PollInterval
	if watchInterval > 0 {
		interval = watchInterval
	}

	prov := newCallLogProvider(cfg)
	p, err := poller.New(prov, poller.Config{Interval: interval, FetchLimit: cfg.FetchLimit})
	if err != nil {
		return err
	}
	if err := p.Start(ctx, number); err != nil {
		return describeProviderError(err, cfg)
	}
	defer p.Stop()

	snapCache, err := cache.NewSnapshotCache(cfg.CacheDir)
	if err != nil {
		return err
	}
	if err := snapCache.Preload(); err != nil {
		util.LogWarnf("Snapshot preload failed: %v", err)
	}

	// File change notifications trigger an immediate poll; polling still
	// runs on the interval when the watcher cannot be set up.
	var changes <-chan struct{}
	watcher, err := calllog.NewWatcher(cfg.CallLogPath)
	if err != nil {
		util.LogWarnf("Call log watcher disabled: %v", err)
	} else {
		defer watcher.Close()
		changes = watcher.Changes()
	}

	keyboard, err := interaction.NewKeyboardReader()
	if err != nil {
		return err
	}
	defer keyboard.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	disp := display.NewTerminalDisplay()
	disp.EnterAlternateScreen()
	defer disp.ExitAlternateScreen()

	paused := false
	render := func() {
		disp.Render(display.WatchView{
			Target:     number,
			Name:       name,
			State:      p.State(),
			Records:    p.Snapshot(),
			Aggregates: p.Aggregates(),
			LastUpdate: p.LastUpdate(),
			Err:        p.Err(),
			Paused:     paused,
		})
	}
	render()

	// Redraw once a second so relative timestamps and the status line
	// stay current between snapshot updates.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-p.Updates():
			if err := snapCache.Put(number, p.Snapshot(), p.Aggregates()); err != nil {
				util.LogWarnf("Failed to persist snapshot: %v", err)
			}
			render()

		case <-changes:
			if !paused {
				p.Kick()
			}

		case <-ticker.C:
			render()

		case <-sigChan:
			return nil

		case event := <-keyboard.Events():
			switch {
			case event.Type == interaction.KeyEscape, event.Key == 'q', event.Key == 3:
				return nil
			case event.Key == 'r':
				if paused {
					continue
				}
				if err := p.Refresh(ctx); err != nil {
					util.LogWarnf("Manual refresh failed: %v", err)
				}
				render()
			case event.Key == 'p':
				if paused {
					if err := p.Start(ctx, number); err != nil {
						return describeProviderError(err, cfg)
					}
					paused = false
				} else {
					p.Stop()
					paused = true
				}
				render()
			}
		}
	}
}
