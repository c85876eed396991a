// Package poller drives periodic call-log reconciliation for one target
// number. It owns the reconciliation state: the current record snapshot,
// its aggregates, and the change detection that decides when observers
// are notified.
//
// Staleness is handled with a generation counter rather than cancellation
// of in-flight reads: every poll captures the generation active when it
// started, and its result is applied only if that generation is still
// current when it completes. Stop and Start both advance the generation,
// so results arriving after teardown or a target change are discarded.
// The displayed state therefore always corresponds to some completed
// poll's full output, never a partial or merged one.
package poller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"callscope/internal/core/model"
	"callscope/internal/core/phone"
	"callscope/internal/core/reconcile"
	"callscope/internal/provider"
	"callscope/internal/util"
)

// State is the scheduler lifecycle state.
type State int

const (
	StateStopped State = iota
	StatePolling
)

func (s State) String() string {
	if s == StatePolling {
		return "polling"
	}
	return "stopped"
}

// Config holds poller tuning knobs.
type Config struct {
	// Interval between scheduled polls.
	Interval time.Duration
	// FetchLimit caps how many call-log entries one poll requests.
	FetchLimit int
}

// Validate fills defaults for zero values.
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		c.Interval = 3 * time.Second
	}
	if c.FetchLimit <= 0 {
		c.FetchLimit = 500
	}
	return nil
}

// Poller polls a call-log provider and maintains the reconciled snapshot
// for one target phone number.
type Poller struct {
	cfg      Config
	provider provider.CallLogProvider

	mu         sync.RWMutex
	state      State
	generation uint64
	target     string
	records    []model.CallRecord
	aggregates model.Aggregates
	lastUpdate time.Time
	lastErr    error
	cancel     context.CancelFunc

	kick    chan struct{}
	updates chan struct{}
}

// New creates a poller over the given provider.
func New(prov provider.CallLogProvider, cfg Config) (*Poller, error) {
	if prov == nil {
		return nil, errors.New("poller: nil call log provider")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Poller{
		cfg:      cfg,
		provider: prov,
		kick:     make(chan struct{}, 1),
		updates:  make(chan struct{}, 1),
	}, nil
}

// Start begins polling for targetPhone. Any previous run is stopped and
// its state discarded first; starting is how a target change happens.
// The first poll fires immediately, then every Config.Interval.
func (p *Poller) Start(ctx context.Context, targetPhone string) error {
	if len(phone.Normalize(targetPhone)) < phone.MinMatchDigits {
		return fmt.Errorf("poller: target %q is too short to match against the call log (need at least %d digits)",
			targetPhone, phone.MinMatchDigits)
	}
	if !p.provider.Available() {
		return fmt.Errorf("poller: %w", provider.ErrProviderUnavailable)
	}

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.generation++
	gen := p.generation
	p.state = StatePolling
	p.target = targetPhone
	p.records = nil
	p.aggregates = model.Aggregates{}
	p.lastUpdate = time.Time{}
	p.lastErr = nil

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()

	util.LogInfof("Polling started for target %s (every %s)", targetPhone, p.cfg.Interval)
	go p.run(runCtx, gen, targetPhone)
	return nil
}

// Stop halts polling and invalidates all in-flight results. The last
// accepted snapshot remains readable.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateStopped {
		return
	}
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.generation++ // in-flight results must never apply after teardown
	p.state = StateStopped
	util.LogInfo("Polling stopped")
}

// Kick schedules one immediate out-of-band poll, the analogue of the app
// returning to the foreground. Coalesced if one is already pending.
func (p *Poller) Kick() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// Refresh performs one synchronous poll and returns its error, for
// user-initiated refreshes that want the failure surfaced instead of
// logged. The result goes through the same generation gate as scheduled
// polls.
func (p *Poller) Refresh(ctx context.Context) error {
	p.mu.RLock()
	gen := p.generation
	target := p.target
	state := p.state
	p.mu.RUnlock()

	if state != StatePolling {
		return errors.New("poller: not running")
	}
	return p.poll(ctx, gen, target)
}

// State returns the scheduler state.
func (p *Poller) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Snapshot returns a copy of the current reconciled records.
func (p *Poller) Snapshot() []model.CallRecord {
	p.mu.RLock()
	defer p.mu.RUnlock()
	records := make([]model.CallRecord, len(p.records))
	copy(records, p.records)
	return records
}

// Aggregates returns the aggregates for the current snapshot.
func (p *Poller) Aggregates() model.Aggregates {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.aggregates
}

// LastUpdate returns when a snapshot was last accepted; zero if never.
func (p *Poller) LastUpdate() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastUpdate
}

// Err returns the error from the most recent poll, nil after any
// successful cycle.
func (p *Poller) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}

// Updates returns a channel that receives a (coalesced) signal whenever
// the change detector accepts a new snapshot.
func (p *Poller) Updates() <-chan struct{} {
	return p.updates
}

func (p *Poller) run(ctx context.Context, gen uint64, target string) {
	if err := p.poll(ctx, gen, target); err != nil {
		util.LogWarnf("Initial poll failed: %v", err)
	}

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.poll(ctx, gen, target); err != nil {
				// A failed cycle leaves the prior snapshot in place;
				// the next tick retries.
				util.LogWarnf("Poll failed: %v", err)
			}
		case <-p.kick:
			if err := p.poll(ctx, gen, target); err != nil {
				util.LogWarnf("Out-of-band poll failed: %v", err)
			}
		}
	}
}

func (p *Poller) poll(ctx context.Context, gen uint64, target string) error {
	entries, err := p.provider.Load(ctx, p.cfg.FetchLimit, 0)
	if err != nil {
		p.setErr(gen, err)
		return err
	}

	records := reconcile.Reconcile(entries, target)
	aggregates := reconcile.Aggregate(records)
	p.apply(gen, records, aggregates)
	return nil
}

// apply installs a completed poll's output if its generation is still
// current and the change detector accepts it. Last completed poll wins.
func (p *Poller) apply(gen uint64, records []model.CallRecord, aggregates model.Aggregates) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.generation {
		util.LogDebugf("Discarding stale poll result (generation %d, current %d)", gen, p.generation)
		return
	}
	p.lastErr = nil

	if !reconcile.ShouldUpdate(p.records, records) {
		return
	}

	p.records = records
	p.aggregates = aggregates
	p.lastUpdate = time.Now()

	select {
	case p.updates <- struct{}{}:
	default:
	}
}

func (p *Poller) setErr(gen uint64, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.generation {
		return
	}
	p.lastErr = err
}
