package calllog

import (
	"context"
	"sync"

	"callscope/internal/core/model"
)

// MemoryProvider is an in-memory CallLogProvider for tests and demos.
type MemoryProvider struct {
	mu        sync.Mutex
	entries   []model.CallLogEntry
	nextErr   error
	available bool
	loads     int
}

// NewMemoryProvider creates an available provider with the given entries.
func NewMemoryProvider(entries ...model.CallLogEntry) *MemoryProvider {
	return &MemoryProvider{entries: entries, available: true}
}

// SetEntries replaces the backing entries.
func (p *MemoryProvider) SetEntries(entries []model.CallLogEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = entries
}

// FailNext makes the next Load return err once.
func (p *MemoryProvider) FailNext(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextErr = err
}

// SetAvailable toggles availability.
func (p *MemoryProvider) SetAvailable(available bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.available = available
}

// Loads returns how many times Load has been called.
func (p *MemoryProvider) Loads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loads
}

// Available implements provider.CallLogProvider.
func (p *MemoryProvider) Available() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.available
}

// Load implements provider.CallLogProvider.
func (p *MemoryProvider) Load(ctx context.Context, limit int, minTimestamp int64) ([]model.CallLogEntry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.loads++
	if p.nextErr != nil {
		err := p.nextErr
		p.nextErr = nil
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snapshot := make([]model.CallLogEntry, len(p.entries))
	copy(snapshot, p.entries)
	return filterEntries(snapshot, limit, minTimestamp), nil
}
