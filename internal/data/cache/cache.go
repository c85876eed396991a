// Package cache persists the last reconciled snapshot per watched number
// so history commands can show the previous result instantly while the
// first live poll is still in flight.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"callscope/internal/core/model"
	"callscope/internal/core/phone"
	"callscope/internal/util"
)

// Snapshot is one cached reconciliation result for a target number.
type Snapshot struct {
	Target     string             `json:"target"`
	Records    []model.CallRecord `json:"records"`
	Aggregates model.Aggregates   `json:"aggregates"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// SnapshotCache keeps snapshots in memory, backed by one JSON file per
// normalized target under baseDir.
type SnapshotCache struct {
	baseDir string
	mu      sync.RWMutex
	memory  map[string]*Snapshot
}

// NewSnapshotCache creates the cache directory if needed.
func NewSnapshotCache(baseDir string) (*SnapshotCache, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &SnapshotCache{
		baseDir: baseDir,
		memory:  make(map[string]*Snapshot),
	}, nil
}

// Get returns the cached snapshot for a target, checking memory first
// and falling back to the on-disk copy.
func (c *SnapshotCache) Get(target string) (*Snapshot, bool) {
	key := phone.Normalize(target)
	if key == "" {
		return nil, false
	}

	c.mu.RLock()
	if snap, ok := c.memory[key]; ok {
		c.mu.RUnlock()
		return snap, true
	}
	c.mu.RUnlock()

	snap, err := c.readFile(key)
	if err != nil {
		return nil, false
	}

	c.mu.Lock()
	c.memory[key] = snap
	c.mu.Unlock()
	return snap, true
}

// Put stores a snapshot in memory and writes it through to disk.
func (c *SnapshotCache) Put(target string, records []model.CallRecord, aggregates model.Aggregates) error {
	key := phone.Normalize(target)
	if key == "" {
		return fmt.Errorf("cache: target %q has no digits", target)
	}

	snap := &Snapshot{
		Target:     key,
		Records:    records,
		Aggregates: aggregates,
		UpdatedAt:  time.Now(),
	}

	c.mu.Lock()
	c.memory[key] = snap
	c.mu.Unlock()

	data, err := sonic.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("cache: encode snapshot: %w", err)
	}
	if err := os.WriteFile(c.path(key), data, 0644); err != nil {
		return fmt.Errorf("cache: write snapshot: %w", err)
	}
	return nil
}

// Preload loads every snapshot file under baseDir into memory. Corrupt
// files are skipped with a warning, never fatal.
func (c *SnapshotCache) Preload() error {
	entries, err := os.ReadDir(c.baseDir)
	if err != nil {
		return fmt.Errorf("cache: scan directory: %w", err)
	}

	loaded := 0
	c.mu.Lock()
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		key := strings.TrimSuffix(entry.Name(), ".json")
		snap, err := c.readFile(key)
		if err != nil {
			util.LogWarnf("Skipping unreadable snapshot %s: %v", entry.Name(), err)
			continue
		}
		c.memory[key] = snap
		loaded++
	}
	c.mu.Unlock()

	if loaded > 0 {
		util.LogDebugf("Preloaded %d cached snapshots", loaded)
	}
	return nil
}

// Clear drops the memory cache and removes all snapshot files.
func (c *SnapshotCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.memory = make(map[string]*Snapshot)

	entries, err := os.ReadDir(c.baseDir)
	if err != nil {
		return fmt.Errorf("cache: scan directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(c.baseDir, entry.Name())); err != nil {
			return fmt.Errorf("cache: remove %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func (c *SnapshotCache) path(key string) string {
	return filepath.Join(c.baseDir, key+".json")
}

func (c *SnapshotCache) readFile(key string) (*Snapshot, error) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := sonic.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}
