package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callscope/internal/core/model"
)

func sampleRecords() []model.CallRecord {
	return []model.CallRecord{
		{
			ID:          "200-0",
			Direction:   model.DirectionIncoming,
			Duration:    30,
			Timestamp:   time.UnixMilli(200),
			PhoneNumber: "5551234567",
		},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	c, err := NewSnapshotCache(t.TempDir())
	require.NoError(t, err)

	records := sampleRecords()
	agg := model.Aggregates{Incoming: 1, TotalDurationSeconds: 30}
	require.NoError(t, c.Put("(555) 123-4567", records, agg))

	// Lookup normalizes the same way Put does.
	snap, ok := c.Get("555-123-4567")
	require.True(t, ok)
	assert.Equal(t, "5551234567", snap.Target)
	assert.Equal(t, agg, snap.Aggregates)
	require.Len(t, snap.Records, 1)
	assert.Equal(t, "200-0", snap.Records[0].ID)
}

func TestSnapshotSurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	c, err := NewSnapshotCache(dir)
	require.NoError(t, err)
	require.NoError(t, c.Put("5551234567", sampleRecords(), model.Aggregates{Incoming: 1}))

	// Fresh cache over the same directory reads the persisted file.
	c2, err := NewSnapshotCache(dir)
	require.NoError(t, err)
	snap, ok := c2.Get("5551234567")
	require.True(t, ok)
	assert.Equal(t, 1, snap.Aggregates.Incoming)
}

func TestPreloadSkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "5550001111.json"), []byte("{not json"), 0644))

	c, err := NewSnapshotCache(dir)
	require.NoError(t, err)
	require.NoError(t, c.Put("5551234567", sampleRecords(), model.Aggregates{Incoming: 1}))

	require.NoError(t, c.Preload())

	_, ok := c.Get("5550001111")
	assert.False(t, ok)
	_, ok = c.Get("5551234567")
	assert.True(t, ok)
}

func TestCacheMiss(t *testing.T) {
	c, err := NewSnapshotCache(t.TempDir())
	require.NoError(t, err)

	_, ok := c.Get("5559999999")
	assert.False(t, ok)
	_, ok = c.Get("")
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	c, err := NewSnapshotCache(dir)
	require.NoError(t, err)
	require.NoError(t, c.Put("5551234567", sampleRecords(), model.Aggregates{Incoming: 1}))

	require.NoError(t, c.Clear())

	_, ok := c.Get("5551234567")
	assert.False(t, ok)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPutRejectsDigitlessTarget(t *testing.T) {
	c, err := NewSnapshotCache(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, c.Put("()- ", nil, model.Aggregates{}))
}
