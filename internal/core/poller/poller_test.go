package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callscope/internal/core/model"
	"callscope/internal/provider"
	"callscope/internal/provider/calllog"
)

const testInterval = 10 * time.Millisecond

func newTestPoller(t *testing.T, prov provider.CallLogProvider) *Poller {
	t.Helper()
	p, err := New(prov, Config{Interval: testInterval})
	require.NoError(t, err)
	t.Cleanup(p.Stop)
	return p
}

func waitUpdate(t *testing.T, p *Poller) {
	t.Helper()
	select {
	case <-p.Updates():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot update")
	}
}

func TestPollerFirstPollPublishesSnapshot(t *testing.T) {
	prov := calllog.NewMemoryProvider(
		model.CallLogEntry{PhoneNumber: "555-123-4567", Type: "INCOMING", Timestamp: "200", Duration: "30"},
		model.CallLogEntry{PhoneNumber: "+1 (555) 123-4567", Type: "OUTGOING", Timestamp: "100", Duration: "90"},
		model.CallLogEntry{PhoneNumber: "999-000-0000", Type: "MISSED", Timestamp: "300", Duration: "0"},
	)
	p := newTestPoller(t, prov)

	require.NoError(t, p.Start(context.Background(), "5551234567"))
	waitUpdate(t, p)

	records := p.Snapshot()
	require.Len(t, records, 2)
	assert.Equal(t, model.DirectionIncoming, records[0].Direction)
	assert.Equal(t, model.DirectionOutgoing, records[1].Direction)

	agg := p.Aggregates()
	assert.Equal(t, 1, agg.Incoming)
	assert.Equal(t, 1, agg.Outgoing)
	assert.Equal(t, 0, agg.Missed)
	assert.Equal(t, 120, agg.TotalDurationSeconds)
	assert.False(t, p.LastUpdate().IsZero())
	assert.Equal(t, StatePolling, p.State())
}

func TestPollerNoRedundantUpdates(t *testing.T) {
	prov := calllog.NewMemoryProvider(
		model.CallLogEntry{PhoneNumber: "5551234567", Type: "INCOMING", Timestamp: "100", Duration: "5"},
	)
	p := newTestPoller(t, prov)

	require.NoError(t, p.Start(context.Background(), "5551234567"))
	waitUpdate(t, p)

	// Let several identical polls complete.
	require.Eventually(t, func() bool { return prov.Loads() >= 4 }, 2*time.Second, testInterval)

	select {
	case <-p.Updates():
		t.Fatal("unchanged snapshot must not signal an update")
	default:
	}
}

func TestPollerDetectsNewCall(t *testing.T) {
	prov := calllog.NewMemoryProvider(
		model.CallLogEntry{PhoneNumber: "5551234567", Type: "OUTGOING", Timestamp: "100", Duration: "5"},
	)
	p := newTestPoller(t, prov)

	require.NoError(t, p.Start(context.Background(), "5551234567"))
	waitUpdate(t, p)

	prov.SetEntries([]model.CallLogEntry{
		{PhoneNumber: "5551234567", Type: "OUTGOING", Timestamp: "100", Duration: "5"},
		{PhoneNumber: "5551234567", Type: "INCOMING", Timestamp: "200", Duration: "8"},
	})
	p.Kick()
	waitUpdate(t, p)

	assert.Len(t, p.Snapshot(), 2)
	assert.Equal(t, 13, p.Aggregates().TotalDurationSeconds)
}

func TestPollerTransientErrorKeepsSnapshot(t *testing.T) {
	prov := calllog.NewMemoryProvider(
		model.CallLogEntry{PhoneNumber: "5551234567", Type: "INCOMING", Timestamp: "100", Duration: "5"},
	)
	p := newTestPoller(t, prov)

	require.NoError(t, p.Start(context.Background(), "5551234567"))
	waitUpdate(t, p)

	prov.FailNext(errors.New("transient OS error"))
	err := p.Refresh(context.Background())
	assert.Error(t, err)
	assert.Error(t, p.Err())
	assert.Len(t, p.Snapshot(), 1, "failed cycle leaves the prior snapshot in place")

	// Next successful cycle clears the error.
	require.NoError(t, p.Refresh(context.Background()))
	assert.NoError(t, p.Err())
}

func TestPollerStop(t *testing.T) {
	prov := calllog.NewMemoryProvider(
		model.CallLogEntry{PhoneNumber: "5551234567", Type: "INCOMING", Timestamp: "100", Duration: "5"},
	)
	p := newTestPoller(t, prov)

	require.NoError(t, p.Start(context.Background(), "5551234567"))
	waitUpdate(t, p)

	p.Stop()
	assert.Equal(t, StateStopped, p.State())
	assert.Len(t, p.Snapshot(), 1, "last accepted snapshot stays readable")
	assert.Error(t, p.Refresh(context.Background()))
}

func TestPollerRestartResetsState(t *testing.T) {
	prov := calllog.NewMemoryProvider(
		model.CallLogEntry{PhoneNumber: "5551234567", Type: "INCOMING", Timestamp: "100", Duration: "5"},
		model.CallLogEntry{PhoneNumber: "5559876543", Type: "OUTGOING", Timestamp: "200", Duration: "7"},
	)
	p := newTestPoller(t, prov)

	require.NoError(t, p.Start(context.Background(), "5551234567"))
	waitUpdate(t, p)
	require.Len(t, p.Snapshot(), 1)

	// Target change: restart with the other number.
	require.NoError(t, p.Start(context.Background(), "5559876543"))
	waitUpdate(t, p)

	records := p.Snapshot()
	require.Len(t, records, 1)
	assert.Equal(t, "5559876543", records[0].PhoneNumber)
}

func TestPollerStartValidation(t *testing.T) {
	prov := calllog.NewMemoryProvider()
	p := newTestPoller(t, prov)

	assert.Error(t, p.Start(context.Background(), ""))
	assert.Error(t, p.Start(context.Background(), "()- "))
	assert.Error(t, p.Start(context.Background(), "41411"),
		"short codes would suffix-match far too broadly")
	assert.Equal(t, StateStopped, p.State())

	prov.SetAvailable(false)
	err := p.Start(context.Background(), "5551234567")
	assert.ErrorIs(t, err, provider.ErrProviderUnavailable)
}

func TestConfigValidateDefaults(t *testing.T) {
	cfg := Config{}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 3*time.Second, cfg.Interval)
	assert.Equal(t, 500, cfg.FetchLimit)
}
