package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callscope/internal/core/model"
)

func TestReconcileFiltersToTarget(t *testing.T) {
	entries := []model.CallLogEntry{
		{PhoneNumber: "555-123-4567", Type: "INCOMING", Timestamp: "100", Duration: "10"},
		{PhoneNumber: "999-000-0000", Type: "OUTGOING", Timestamp: "200", Duration: "20"},
	}

	records := Reconcile(entries, "5551234567")

	require.Len(t, records, 1)
	assert.Equal(t, "555-123-4567", records[0].PhoneNumber)
	assert.Equal(t, model.DirectionIncoming, records[0].Direction)
}

func TestReconcileSortsNewestFirst(t *testing.T) {
	entries := []model.CallLogEntry{
		{PhoneNumber: "5551234567", Type: "OUTGOING", Timestamp: "100", Duration: "1"},
		{PhoneNumber: "15551234567", Type: "INCOMING", Timestamp: "300", Duration: "2"},
		{PhoneNumber: "+1 (555) 123-4567", Type: "MISSED", Timestamp: "200", Duration: "0"},
	}

	records := Reconcile(entries, "5551234567")

	require.Len(t, records, 3)
	assert.Equal(t, model.DirectionIncoming, records[0].Direction)
	assert.Equal(t, model.DirectionMissed, records[1].Direction)
	assert.Equal(t, model.DirectionOutgoing, records[2].Direction)
}

func TestReconcileStableOrderForTies(t *testing.T) {
	entries := []model.CallLogEntry{
		{PhoneNumber: "5551234567", Type: "OUTGOING", Timestamp: "100", Name: "first"},
		{PhoneNumber: "5551234567", Type: "INCOMING", Timestamp: "100", Name: "second"},
	}

	records := Reconcile(entries, "5551234567")

	require.Len(t, records, 2)
	assert.Equal(t, "first", records[0].Name)
	assert.Equal(t, "second", records[1].Name)
}

func TestReconcileDropsShortNumbers(t *testing.T) {
	entries := []model.CallLogEntry{
		{PhoneNumber: "411", Type: "OUTGOING", Timestamp: "100"},
		{PhoneNumber: "", Type: "OUTGOING", Timestamp: "200"},
	}

	assert.Empty(t, Reconcile(entries, "411"))
}

func TestMapAllKeepsEveryNumber(t *testing.T) {
	entries := []model.CallLogEntry{
		{PhoneNumber: "5551234567", Type: "OUTGOING", Timestamp: "100", Duration: "1"},
		{PhoneNumber: "999-000-0000", Type: "INCOMING", Timestamp: "300", Duration: "2"},
		{PhoneNumber: "411", Type: "OUTGOING", Timestamp: "200"},
	}

	records := MapAll(entries)

	require.Len(t, records, 3)
	assert.Equal(t, "999-000-0000", records[0].PhoneNumber)
	assert.Equal(t, "411", records[1].PhoneNumber)
	assert.Equal(t, "5551234567", records[2].PhoneNumber)
}

func TestReconcileIdempotent(t *testing.T) {
	entries := []model.CallLogEntry{
		{PhoneNumber: "5551234567", Type: "INCOMING", Timestamp: "300", Duration: "2"},
		{PhoneNumber: "5551234567", Type: "OUTGOING", Timestamp: "100", Duration: "1"},
	}

	first := Reconcile(entries, "5551234567")
	second := Reconcile(entries, "5551234567")

	assert.Equal(t, first, second)
}
