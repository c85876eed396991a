package formatter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callscope/internal/core/model"
)

func TestSummaryFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewSummaryFormatter(&buf)
	require.NoError(t, f.Format(sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "Call history for Alice (5551234567)")
	assert.Contains(t, out, "Incoming: 1")
	assert.Contains(t, out, "Missed:   1")
	assert.Contains(t, out, "Total:    2")
	assert.Contains(t, out, "Talk time: 2:05")
	assert.NotContains(t, out, "Rejected", "zero rejected count is omitted")
}

func TestSummaryFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	f := NewSummaryFormatter(&buf)
	require.NoError(t, f.Format(Report{Phone: "5551234567", Aggregates: model.Aggregates{}}))

	assert.Contains(t, buf.String(), "No calls found")
}
