package formatter

import (
	"bytes"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(&buf)
	require.NoError(t, f.Format(sampleReport()))

	var decoded Report
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Alice", decoded.Name)
	assert.Equal(t, "5551234567", decoded.Phone)
	require.Len(t, decoded.Records, 2)
	assert.Equal(t, "200-0", decoded.Records[0].ID)
	assert.Equal(t, 125, decoded.Aggregates.TotalDurationSeconds)
}
