package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"callscope/internal/core/model"
)

func TestAggregate(t *testing.T) {
	records := []model.CallRecord{
		{Direction: model.DirectionIncoming, Duration: 30},
		{Direction: model.DirectionIncoming, Duration: 0},
		{Direction: model.DirectionOutgoing, Duration: 90},
		{Direction: model.DirectionMissed, Duration: 15}, // duration excluded: never connected
		{Direction: model.DirectionRejected, Duration: 5},
		{Direction: model.DirectionBlocked, Duration: 5},
	}

	agg := Aggregate(records)

	assert.Equal(t, 2, agg.Incoming)
	assert.Equal(t, 1, agg.Outgoing)
	assert.Equal(t, 1, agg.Missed)
	assert.Equal(t, 1, agg.Rejected)
	assert.Equal(t, 1, agg.Blocked)
	assert.Equal(t, 120, agg.TotalDurationSeconds)
	assert.Equal(t, len(records), agg.Total())
}

func TestAggregateEmpty(t *testing.T) {
	assert.Equal(t, model.Aggregates{}, Aggregate(nil))
}
