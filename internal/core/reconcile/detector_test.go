package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"callscope/internal/core/model"
)

func record(ts int64) model.CallRecord {
	return model.CallRecord{
		ID:        "x",
		Direction: model.DirectionIncoming,
		Timestamp: time.UnixMilli(ts),
	}
}

func TestShouldUpdate(t *testing.T) {
	r1 := record(100)
	r2 := record(50)
	r1v2 := record(150)

	tests := []struct {
		name     string
		previous []model.CallRecord
		next     []model.CallRecord
		expected bool
	}{
		{name: "both empty", previous: nil, next: nil, expected: false},
		{name: "first data arrived", previous: nil, next: []model.CallRecord{r1}, expected: true},
		{name: "count changed", previous: []model.CallRecord{r1}, next: []model.CallRecord{r1, r2}, expected: true},
		{name: "list cleared", previous: []model.CallRecord{r1}, next: nil, expected: true},
		{name: "unchanged", previous: []model.CallRecord{r1, r2}, next: []model.CallRecord{r1, r2}, expected: false},
		{name: "newest timestamp changed same length", previous: []model.CallRecord{r1}, next: []model.CallRecord{r1v2}, expected: true},
		{name: "non-newest change is missed by design", previous: []model.CallRecord{r1, r2}, next: []model.CallRecord{r1, record(60)}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShouldUpdate(tt.previous, tt.next))
		})
	}
}
