// Package reconcile turns a raw device call-log snapshot into the
// deduplicated, sorted view of one contact's call history, and decides
// when a newly fetched snapshot is different enough to publish.
package reconcile

import (
	"fmt"
	"strconv"
	"time"

	"callscope/internal/core/model"
)

// MapEntry converts one raw call-log entry into an engine-owned record.
// index is the entry's position in the source batch and disambiguates
// same-timestamp entries in the record ID. IDs are unique within one
// batch only; snapshots are replaced wholesale, never diffed by ID.
func MapEntry(entry model.CallLogEntry, index int) model.CallRecord {
	ts := parseMillis(entry.Timestamp)

	duration, err := strconv.Atoi(entry.Duration)
	if err != nil || duration < 0 {
		duration = 0
	}

	return model.CallRecord{
		ID:          fmt.Sprintf("%d-%d", ts.UnixMilli(), index),
		Direction:   model.DirectionFromLog(entry.Type),
		Duration:    duration,
		Timestamp:   ts,
		PhoneNumber: entry.PhoneNumber,
		Name:        entry.Name,
	}
}

// parseMillis parses an epoch-milliseconds string, defaulting to the
// current time when the field is missing or unparseable.
func parseMillis(raw string) time.Time {
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || millis <= 0 {
		return time.Now()
	}
	return time.UnixMilli(millis)
}
