package reconcile

import (
	"sort"

	"callscope/internal/core/model"
	"callscope/internal/core/phone"
)

// Reconcile filters a full call-log snapshot down to the entries matching
// targetPhone and maps them to records sorted newest first. Entries whose
// number normalizes to fewer than phone.MinMatchDigits digits are dropped
// before matching. The sort is stable so same-timestamp entries keep their
// original relative order.
func Reconcile(entries []model.CallLogEntry, targetPhone string) []model.CallRecord {
	target := phone.Normalize(targetPhone)

	records := make([]model.CallRecord, 0, len(entries))
	for i, entry := range entries {
		candidate := phone.Normalize(entry.PhoneNumber)
		if len(candidate) < phone.MinMatchDigits {
			continue
		}
		if !phone.Matches(candidate, target) {
			continue
		}
		records = append(records, MapEntry(entry, i))
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})

	return records
}

// MapAll maps every entry without filtering by number, newest first.
// The recents listing uses this to show the whole call log.
func MapAll(entries []model.CallLogEntry) []model.CallRecord {
	records := make([]model.CallRecord, 0, len(entries))
	for i, entry := range entries {
		records = append(records, MapEntry(entry, i))
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})

	return records
}
