package reconcile

import "callscope/internal/core/model"

// ShouldUpdate decides whether a freshly reconciled snapshot replaces the
// previous one. It is deliberately a shallow check, not a deep diff:
//
//   - record count changed
//   - newest record's timestamp changed (a call completed or replaced a
//     placeholder entry)
//   - first data arrived on an empty state
//
// A retroactive edit to a non-newest record that keeps the count stable
// is not detected; it self-heals on the next count or head change.
func ShouldUpdate(previous, next []model.CallRecord) bool {
	if len(next) != len(previous) {
		return true
	}
	if len(next) > 0 && len(previous) > 0 &&
		!next[0].Timestamp.Equal(previous[0].Timestamp) {
		return true
	}
	return false
}
