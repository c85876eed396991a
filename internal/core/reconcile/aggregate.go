package reconcile

import "callscope/internal/core/model"

// Aggregate computes per-direction counts and total talk time over a
// record set. Missed, rejected, and blocked calls never connected, so
// their durations are excluded from the total.
func Aggregate(records []model.CallRecord) model.Aggregates {
	var agg model.Aggregates
	for _, r := range records {
		switch r.Direction {
		case model.DirectionIncoming:
			agg.Incoming++
			agg.TotalDurationSeconds += r.Duration
		case model.DirectionOutgoing:
			agg.Outgoing++
			agg.TotalDurationSeconds += r.Duration
		case model.DirectionMissed:
			agg.Missed++
		case model.DirectionRejected:
			agg.Rejected++
		case model.DirectionBlocked:
			agg.Blocked++
		}
	}
	return agg
}
