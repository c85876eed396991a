package model

import (
	"strings"
	"time"
)

// CallLogEntry is a raw record as read from a device call-log export.
// Numeric fields arrive as strings because that is how the platform
// call-log content provider serializes them; parsing and defaulting
// happen in the reconcile mapper, not here.
type CallLogEntry struct {
	PhoneNumber string `json:"phoneNumber"`
	Type        string `json:"type"`      // INCOMING, OUTGOING, MISSED, REJECTED, BLOCKED
	Timestamp   string `json:"timestamp"` // epoch milliseconds
	Duration    string `json:"duration"`  // seconds
	Name        string `json:"name,omitempty"`
}

// Direction classifies a reconciled call record.
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
	DirectionMissed   Direction = "missed"
	DirectionRejected Direction = "rejected"
	DirectionBlocked  Direction = "blocked"
)

// DirectionFromLog maps a platform call-log type constant to a Direction.
// Unrecognized values map to outgoing; the platform has grown new type
// constants before and dropping those entries silently would undercount.
func DirectionFromLog(raw string) Direction {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "INCOMING":
		return DirectionIncoming
	case "OUTGOING":
		return DirectionOutgoing
	case "MISSED":
		return DirectionMissed
	case "REJECTED":
		return DirectionRejected
	case "BLOCKED":
		return DirectionBlocked
	default:
		return DirectionOutgoing
	}
}

// CallRecord is the reconciled, engine-owned view of one call.
// Records are created fresh on every poll cycle and never mutated;
// the whole set is replaced atomically when a new snapshot is accepted.
type CallRecord struct {
	ID          string    `json:"id"` // "{millis}-{index}", unique within one batch only
	Direction   Direction `json:"direction"`
	Duration    int       `json:"duration"` // seconds, never negative
	Timestamp   time.Time `json:"timestamp"`
	PhoneNumber string    `json:"phoneNumber"`
	Name        string    `json:"name,omitempty"`
}

// Aggregates holds per-direction counts and total talk time over a
// reconciled record set. Only connected calls (incoming and outgoing)
// contribute to TotalDurationSeconds.
type Aggregates struct {
	Incoming             int `json:"incoming"`
	Outgoing             int `json:"outgoing"`
	Missed               int `json:"missed"`
	Rejected             int `json:"rejected"`
	Blocked              int `json:"blocked"`
	TotalDurationSeconds int `json:"totalDurationSeconds"`
}

// Total returns the number of records the aggregates were computed over.
func (a Aggregates) Total() int {
	return a.Incoming + a.Outgoing + a.Missed + a.Rejected + a.Blocked
}

// Contact is an address-book entry owned by the local store.
type Contact struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Favorite  bool   `json:"favorite"`
	CreatedAt int64  `json:"createdAt"` // unix seconds
	UpdatedAt int64  `json:"updatedAt"`
}

// Note is a free-text note attached to a contact.
type Note struct {
	ID        int64  `json:"id"`
	ContactID string `json:"contactId"`
	Body      string `json:"body"`
	CreatedAt int64  `json:"createdAt"`
}

// Reminder is a dated follow-up attached to a contact.
type Reminder struct {
	ID        string `json:"id"`
	ContactID string `json:"contactId"`
	Message   string `json:"message"`
	DueAt     int64  `json:"dueAt"` // unix seconds
	Done      bool   `json:"done"`
	CreatedAt int64  `json:"createdAt"`
}
