// Package provider defines the seams between the reconciliation engine
// and the platform services it consumes: the call log, the address book,
// the dialer, and the permission system. Implementations live in
// subpackages; the engine only sees these interfaces.
package provider

import (
	"context"
	"errors"

	"callscope/internal/core/model"
)

var (
	// ErrPermissionDenied means the platform refused access. Retryable
	// through an explicit user action (re-running the command after
	// granting access), never retried automatically.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrProviderUnavailable means the capability does not exist on this
	// platform or configuration at all. Not retryable; callers should
	// render it as a distinct state, not as a permission problem.
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// CallLogProvider reads snapshots of the device call log.
type CallLogProvider interface {
	// Load returns up to limit entries with timestamps at or after
	// minTimestamp (epoch milliseconds). limit <= 0 means no limit,
	// minTimestamp <= 0 means no lower bound.
	Load(ctx context.Context, limit int, minTimestamp int64) ([]model.CallLogEntry, error)
	// Available reports whether the call log can be read at all on this
	// platform/configuration.
	Available() bool
}

// ContactsProvider is the address book.
type ContactsProvider interface {
	List(ctx context.Context) ([]model.Contact, error)
	Get(ctx context.Context, id string) (model.Contact, error)
	Add(ctx context.Context, name, phone string) (model.Contact, error)
	Update(ctx context.Context, contact model.Contact) error
	Remove(ctx context.Context, id string) error
	SetFavorite(ctx context.Context, id string, favorite bool) error
}

// DialerProvider places outgoing calls. PlaceCall is fire-and-forget:
// a nil error means the call was handed to the platform, not that it
// connected.
type DialerProvider interface {
	PlaceCall(number string) error
}

// PermissionStatus is the result of a permission check or request.
type PermissionStatus int

const (
	PermissionDenied PermissionStatus = iota
	PermissionGranted
)

func (s PermissionStatus) String() string {
	if s == PermissionGranted {
		return "granted"
	}
	return "denied"
}

// PermissionProvider checks and requests named platform permissions.
type PermissionProvider interface {
	Check(name string) PermissionStatus
	// Request re-evaluates the permission. For file-backed providers this
	// is the same probe as Check; it exists so user-initiated retries have
	// an explicit hook.
	Request(name string) PermissionStatus
}
