package util

import (
	"fmt"
	"sync"
	"time"
)

// TimeProvider handles timezone-aware time operations for display.
type TimeProvider struct {
	location *time.Location
	mu       sync.RWMutex
}

var (
	globalTimeProvider *TimeProvider
	timeProviderMu     sync.Mutex
)

// InitializeTimeProvider initializes the global time provider with the
// specified timezone.
func InitializeTimeProvider(timezone string) error {
	timeProviderMu.Lock()
	defer timeProviderMu.Unlock()

	provider := &TimeProvider{}
	if err := provider.SetTimezone(timezone); err != nil {
		return err
	}
	globalTimeProvider = provider
	return nil
}

// GetTimeProvider returns the global time provider, defaulting to the
// local timezone when not initialized.
func GetTimeProvider() *TimeProvider {
	if globalTimeProvider == nil {
		InitializeTimeProvider("Local")
	}
	return globalTimeProvider
}

// SetTimezone updates the timezone for the time provider
func (tp *TimeProvider) SetTimezone(timezone string) error {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	loc := time.Local
	if timezone != "" && timezone != "Local" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w\nValid examples: Local, UTC, America/New_York, Europe/London", timezone, err)
		}
		loc = l
	}
	tp.location = loc
	return nil
}

// Now returns the current time in the configured timezone
func (tp *TimeProvider) Now() time.Time {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return time.Now().In(tp.location)
}

// In converts a time to the configured timezone
func (tp *TimeProvider) In(t time.Time) time.Time {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return t.In(tp.location)
}

// Format formats a time according to the layout in the configured timezone
func (tp *TimeProvider) Format(t time.Time, layout string) string {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return t.In(tp.location).Format(layout)
}

// FormatRelative renders a call timestamp the way a recents list shows
// it: clock time for today, "Yesterday", the weekday within the last
// week, otherwise a short date.
func (tp *TimeProvider) FormatRelative(now, t time.Time) string {
	now = tp.In(now)
	t = tp.In(t)

	ny, nm, nd := now.Date()
	ty, tm, td := t.Date()
	if ny == ty && nm == tm && nd == td {
		return t.Format("15:04")
	}

	yesterday := now.AddDate(0, 0, -1)
	yy, ym, yd := yesterday.Date()
	if yy == ty && ym == tm && yd == td {
		return "Yesterday"
	}

	if now.Sub(t) < 7*24*time.Hour && t.Before(now) {
		return t.Format("Monday")
	}

	if ny == ty {
		return t.Format("Jan 2")
	}
	return t.Format("Jan 2, 2006")
}
