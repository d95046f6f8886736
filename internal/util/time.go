package util

import (
	"fmt"
	"sync"
	"time"
)

// TimeProvider supplies the current time for every "now" fallback in the
// derivation and interaction code. Routing now through one provider keeps
// those fallbacks deterministic in tests.
type TimeProvider struct {
	location *time.Location
	nowFn    func() time.Time
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

// GetTimeProvider returns the global time provider instance, defaulting to
// the local timezone when not yet initialized.
func GetTimeProvider() *TimeProvider {
	timeProviderMu.Lock()
	defer timeProviderMu.Unlock()
	if globalTimeProvider == nil {
		globalTimeProvider = &TimeProvider{location: time.Local}
	}
	return globalTimeProvider
}

// SetTimezone updates the timezone for the time provider.
func (tp *TimeProvider) SetTimezone(timezone string) error {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	loc := time.Local
	if timezone != "" && timezone != "Local" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone %q: %w", timezone, err)
		}
		loc = l
	}
	tp.location = loc
	return nil
}

// SetNowFunc overrides the clock. Pass nil to restore the real clock.
func (tp *TimeProvider) SetNowFunc(fn func() time.Time) {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	tp.nowFn = fn
}

// Now returns the current time in the provider's timezone.
func (tp *TimeProvider) Now() time.Time {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	if tp.nowFn != nil {
		return tp.nowFn()
	}
	return time.Now().In(tp.location)
}

// Now is a convenience wrapper over the global provider.
func Now() time.Time {
	return GetTimeProvider().Now()
}
