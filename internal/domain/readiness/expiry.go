package readiness

import (
	"math"
	"strings"
	"time"
)

// ExpiringSoonDays is the window in which a valid document is flagged.
const ExpiringSoonDays = 90

// Expiry classification of a document's validity date.
type Expiry string

const (
	ExpiryNone         Expiry = "none"
	ExpiryValid        Expiry = "valid"
	ExpiryExpiringSoon Expiry = "expiring_soon"
	ExpiryExpired      Expiry = "expired"
)

// ExpiryStatus is the read-time view of a validity date.
type ExpiryStatus struct {
	Status       Expiry `json:"status"`
	Expired      bool   `json:"expired"`
	ExpiringSoon bool   `json:"expiring_soon"`
	DaysUntil    *int   `json:"days_until,omitempty"`
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate accepts RFC 3339 timestamps and plain calendar dates (read as
// UTC midnight). Blank or unparsable input reports ok=false and is treated
// by callers as absent.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DocumentExpiry classifies validUntil against now.
func DocumentExpiry(validUntil string, now time.Time) ExpiryStatus {
	t, ok := ParseDate(validUntil)
	if !ok {
		return ExpiryStatus{Status: ExpiryNone}
	}
	if t.Before(now) {
		days := daysUntil(t, now)
		return ExpiryStatus{Status: ExpiryExpired, Expired: true, DaysUntil: &days}
	}
	days := daysUntil(t, now)
	if days > 0 && days <= ExpiringSoonDays {
		return ExpiryStatus{Status: ExpiryExpiringSoon, ExpiringSoon: true, DaysUntil: &days}
	}
	return ExpiryStatus{Status: ExpiryValid, DaysUntil: &days}
}

// daysUntil rounds the remaining time up to whole days.
func daysUntil(t, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}
