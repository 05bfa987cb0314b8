package enums

import (
	"fmt"
	"time"
)

// ExpiringSoonWindow is how far ahead an item counts as expiring soon.
const ExpiringSoonWindow = 7 * 24 * time.Hour

// ExpirationStatus is derived from an inventory item's expiry date.
type ExpirationStatus string

const (
	ExpirationStatusNone         ExpirationStatus = "none"
	ExpirationStatusFresh        ExpirationStatus = "fresh"
	ExpirationStatusExpiringSoon ExpirationStatus = "expiring_soon"
	ExpirationStatusExpired      ExpirationStatus = "expired"
)

var validExpirationStatuses = []ExpirationStatus{
	ExpirationStatusNone,
	ExpirationStatusFresh,
	ExpirationStatusExpiringSoon,
	ExpirationStatusExpired,
}

func (s ExpirationStatus) String() string {
	return string(s)
}

func (s ExpirationStatus) IsValid() bool {
	for _, candidate := range validExpirationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

func ParseExpirationStatus(value string) (ExpirationStatus, error) {
	for _, candidate := range validExpirationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid expiration status %q", value)
}

// ExpirationStatusAt classifies expiresAt relative to now. Dates are compared
// at day granularity in UTC: anything before today is expired.
func ExpirationStatusAt(expiresAt *time.Time, now time.Time) ExpirationStatus {
	if expiresAt == nil {
		return ExpirationStatusNone
	}
	today := truncateDay(now)
	day := truncateDay(*expiresAt)
	switch {
	case day.Before(today):
		return ExpirationStatusExpired
	case !day.After(today.Add(ExpiringSoonWindow)):
		return ExpirationStatusExpiringSoon
	default:
		return ExpirationStatusFresh
	}
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ExpirationBounds returns the start of today (UTC) and the first instant
// past the expiring-soon window. Storage filters use them to match
// ExpirationStatusAt.
func ExpirationBounds(now time.Time) (today, soonEnd time.Time) {
	today = truncateDay(now)
	return today, today.Add(ExpiringSoonWindow + 24*time.Hour)
}
