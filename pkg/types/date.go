package types

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDateOrTimestamp accepts a calendar date (YYYY-MM-DD) or an RFC 3339
// timestamp and returns the instant in UTC. Calendar dates map to midnight UTC.
func ParseDateOrTimestamp(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if t, err := time.Parse(dateLayout, v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD or RFC 3339 timestamp, got %q", value)
	}
	return t.UTC(), nil
}
