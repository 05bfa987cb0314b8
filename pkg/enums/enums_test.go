package enums

import (
	"testing"
	"time"
)

func TestMemberRoleAtLeast(t *testing.T) {
	cases := []struct {
		role MemberRole
		min  MemberRole
		want bool
	}{
		{MemberRoleOwner, MemberRoleAdmin, true},
		{MemberRoleAdmin, MemberRoleAdmin, true},
		{MemberRoleMember, MemberRoleAdmin, false},
		{MemberRoleMember, MemberRoleMember, true},
		{MemberRole("ghost"), MemberRoleMember, false},
	}
	for _, tc := range cases {
		if got := tc.role.AtLeast(tc.min); got != tc.want {
			t.Fatalf("%s.AtLeast(%s)=%v want %v", tc.role, tc.min, got, tc.want)
		}
	}
}

func TestParsers(t *testing.T) {
	if _, err := ParseMemberRole("viewer"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
	if r, err := ParseMemberRole("admin"); err != nil || r != MemberRoleAdmin {
		t.Fatalf("unexpected parse result %q %v", r, err)
	}
	if _, err := ParseMembershipStatus("removed"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
	if p, err := ParseCredentialProvider("google"); err != nil || p != CredentialProviderGoogle {
		t.Fatalf("unexpected provider %q %v", p, err)
	}
	if _, err := ParseExpirationStatus("stale"); err == nil {
		t.Fatalf("expected error for unknown expiration status")
	}
}

func TestExpirationStatusAt(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	day := func(offset int) *time.Time {
		v := now.AddDate(0, 0, offset)
		return &v
	}

	if got := ExpirationStatusAt(nil, now); got != ExpirationStatusNone {
		t.Fatalf("nil expiry: got %s", got)
	}
	if got := ExpirationStatusAt(day(-1), now); got != ExpirationStatusExpired {
		t.Fatalf("yesterday: got %s", got)
	}
	if got := ExpirationStatusAt(day(0), now); got != ExpirationStatusExpiringSoon {
		t.Fatalf("today: got %s", got)
	}
	if got := ExpirationStatusAt(day(7), now); got != ExpirationStatusExpiringSoon {
		t.Fatalf("seven days: got %s", got)
	}
	if got := ExpirationStatusAt(day(8), now); got != ExpirationStatusFresh {
		t.Fatalf("eight days: got %s", got)
	}
}

func TestExpirationBoundsMatchStatus(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	today, soonEnd := ExpirationBounds(now)

	if !today.Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected today %s", today)
	}
	lastSoon := soonEnd.Add(-time.Nanosecond)
	if got := ExpirationStatusAt(&lastSoon, now); got != ExpirationStatusExpiringSoon {
		t.Fatalf("end of window: got %s", got)
	}
	if got := ExpirationStatusAt(&soonEnd, now); got != ExpirationStatusFresh {
		t.Fatalf("past window: got %s", got)
	}
}
