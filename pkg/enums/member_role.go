package enums

import "fmt"

// MemberRole represents a home-level permissions role.
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
)

var validMemberRoles = []MemberRole{
	MemberRoleOwner,
	MemberRoleAdmin,
	MemberRoleMember,
}

// String implements fmt.Stringer.
func (m MemberRole) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MemberRole.
func (m MemberRole) IsValid() bool {
	for _, candidate := range validMemberRoles {
		if candidate == m {
			return true
		}
	}
	return false
}

// Rank orders roles so that owner > admin > member.
func (m MemberRole) Rank() int {
	switch m {
	case MemberRoleOwner:
		return 3
	case MemberRoleAdmin:
		return 2
	case MemberRoleMember:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether m grants every permission of min.
func (m MemberRole) AtLeast(min MemberRole) bool {
	return m.Rank() >= min.Rank() && m.Rank() > 0
}

// ParseMemberRole converts raw input into a MemberRole.
func ParseMemberRole(value string) (MemberRole, error) {
	for _, candidate := range validMemberRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid member role %q", value)
}
