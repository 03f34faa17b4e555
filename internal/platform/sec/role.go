// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Staff Roles

// UserRole represents the authorization level granted to a staff member.
type UserRole string

const (
	// Unrestricted back-office access
	RoleAdmin UserRole = "admin"

	// Can archive records and edit economics across the roster
	RoleManager UserRole = "manager"

	// Day-to-day booking agent: search, create and edit
	RoleAgent UserRole = "agent"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	return r.level() > 0
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleManager:
		return 20
	case RoleAgent:
		return 10
	default:
		return 0
	}
}
