// Copyright (c) 2026 Offline-LAN Project. All rights reserved.
// Author: krazywes.dev@gmail.com

package sec

// # Account Roles

// Role represents the authorization tier assigned to an account.
type Role string

const (
	// The single protected account; may never be renamed, re-roled, or deleted
	RoleSuperAdmin Role = "super_admin"

	// Manages the account roster and day-to-day configuration
	RoleAdministrator Role = "administrator"

	// Operates a till
	RoleCashier Role = "cashier"

	// Read-only overview of cashier activity
	RoleMonitor Role = "monitor"

	// Line operators for the two LAN stations
	RoleOperatorA Role = "operator_a"
	RoleOperatorB Role = "operator_b"
)

// ManageableRoles is the role set exposed to account-management screens.
// The super-admin tier is deliberately absent.
var ManageableRoles = []Role{
	RoleAdministrator,
	RoleCashier,
	RoleMonitor,
	RoleOperatorA,
	RoleOperatorB,
}

// roleLabels maps each role to its display name.
var roleLabels = map[Role]string{
	RoleSuperAdmin:    "Super Admin",
	RoleAdministrator: "Administrator",
	RoleCashier:       "Cashier",
	RoleMonitor:       "Monitor",
	RoleOperatorA:     "Operator A",
	RoleOperatorB:     "Operator B",
}

// # Role Operations

// Valid reports whether the role belongs to the closed enumeration.
func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// Manageable reports whether the role may be assigned through account
// management. The protected tier is excluded.
func (r Role) Manageable() bool {
	return r.Valid() && r != RoleSuperAdmin
}

// Label returns the display name shown in account lists. Unknown roles fall
// back to their raw string so stale rows still render.
func (r Role) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return string(r)
}

// ListRank maps a role to its position in account listings: administrators
// first, cashiers last, anything unrecognized after that.
func (r Role) ListRank() int {
	switch r {
	case RoleAdministrator:
		return 1
	case RoleOperatorA:
		return 2
	case RoleOperatorB:
		return 3
	case RoleMonitor:
		return 4
	case RoleCashier:
		return 5
	default:
		return 6
	}
}
