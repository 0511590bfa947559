// Copyright (c) 2026 Offline-LAN Project. All rights reserved.
// Author: krazywes.dev@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KrazyWes/Offline-LAN-Project/internal/platform/sec"
)

/*
TestRole_Valid verifies the closed enumeration: every known value is
accepted, everything else is rejected.
*/
func TestRole_Valid(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		isValid bool
	}{
		{"super_admin", "super_admin", true},
		{"administrator", "administrator", true},
		{"cashier", "cashier", true},
		{"monitor", "monitor", true},
		{"operator_a", "operator_a", true},
		{"operator_b", "operator_b", true},
		{"unknown", "manager", false},
		{"empty", "", false},
		{"case_sensitive", "Cashier", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isValid, sec.Role(tt.raw).Valid())
		})
	}
}

/*
TestRole_Manageable checks that the protected tier is excluded even though
it is a valid role.
*/
func TestRole_Manageable(t *testing.T) {
	assert.True(t, sec.RoleCashier.Manageable())
	assert.False(t, sec.RoleSuperAdmin.Manageable())
	assert.False(t, sec.Role("nonsense").Manageable())
}

/*
TestRole_ListRank pins the management-list ordering: administrators first,
cashiers last, unrecognized roles after everything.
*/
func TestRole_ListRank(t *testing.T) {
	tests := []struct {
		role sec.Role
		rank int
	}{
		{sec.RoleAdministrator, 1},
		{sec.RoleOperatorA, 2},
		{sec.RoleOperatorB, 3},
		{sec.RoleMonitor, 4},
		{sec.RoleCashier, 5},
		{sec.RoleSuperAdmin, 6},
		{sec.Role("stale_value"), 6},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.rank, tt.role.ListRank())
		})
	}
}

/*
TestRole_Label checks the display-name table and the raw fallback for rows
persisted before a role was retired.
*/
func TestRole_Label(t *testing.T) {
	assert.Equal(t, "Administrator", sec.RoleAdministrator.Label())
	assert.Equal(t, "Operator A", sec.RoleOperatorA.Label())
	assert.Equal(t, "Super Admin", sec.RoleSuperAdmin.Label())
	assert.Equal(t, "stale_value", sec.Role("stale_value").Label())
}

func TestManageableRoles_ExcludeSuperAdmin(t *testing.T) {
	assert.NotContains(t, sec.ManageableRoles, sec.RoleSuperAdmin)
	assert.Len(t, sec.ManageableRoles, 5)
	for _, role := range sec.ManageableRoles {
		assert.True(t, role.Manageable())
	}
	assert.False(t, sec.RoleSuperAdmin.Manageable())
}
