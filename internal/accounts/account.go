// Copyright (c) 2026 Offline-LAN Project. All rights reserved.
// Author: krazywes.dev@gmail.com

/*
Package accounts implements the account and session authority: the component
that creates, authenticates, updates, and deactivates user accounts and tracks
best-effort online/offline session state.

It defines the core domain entities (Account, Principal) and enforces the
protection invariant: the sole super-admin row may never be renamed, re-roled,
or deleted once created.

# Architecture

This layer is the "Truth" of the system. The UI windows are thin collaborators
that call the [Service] operations and render whatever comes back.
*/
package accounts

import (
	"time"

	"github.com/KrazyWes/Offline-LAN-Project/internal/platform/sec"
)

// # Domain Entities

// Account represents one row of public.users: a login identity with a role.
type Account struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Name         string    `json:"name"` // Display label; defaults to Username at creation.
	Role         sec.Role  `json:"role"`
	IsActive     bool      `json:"is_active"` // Advisory "currently signed in" flag, not a lock.
	LastActive   time.Time `json:"last_active,omitzero"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the minimal authenticated identity returned after a
// successful login.
type Principal struct {
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	Role     sec.Role `json:"role"`
}

// View is the account-list projection consumed by management and monitor
// screens. It never carries the password hash.
type View struct {
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	Role       sec.Role  `json:"role"`
	RoleLabel  string    `json:"role_label"`
	IsActive   bool      `json:"is_active"`
	LastActive time.Time `json:"last_active,omitzero"`
}

// viewOf projects an [Account] into its list representation.
func viewOf(account Account) View {
	return View{
		UserID:     account.UserID,
		Username:   account.Username,
		Name:       account.Name,
		Role:       account.Role,
		RoleLabel:  account.Role.Label(),
		IsActive:   account.IsActive,
		LastActive: account.LastActive,
	}
}

// # Field Identifiers

// Global field names for validation in the accounts domain.
const (
	FieldUsername = "username"
	FieldPassword = "password"
	FieldName     = "name"
	FieldRole     = "role"
	FieldUserID   = "user_id"
)
