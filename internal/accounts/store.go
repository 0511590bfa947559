// Copyright (c) 2026 Offline-LAN Project. All rights reserved.
// Author: krazywes.dev@gmail.com

package accounts

import (
	"context"

	"github.com/KrazyWes/Offline-LAN-Project/internal/platform/apperr"
	"github.com/KrazyWes/Offline-LAN-Project/internal/platform/sec"
)

var (
	// ErrAccountNotFound is reported when a mutation or lookup target is absent.
	ErrAccountNotFound = apperr.NotFound("Account")

	// ErrSuperAdminProtected is reported for any attempt to rename, re-role,
	// or delete the super-admin row.
	ErrSuperAdminProtected = apperr.Forbidden("The super admin account cannot be modified")
)

// # Account Data Access

// Store defines the data access contract for the accounts table.
//
// Every mutating operation is atomic per call: either the row is fully
// written and durable, or nothing changes and an error is reported.
type Store interface {

	/*
		ExistsByRole reports whether any account currently has exactly that role.

		Parameters:
		  - context: context.Context
		  - role: sec.Role

		Returns:
		  - bool: true if at least one matching row exists
		  - error: Storage retrieval failures
	*/
	ExistsByRole(context context.Context, role sec.Role) (bool, error)

	/*
		UsernameTaken reports whether a username is already in use, optionally
		excluding one role from consideration.

		Parameters:
		  - context: context.Context
		  - username: string (case-sensitive)
		  - excludeRole: sec.Role (empty string excludes nothing)

		Returns:
		  - bool: true if a matching row exists
		  - error: Storage retrieval failures
	*/
	UsernameTaken(context context.Context, username string, excludeRole sec.Role) (bool, error)

	/*
		Insert persists a brand-new account row.

		Parameters:
		  - context: context.Context
		  - account: *Account (UserID pre-assigned, PasswordHash already derived)

		Returns:
		  - error: Conflict on username collision, Invalid on bad role,
		    Unavailable if storage cannot be reached
	*/
	Insert(context context.Context, account *Account) error

	/*
		FindByUsername returns the full row including hash, or NotFound.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *Account: Hydrated entity
		  - error: NotFound or storage retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*Account, error)

	/*
		FindByID returns the full row including hash, or NotFound.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - *Account: Hydrated entity
		  - error: NotFound or storage retrieval failures
	*/
	FindByID(context context.Context, userID string) (*Account, error)

	/*
		List returns accounts ordered by role rank (administrator first,
		cashier last, unknown roles after) then display name ascending.

		Parameters:
		  - context: context.Context
		  - excludeRole: sec.Role (empty string excludes nothing)

		Returns:
		  - []Account: Ordered rows, hash omitted
		  - error: Storage retrieval failures
	*/
	List(context context.Context, excludeRole sec.Role) ([]Account, error)

	/*
		ListByRole returns accounts holding exactly the given role, ordered by
		display name ascending.

		Parameters:
		  - context: context.Context
		  - role: sec.Role

		Returns:
		  - []Account: Ordered rows, hash omitted
		  - error: Storage retrieval failures
	*/
	ListByRole(context context.Context, role sec.Role) ([]Account, error)

	/*
		Update rewrites username, display name, and role of a non-protected
		row in a single statement. An empty newHash preserves the stored
		password hash unchanged.

		The protected row is treated as not found for mutation purposes: the
		statement's WHERE clause requires role <> super_admin.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - username: string
		  - name: string
		  - role: sec.Role
		  - newHash: string (empty = keep existing hash)

		Returns:
		  - error: Forbidden if the target is the super-admin, NotFound if the
		    row is absent, Conflict on username collision, Invalid on bad role
	*/
	Update(context context.Context, userID, username, name string, role sec.Role, newHash string) error

	/*
		Delete removes a non-protected row. Same protection semantics as Update.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Forbidden if the target is the super-admin, NotFound if absent
	*/
	Delete(context context.Context, userID string) error

	/*
		SetSessionState flips is_active and stamps last_active to now.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - active: bool

		Returns:
		  - error: NotFound if the row is absent, storage failures otherwise
	*/
	SetSessionState(context context.Context, userID string, active bool) error
}
