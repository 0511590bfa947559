// Copyright (c) 2026 Offline-LAN Project. All rights reserved.
// Author: krazywes.dev@gmail.com

package accounts

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/KrazyWes/Offline-LAN-Project/internal/platform/apperr"
	"github.com/KrazyWes/Offline-LAN-Project/internal/platform/sec"
	"github.com/KrazyWes/Offline-LAN-Project/internal/platform/validate"
	"github.com/KrazyWes/Offline-LAN-Project/pkg/uuid"
)

// # Service Layer

// Service is the account authority facade consumed by the UI layer.
//
// Every mutating call returns its error directly; there is no shared
// last-error slot, so concurrent callers never race on error state. The
// display text for any failure comes from [apperr.DisplayMessage].
//
// # Review Process
//
// This service guards the super-admin protection invariant. Any change to
// creation, update, or deletion logic must preserve it.
type Service struct {
	store   Store
	tracker *SessionTracker
	logger  *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(store Store, tracker *SessionTracker, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		tracker: tracker,
		logger:  logger,
	}
}

// Tracker exposes the session bookkeeping half of the authority.
func (service *Service) Tracker() *SessionTracker { return service.tracker }

// # Bootstrap Flow

/*
BootstrapNeeded reports whether the one-time super-admin setup must run.

Description: True exactly while no account holds the super_admin role. The UI
shows the first-run registration screen instead of the login screen while
this holds.

Parameters:
  - context: context.Context

Returns:
  - bool: true if no super-admin exists yet
  - error: Storage failures
*/
func (service *Service) BootstrapNeeded(context context.Context) (bool, error) {
	exists, err := service.store.ExistsByRole(context, sec.RoleSuperAdmin)
	if err != nil {
		return false, fmt.Errorf("accounts_service_bootstrap_check_failed: %w", err)
	}
	return !exists, nil
}

/*
CreateSuperAdmin performs the one-time creation of the protected account.

Description: Refuses with Conflict if a super-admin already exists, so a
second call can never silently create a second one. The username must be
unused by any account, the super-admin itself included.

Parameters:
  - context: context.Context
  - name: string (display label, defaults to username if empty)
  - username: string
  - password: string

Returns:
  - error: Invalid, Conflict, or storage failures
*/
func (service *Service) CreateSuperAdmin(context context.Context, name, username, password string) error {

	// Input validation before any storage call
	v := &validate.Validator{}
	if err := v.
		Required(FieldUsername, username).
		MaxLen(FieldUsername, username, 50).
		Required(FieldPassword, password).
		MinLen(FieldPassword, password, 4).
		MaxLen(FieldName, name, 100).
		Err(); err != nil {
		return err
	}

	// Business: the protected role is created at most once
	exists, err := service.store.ExistsByRole(context, sec.RoleSuperAdmin)
	if err != nil {
		return fmt.Errorf("accounts_service_super_admin_check_failed: %w", err)
	}
	if exists {
		return apperr.Conflict("A super admin account already exists")
	}

	// Business: the bootstrap username must be globally unused
	taken, err := service.store.UsernameTaken(context, username, "")
	if err != nil {
		return fmt.Errorf("accounts_service_username_check_failed: %w", err)
	}
	if taken {
		return apperr.Conflict("Username is already taken")
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		return fmt.Errorf("accounts_service_hash_failed: %w", err)
	}

	// Fallback to username if the display name is empty
	if name == "" {
		name = username
	}

	account := &Account{
		UserID:       uuid.New(),
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Role:         sec.RoleSuperAdmin,
		IsActive:     false,
	}

	if err := service.store.Insert(context, account); err != nil {
		return fmt.Errorf("accounts_service_super_admin_create_failed: %w", err)
	}

	service.logger.Info("super_admin_created", slog.String("user_id", account.UserID))

	return nil
}

// # Authentication Flow

/*
Authenticate validates login credentials against the stored hash.

Description: Looks the account up by exact username and performs a
constant-time password comparison. A wrong password or unknown username
yields (nil, nil), never an error, so callers cannot distinguish the two
cases. Inactive accounts may log in: is_active only tracks session state.

Parameters:
  - context: context.Context
  - username: string
  - password: string

Returns:
  - *Principal: Minimal authenticated identity, or nil on credential mismatch
  - error: Storage failures only
*/
func (service *Service) Authenticate(context context.Context, username, password string) (*Principal, error) {
	account, err := service.store.FindByUsername(context, username)
	if err != nil {
		// Absent user reads the same as a wrong password.
		if apperr.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("accounts_service_login_lookup_failed: %w", err)
	}

	if !sec.CheckPasswordHash(password, account.PasswordHash) {
		service.logger.Info("login_failed", slog.String("username", username))
		return nil, nil
	}

	service.logger.Info("login_succeeded",
		slog.String("user_id", account.UserID),
		slog.String("role", string(account.Role)),
	)

	return &Principal{
		UserID:   account.UserID,
		Username: account.Username,
		Role:     account.Role,
	}, nil
}

// # Account Management

/*
CreateAccount enrolls a new manageable account.

Description: Rejects unknown or protected roles, rejects usernames already in
use within the manageable scope, hashes the password, and inserts the row
offline (is_active = false).

Parameters:
  - context: context.Context
  - username: string
  - password: string
  - roleRaw: string (must parse to a manageable role)
  - name: string (defaults to username if empty)

Returns:
  - error: Invalid, Conflict, or storage failures
*/
func (service *Service) CreateAccount(context context.Context, username, password, roleRaw, name string) error {
	role := sec.Role(roleRaw)

	// Input validation before any storage call. Unknown or protected roles
	// are rejected here instead of persisted.
	v := &validate.Validator{}
	if err := v.
		Required(FieldUsername, username).
		MaxLen(FieldUsername, username, 50).
		Required(FieldPassword, password).
		MinLen(FieldPassword, password, 4).
		MaxLen(FieldName, name, 100).
		ManageableRole(FieldRole, role).
		Err(); err != nil {
		return err
	}

	// Uniqueness holds within the manageable scope; the super-admin's own
	// username is outside it.
	taken, err := service.store.UsernameTaken(context, username, sec.RoleSuperAdmin)
	if err != nil {
		return fmt.Errorf("accounts_service_username_check_failed: %w", err)
	}
	if taken {
		return apperr.Conflict("Username is already taken")
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		return fmt.Errorf("accounts_service_hash_failed: %w", err)
	}

	// Fallback to username if the display name is empty
	if name == "" {
		name = username
	}

	account := &Account{
		UserID:       uuid.New(),
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		IsActive:     false, // new accounts start offline
	}

	if err := service.store.Insert(context, account); err != nil {
		return fmt.Errorf("accounts_service_create_failed: %w", err)
	}

	service.logger.Info("account_created",
		slog.String("user_id", account.UserID),
		slog.String("role", string(role)),
	)

	return nil
}

/*
ListManageable returns every account except the super-admin, in management
list order (role rank, then display name).

Parameters:
  - context: context.Context

Returns:
  - []View: Hash-free projections with display labels
  - error: Storage failures
*/
func (service *Service) ListManageable(context context.Context) ([]View, error) {
	accounts, err := service.store.List(context, sec.RoleSuperAdmin)
	if err != nil {
		return nil, fmt.Errorf("accounts_service_list_failed: %w", err)
	}

	views := make([]View, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, viewOf(account))
	}

	return views, nil
}

/*
ListCashiers returns every cashier account ordered by display name.

Description: Feeds the monitor screen's overview of till activity.

Parameters:
  - context: context.Context

Returns:
  - []View: Hash-free projections
  - error: Storage failures
*/
func (service *Service) ListCashiers(context context.Context) ([]View, error) {
	accounts, err := service.store.ListByRole(context, sec.RoleCashier)
	if err != nil {
		return nil, fmt.Errorf("accounts_service_list_cashiers_failed: %w", err)
	}

	views := make([]View, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, viewOf(account))
	}

	return views, nil
}

/*
UpdateAccount rewrites the identity fields of a manageable account.

Description: Validates the role against the manageable set, optionally
re-hashes a new password (an empty newPassword preserves the stored hash
unchanged), and applies one guarded atomic UPDATE. A no-op update with the
account's own current values succeeds and leaves last_active, created_at,
and password_hash untouched.

Parameters:
  - context: context.Context
  - userID: string
  - username: string
  - name: string
  - roleRaw: string (must parse to a manageable role)
  - newPassword: string (empty = keep current password)

Returns:
  - error: Invalid, Forbidden, NotFound, Conflict, or storage failures
*/
func (service *Service) UpdateAccount(context context.Context, userID, username, name, roleRaw, newPassword string) error {
	role := sec.Role(roleRaw)

	// Input validation before any storage call
	v := &validate.Validator{}
	if err := v.
		Required(FieldUserID, userID).
		UUID(FieldUserID, userID).
		Required(FieldUsername, username).
		MaxLen(FieldUsername, username, 50).
		MaxLen(FieldName, name, 100).
		ManageableRole(FieldRole, role).
		Custom(FieldPassword, newPassword != "" && utf8.RuneCountInString(newPassword) < 4, "Minimum 4 characters").
		Err(); err != nil {
		return err
	}

	// Empty hash tells the store to preserve the stored one
	newHash := ""
	if newPassword != "" {
		hash, err := sec.HashPassword(newPassword)
		if err != nil {
			return fmt.Errorf("accounts_service_hash_failed: %w", err)
		}
		newHash = hash
	}

	// Fallback to username if the display name is empty
	if name == "" {
		name = username
	}

	// Username collisions are caught by the unique constraint inside the
	// same atomic statement; a pre-check here could race.
	if err := service.store.Update(context, userID, username, name, role, newHash); err != nil {
		return fmt.Errorf("accounts_service_update_failed: %w", err)
	}

	service.logger.Info("account_updated",
		slog.String("user_id", userID),
		slog.String("role", string(role)),
		slog.Bool("password_changed", newHash != ""),
	)

	return nil
}

/*
DeleteAccount removes a manageable account.

Description: Always fails with Forbidden for the super-admin row, regardless
of the values supplied; the protected row remains byte-for-byte unchanged.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Forbidden, NotFound, or storage failures
*/
func (service *Service) DeleteAccount(context context.Context, userID string) error {
	if err := service.store.Delete(context, userID); err != nil {
		return fmt.Errorf("accounts_service_delete_failed: %w", err)
	}

	service.logger.Warn("account_deleted", slog.String("user_id", userID))

	return nil
}
