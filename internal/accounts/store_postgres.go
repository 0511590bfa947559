// Copyright (c) 2026 Offline-LAN Project. All rights reserved.
// Author: krazywes.dev@gmail.com

/*
Package accounts (Postgres) implements the storage layer of the authority.

It provides the PostgreSQL implementation of [Store] on top of a pgx pool.

# Schema Table Mapping
  - public.users: one row per login identity.

# Protection

Mutations against the super-admin row are refused at the SQL level: every
UPDATE/DELETE carries a role <> 'super_admin' predicate, so the protected row
is untouchable even if a caller bypasses the service-layer checks.
*/
package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KrazyWes/Offline-LAN-Project/internal/platform/constants"
	"github.com/KrazyWes/Offline-LAN-Project/internal/platform/database/schema"
	"github.com/KrazyWes/Offline-LAN-Project/internal/platform/dberr"
	"github.com/KrazyWes/Offline-LAN-Project/internal/platform/sec"
)

// # Store Implementation

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates the Postgres implementation of the account store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// opContext bounds a single store call. Every query fails fast with
// Unavailable instead of hanging when the database is unreachable.
func opContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, constants.StoreTimeout)
}

// roleRankCase is the ORDER BY expression that puts administrators first and
// cashiers last in account listings.
var roleRankCase = fmt.Sprintf(`CASE %s
			WHEN 'administrator' THEN 1
			WHEN 'operator_a' THEN 2
			WHEN 'operator_b' THEN 3
			WHEN 'monitor' THEN 4
			WHEN 'cashier' THEN 5
			ELSE 6
		END`, schema.Users.Role)

// # Existence Checks

/*
ExistsByRole reports whether any account currently holds the role.

Parameters:
  - context: context.Context
  - role: sec.Role

Returns:
  - bool: true if at least one row matches
  - error: Storage retrieval failures
*/
func (store *PostgresStore) ExistsByRole(context context.Context, role sec.Role) (bool, error) {
	queryCtx, cancel := opContext(context)
	defer cancel()

	query := fmt.Sprintf(`SELECT 1 FROM %s WHERE %s = $1 LIMIT 1`,
		schema.Users.Table, schema.Users.Role)

	var one int
	err := store.pool.QueryRow(queryCtx, query, string(role)).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, dberr.Wrap(err, "Account")
	}

	return true, nil
}

/*
UsernameTaken reports whether a username is in use, optionally ignoring rows
of one role.

Parameters:
  - context: context.Context
  - username: string
  - excludeRole: sec.Role (empty excludes nothing)

Returns:
  - bool: true if a matching row exists
  - error: Storage retrieval failures
*/
func (store *PostgresStore) UsernameTaken(context context.Context, username string, excludeRole sec.Role) (bool, error) {
	queryCtx, cancel := opContext(context)
	defer cancel()

	query := fmt.Sprintf(`SELECT 1 FROM %s WHERE %s = $1 LIMIT 1`,
		schema.Users.Table, schema.Users.Username)
	args := []any{username}

	if excludeRole != "" {
		query = fmt.Sprintf(`SELECT 1 FROM %s WHERE %s = $1 AND %s != $2 LIMIT 1`,
			schema.Users.Table, schema.Users.Username, schema.Users.Role)
		args = append(args, string(excludeRole))
	}

	var one int
	err := store.pool.QueryRow(queryCtx, query, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, dberr.Wrap(err, "Account")
	}

	return true, nil
}

// # Row Lifecycle

/*
Insert persists a brand-new account row.

Parameters:
  - context: context.Context
  - account: *Account (UserID pre-assigned, hash already derived)

Returns:
  - error: Conflict, Invalid, Unavailable, or Unknown per dberr mapping
*/
func (store *PostgresStore) Insert(context context.Context, account *Account) error {
	queryCtx, cancel := opContext(context)
	defer cancel()

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING %s`,
		schema.Users.Table,
		schema.Users.UserID, schema.Users.Username, schema.Users.PasswordHash,
		schema.Users.Name, schema.Users.Role, schema.Users.IsActive,
		schema.Users.CreatedAt,
		schema.Users.CreatedAt,
	)

	err := store.pool.QueryRow(queryCtx, query,
		account.UserID,
		account.Username,
		account.PasswordHash,
		account.Name,
		string(account.Role),
		account.IsActive,
	).Scan(&account.CreatedAt)

	// If the insert fails, classify and return
	if err != nil {
		return dberr.Wrap(err, "Account")
	}

	return nil
}

/*
FindByUsername retrieves the full row, including the password hash.

Parameters:
  - context: context.Context
  - username: string (case-sensitive exact match)

Returns:
  - *Account: Hydrated entity
  - error: NotFound or storage retrieval failures
*/
func (store *PostgresStore) FindByUsername(context context.Context, username string) (*Account, error) {
	queryCtx, cancel := opContext(context)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		LIMIT 1`,
		schema.Users.UserID, schema.Users.Username, schema.Users.PasswordHash,
		schema.Users.Name, schema.Users.Role, schema.Users.IsActive,
		schema.Users.LastActive, schema.Users.CreatedAt,
		schema.Users.Table, schema.Users.Username,
	)

	return store.scanAccount(store.pool.QueryRow(queryCtx, query, username))
}

/*
FindByID retrieves the full row, including the password hash.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Account: Hydrated entity
  - error: NotFound or storage retrieval failures
*/
func (store *PostgresStore) FindByID(context context.Context, userID string) (*Account, error) {
	queryCtx, cancel := opContext(context)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		LIMIT 1`,
		schema.Users.UserID, schema.Users.Username, schema.Users.PasswordHash,
		schema.Users.Name, schema.Users.Role, schema.Users.IsActive,
		schema.Users.LastActive, schema.Users.CreatedAt,
		schema.Users.Table, schema.Users.UserID,
	)

	return store.scanAccount(store.pool.QueryRow(queryCtx, query, userID))
}

// scanAccount hydrates one [Account] from a row, folding the nullable
// last_active column into its zero value.
func (store *PostgresStore) scanAccount(row pgx.Row) (*Account, error) {
	account := &Account{}
	var lastActive *time.Time

	err := row.Scan(
		&account.UserID,
		&account.Username,
		&account.PasswordHash,
		&account.Name,
		&account.Role,
		&account.IsActive,
		&lastActive,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Account")
	}

	if lastActive != nil {
		account.LastActive = *lastActive
	}

	return account, nil
}

// # Listings

/*
List returns accounts ordered by role rank then display name ascending,
optionally excluding one role from the scope.

Parameters:
  - context: context.Context
  - excludeRole: sec.Role (empty excludes nothing)

Returns:
  - []Account: Ordered rows, hash omitted
  - error: Storage retrieval failures
*/
func (store *PostgresStore) List(context context.Context, excludeRole sec.Role) ([]Account, error) {
	queryCtx, cancel := opContext(context)
	defer cancel()

	where := ""
	args := []any{}
	if excludeRole != "" {
		where = fmt.Sprintf("WHERE %s != $1", schema.Users.Role)
		args = append(args, string(excludeRole))
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		%s
		ORDER BY %s ASC, COALESCE(%s, %s) ASC`,
		schema.Users.UserID, schema.Users.Username, schema.Users.Name,
		schema.Users.Role, schema.Users.IsActive, schema.Users.LastActive,
		schema.Users.Table,
		where,
		roleRankCase, schema.Users.Name, schema.Users.Username,
	)

	rows, err := store.pool.Query(queryCtx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "Account")
	}
	defer rows.Close()

	return store.collectAccounts(rows)
}

/*
ListByRole returns accounts holding exactly the role, ordered by display name.

Parameters:
  - context: context.Context
  - role: sec.Role

Returns:
  - []Account: Ordered rows, hash omitted
  - error: Storage retrieval failures
*/
func (store *PostgresStore) ListByRole(context context.Context, role sec.Role) ([]Account, error) {
	queryCtx, cancel := opContext(context)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY COALESCE(%s, %s) ASC`,
		schema.Users.UserID, schema.Users.Username, schema.Users.Name,
		schema.Users.Role, schema.Users.IsActive, schema.Users.LastActive,
		schema.Users.Table, schema.Users.Role,
		schema.Users.Name, schema.Users.Username,
	)

	rows, err := store.pool.Query(queryCtx, query, string(role))
	if err != nil {
		return nil, dberr.Wrap(err, "Account")
	}
	defer rows.Close()

	return store.collectAccounts(rows)
}

// collectAccounts drains a listing result set into hash-free records.
func (store *PostgresStore) collectAccounts(rows pgx.Rows) ([]Account, error) {
	var accounts []Account
	for rows.Next() {
		var account Account
		var lastActive *time.Time
		if err := rows.Scan(
			&account.UserID,
			&account.Username,
			&account.Name,
			&account.Role,
			&account.IsActive,
			&lastActive,
		); err != nil {
			return nil, dberr.Wrap(err, "Account")
		}
		if lastActive != nil {
			account.LastActive = *lastActive
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Account")
	}

	return accounts, nil
}

// # Guarded Mutations

/*
Update rewrites the mutable identity fields of one non-protected row.

Description: A single UPDATE whose WHERE clause both matches the user_id and
refuses role = 'super_admin'. Zero rows affected means the target is either
absent or protected; a follow-up read decides which error to report.

Parameters:
  - context: context.Context
  - userID, username, name: strings
  - role: sec.Role
  - newHash: string (empty preserves the stored hash)

Returns:
  - error: Forbidden, NotFound, Conflict, Invalid, or storage failures
*/
func (store *PostgresStore) Update(context context.Context, userID, username, name string, role sec.Role, newHash string) error {
	queryCtx, cancel := opContext(context)
	defer cancel()

	var query string
	var args []any

	if newHash != "" {
		query = fmt.Sprintf(`
			UPDATE %s
			SET %s = $2, %s = $3, %s = $4, %s = $5
			WHERE %s = $1 AND %s != $6`,
			schema.Users.Table,
			schema.Users.Username, schema.Users.Name, schema.Users.Role, schema.Users.PasswordHash,
			schema.Users.UserID, schema.Users.Role,
		)
		args = []any{userID, username, name, string(role), newHash, string(sec.RoleSuperAdmin)}
	} else {
		query = fmt.Sprintf(`
			UPDATE %s
			SET %s = $2, %s = $3, %s = $4
			WHERE %s = $1 AND %s != $5`,
			schema.Users.Table,
			schema.Users.Username, schema.Users.Name, schema.Users.Role,
			schema.Users.UserID, schema.Users.Role,
		)
		args = []any{userID, username, name, string(role), string(sec.RoleSuperAdmin)}
	}

	tag, err := store.pool.Exec(queryCtx, query, args...)
	if err != nil {
		return dberr.Wrap(err, "Account")
	}

	if tag.RowsAffected() == 0 {
		return store.classifyBlockedMutation(context, userID)
	}

	return nil
}

/*
Delete removes one non-protected row.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Forbidden if the target is the super-admin, NotFound if absent
*/
func (store *PostgresStore) Delete(context context.Context, userID string) error {
	queryCtx, cancel := opContext(context)
	defer cancel()

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s != $2`,
		schema.Users.Table, schema.Users.UserID, schema.Users.Role)

	tag, err := store.pool.Exec(queryCtx, query, userID, string(sec.RoleSuperAdmin))
	if err != nil {
		return dberr.Wrap(err, "Account")
	}

	if tag.RowsAffected() == 0 {
		return store.classifyBlockedMutation(context, userID)
	}

	return nil
}

// classifyBlockedMutation decides why a guarded mutation touched no rows:
// Forbidden when the target exists and is the protected super-admin row,
// NotFound when it does not exist at all.
func (store *PostgresStore) classifyBlockedMutation(context context.Context, userID string) error {
	existing, err := store.FindByID(context, userID)
	if err != nil {
		return err
	}
	if existing.Role == sec.RoleSuperAdmin {
		return ErrSuperAdminProtected
	}
	// The row reappeared between the two statements; report as absent since
	// the mutation itself changed nothing.
	return ErrAccountNotFound
}

// # Session State

/*
SetSessionState flips is_active and stamps last_active to now.

Parameters:
  - context: context.Context
  - userID: string
  - active: bool

Returns:
  - error: NotFound if the row is absent, storage failures otherwise
*/
func (store *PostgresStore) SetSessionState(context context.Context, userID string, active bool) error {
	queryCtx, cancel := opContext(context)
	defer cancel()

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = NOW()
		WHERE %s = $1`,
		schema.Users.Table,
		schema.Users.IsActive, schema.Users.LastActive,
		schema.Users.UserID,
	)

	tag, err := store.pool.Exec(queryCtx, query, userID, active)
	if err != nil {
		return dberr.Wrap(err, "Account")
	}

	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}

	return nil
}
