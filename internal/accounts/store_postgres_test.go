//go:build integration

// Copyright (c) 2026 Offline-LAN Project. All rights reserved.
// Author: krazywes.dev@gmail.com

// Integration tests for the Postgres store using a real database via
// testcontainers. Run with: go test -tags integration ./internal/accounts/... -v

package accounts_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/KrazyWes/Offline-LAN-Project/internal/accounts"
	"github.com/KrazyWes/Offline-LAN-Project/internal/platform/apperr"
	"github.com/KrazyWes/Offline-LAN-Project/internal/platform/migration"
	"github.com/KrazyWes/Offline-LAN-Project/internal/platform/postgres"
	"github.com/KrazyWes/Offline-LAN-Project/internal/platform/sec"
	"github.com/KrazyWes/Offline-LAN-Project/pkg/uuid"
)

// ── Test Suite Setup ─────────────────────────────────────────────────────────

func setupPostgresStore(t *testing.T) *accounts.PostgresStore {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tcPostgres.WithDatabase("offline_lan_test"),
		tcPostgres.WithUsername("offline_lan"),
		tcPostgres.WithPassword("offline_lan"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, migration.RunUp(dsn, "../../data/migrations", logger))

	pool, err := postgres.NewPool(ctx, dsn, logger)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return accounts.NewPostgresStore(pool)
}

func newAccount(t *testing.T, username string, role sec.Role) *accounts.Account {
	t.Helper()
	hash, err := sec.HashPassword("pw123")
	require.NoError(t, err)
	return &accounts.Account{
		UserID:       uuid.New(),
		Username:     username,
		PasswordHash: hash,
		Name:         username,
		Role:         role,
	}
}

// ── Insert & Lookup ──────────────────────────────────────────────────────────

func TestPostgresStore_InsertAndFind(t *testing.T) {
	store := setupPostgresStore(t)
	ctx := context.Background()

	created := newAccount(t, "alice", sec.RoleCashier)
	require.NoError(t, store.Insert(ctx, created))

	byUsername, err := store.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.UserID, byUsername.UserID)
	assert.Equal(t, created.PasswordHash, byUsername.PasswordHash)
	assert.Equal(t, sec.RoleCashier, byUsername.Role)
	assert.False(t, byUsername.IsActive)
	assert.True(t, byUsername.LastActive.IsZero(), "fresh accounts have no last_active stamp")
	assert.False(t, byUsername.CreatedAt.IsZero())

	byID, err := store.FindByID(ctx, created.UserID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	_, err = store.FindByUsername(ctx, "ghost")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestPostgresStore_InsertDuplicateUsername(t *testing.T) {
	store := setupPostgresStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, newAccount(t, "alice", sec.RoleCashier)))

	err := store.Insert(ctx, newAccount(t, "alice", sec.RoleMonitor))
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestPostgresStore_RoleCheckConstraint(t *testing.T) {
	store := setupPostgresStore(t)

	err := store.Insert(context.Background(), newAccount(t, "alice", sec.Role("manager")))
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

// ── Scoped Queries ───────────────────────────────────────────────────────────

func TestPostgresStore_UsernameTakenScope(t *testing.T) {
	store := setupPostgresStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, newAccount(t, "boss", sec.RoleSuperAdmin)))
	require.NoError(t, store.Insert(ctx, newAccount(t, "alice", sec.RoleCashier)))

	taken, err := store.UsernameTaken(ctx, "alice", sec.RoleSuperAdmin)
	require.NoError(t, err)
	assert.True(t, taken)

	// The super-admin's own username sits outside the manageable scope.
	taken, err = store.UsernameTaken(ctx, "boss", sec.RoleSuperAdmin)
	require.NoError(t, err)
	assert.False(t, taken)

	// Unscoped check sees the whole table.
	taken, err = store.UsernameTaken(ctx, "boss", "")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestPostgresStore_ExistsByRole(t *testing.T) {
	store := setupPostgresStore(t)
	ctx := context.Background()

	exists, err := store.ExistsByRole(ctx, sec.RoleSuperAdmin)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Insert(ctx, newAccount(t, "boss", sec.RoleSuperAdmin)))

	exists, err = store.ExistsByRole(ctx, sec.RoleSuperAdmin)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPostgresStore_ListOrderingAndScope(t *testing.T) {
	store := setupPostgresStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, newAccount(t, "boss", sec.RoleSuperAdmin)))
	require.NoError(t, store.Insert(ctx, newAccount(t, "carol", sec.RoleCashier)))
	require.NoError(t, store.Insert(ctx, newAccount(t, "adam", sec.RoleAdministrator)))
	require.NoError(t, store.Insert(ctx, newAccount(t, "bella", sec.RoleCashier)))
	require.NoError(t, store.Insert(ctx, newAccount(t, "otto", sec.RoleOperatorA)))

	rows, err := store.List(ctx, sec.RoleSuperAdmin)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// Role rank (administrator, operator A, cashier), then display name.
	assert.Equal(t, "adam", rows[0].Username)
	assert.Equal(t, "otto", rows[1].Username)
	assert.Equal(t, "bella", rows[2].Username)
	assert.Equal(t, "carol", rows[3].Username)

	for _, row := range rows {
		assert.Empty(t, row.PasswordHash, "listings never expose the hash")
	}

	cashiers, err := store.ListByRole(ctx, sec.RoleCashier)
	require.NoError(t, err)
	require.Len(t, cashiers, 2)
	assert.Equal(t, "bella", cashiers[0].Username)
	assert.Equal(t, "carol", cashiers[1].Username)
}

// ── Guarded Mutations ────────────────────────────────────────────────────────

func TestPostgresStore_UpdateGuard(t *testing.T) {
	store := setupPostgresStore(t)
	ctx := context.Background()

	admin := newAccount(t, "boss", sec.RoleSuperAdmin)
	require.NoError(t, store.Insert(ctx, admin))
	regular := newAccount(t, "alice", sec.RoleCashier)
	require.NoError(t, store.Insert(ctx, regular))

	// The protected row is refused at the statement level.
	err := store.Update(ctx, admin.UserID, "renamed", "Renamed", sec.RoleCashier, "")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	unchanged, findErr := store.FindByID(ctx, admin.UserID)
	require.NoError(t, findErr)
	assert.Equal(t, "boss", unchanged.Username)
	assert.Equal(t, sec.RoleSuperAdmin, unchanged.Role)
	assert.Equal(t, admin.PasswordHash, unchanged.PasswordHash)

	// Absent rows classify as NotFound, not Forbidden.
	err = store.Update(ctx, uuid.New(), "ghost", "Ghost", sec.RoleCashier, "")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// A regular row updates normally; empty hash keeps the stored one.
	require.NoError(t, store.Update(ctx, regular.UserID, "alicia", "Alicia", sec.RoleMonitor, ""))
	updated, err := store.FindByID(ctx, regular.UserID)
	require.NoError(t, err)
	assert.Equal(t, "alicia", updated.Username)
	assert.Equal(t, sec.RoleMonitor, updated.Role)
	assert.Equal(t, regular.PasswordHash, updated.PasswordHash)
	assert.Equal(t, regular.CreatedAt.UTC().Truncate(time.Millisecond),
		updated.CreatedAt.UTC().Truncate(time.Millisecond))
}

func TestPostgresStore_UpdateReplacesHash(t *testing.T) {
	store := setupPostgresStore(t)
	ctx := context.Background()

	regular := newAccount(t, "alice", sec.RoleCashier)
	require.NoError(t, store.Insert(ctx, regular))

	newHash, err := sec.HashPassword("newpw")
	require.NoError(t, err)
	require.NoError(t, store.Update(ctx, regular.UserID, "alice", "Alice", sec.RoleCashier, newHash))

	updated, err := store.FindByID(ctx, regular.UserID)
	require.NoError(t, err)
	assert.Equal(t, newHash, updated.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("newpw", updated.PasswordHash))
}

func TestPostgresStore_DeleteGuard(t *testing.T) {
	store := setupPostgresStore(t)
	ctx := context.Background()

	admin := newAccount(t, "boss", sec.RoleSuperAdmin)
	require.NoError(t, store.Insert(ctx, admin))
	regular := newAccount(t, "alice", sec.RoleCashier)
	require.NoError(t, store.Insert(ctx, regular))

	err := store.Delete(ctx, admin.UserID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = store.FindByID(ctx, admin.UserID)
	require.NoError(t, err, "protected row must survive the delete attempt")

	require.NoError(t, store.Delete(ctx, regular.UserID))
	_, err = store.FindByID(ctx, regular.UserID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	err = store.Delete(ctx, regular.UserID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

// ── Session State ────────────────────────────────────────────────────────────

func TestPostgresStore_SetSessionState(t *testing.T) {
	store := setupPostgresStore(t)
	ctx := context.Background()

	regular := newAccount(t, "alice", sec.RoleCashier)
	require.NoError(t, store.Insert(ctx, regular))

	require.NoError(t, store.SetSessionState(ctx, regular.UserID, true))
	online, err := store.FindByID(ctx, regular.UserID)
	require.NoError(t, err)
	assert.True(t, online.IsActive)
	require.False(t, online.LastActive.IsZero())
	loginStamp := online.LastActive

	require.NoError(t, store.SetSessionState(ctx, regular.UserID, false))
	offline, err := store.FindByID(ctx, regular.UserID)
	require.NoError(t, err)
	assert.False(t, offline.IsActive)
	assert.False(t, offline.LastActive.Before(loginStamp))

	err = store.SetSessionState(ctx, uuid.New(), true)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
