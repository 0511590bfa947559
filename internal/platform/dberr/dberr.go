// Copyright (c) 2026 Offline-LAN Project. All rights reserved.
// Author: krazywes.dev@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// Every pgx fault that crosses the store boundary passes through [Wrap], so
// nothing escapes to the caller as a raw driver error.
package dberr

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/KrazyWes/Offline-LAN-Project/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.Error].
// It hides internal database details from the caller while classifying the
// error kind; resource names the row type for NOT_FOUND messages.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Bounded timeouts surface as Unavailable, never as a hang.
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.Unavailable(err)
	}

	// 3. SQLSTATE classification
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.UniqueViolation:
			return apperr.Conflict("Username is already taken")
		case pgErr.Code == pgerrcode.CheckViolation,
			pgErr.Code == pgerrcode.InvalidTextRepresentation,
			pgErr.Code == pgerrcode.NotNullViolation,
			pgErr.Code == pgerrcode.ForeignKeyViolation:
			return apperr.Invalid("Invalid account data")
		case pgerrcode.IsConnectionException(pgErr.Code),
			pgErr.Code == pgerrcode.TooManyConnections,
			pgErr.Code == pgerrcode.QueryCanceled:
			return apperr.Unavailable(err)
		}
	}

	// 4. Failed dials never produce a PgError; pgconn reports them separately.
	if pgconn.Timeout(err) {
		return apperr.Unavailable(err)
	}

	// 5. Anything else is Unknown; the message passes through verbatim.
	return apperr.Unknown(err)
}
