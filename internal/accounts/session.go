// Copyright (c) 2026 Offline-LAN Project. All rights reserved.
// Author: krazywes.dev@gmail.com

package accounts

import (
	"context"
	"fmt"
	"log/slog"
)

// # Session Tracking

// SessionTracker records best-effort online/offline state on the account row.
//
// It is advisory bookkeeping only: is_active is not a concurrency lock and
// does not prevent a second session for the same account. A client that
// crashes without logging out stays marked active indefinitely; there is no
// heartbeat or expiry.
type SessionTracker struct {
	store  Store
	logger *slog.Logger
}

// NewSessionTracker constructs a tracker over the given store.
func NewSessionTracker(store Store, logger *slog.Logger) *SessionTracker {
	return &SessionTracker{store: store, logger: logger}
}

/*
OnLoginSuccess marks the account active and stamps last_active.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: NotFound or storage failures
*/
func (tracker *SessionTracker) OnLoginSuccess(context context.Context, userID string) error {
	if err := tracker.store.SetSessionState(context, userID, true); err != nil {
		return fmt.Errorf("session_tracker_login_mark_failed: %w", err)
	}

	tracker.logger.Info("session_marked_active", slog.String("user_id", userID))

	return nil
}

/*
OnLogout marks the account inactive and stamps last_active.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: NotFound or storage failures
*/
func (tracker *SessionTracker) OnLogout(context context.Context, userID string) error {
	if err := tracker.store.SetSessionState(context, userID, false); err != nil {
		return fmt.Errorf("session_tracker_logout_mark_failed: %w", err)
	}

	tracker.logger.Info("session_marked_inactive", slog.String("user_id", userID))

	return nil
}
