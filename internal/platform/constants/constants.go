// Copyright (c) 2026 Offline-LAN Project. All rights reserved.
// Author: krazywes.dev@gmail.com

/*
Package constants provides centralized, immutable values for the authority.

It defines default timeouts and cross-cutting identifiers shared between
layers, keeping magic numbers out of the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "offline-lan"
	AppVersion = "0.1.0-dev"
)

// # Storage Timing

const (
	// StoreTimeout bounds every individual store call. Failures surface as
	// Unavailable rather than hanging the till on bad Wi-Fi.
	StoreTimeout = 5 * time.Second

	// StatementTimeout is applied per connection to stop runaway queries.
	StatementTimeout = 10 * time.Second

	// StartupTimeout caps the whole connect-and-migrate sequence so a
	// misconfigured installation fails fast.
	StartupTimeout = 30 * time.Second
)
