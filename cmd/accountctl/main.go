// Copyright (c) 2026 Offline-LAN Project. All rights reserved.
// Author: krazywes.dev@gmail.com

// Command accountctl is the operator front end to the account authority.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Run database migrations (idempotent).
//  5. Wire the account store, session tracker, and authority service.
//  6. Dispatch exactly one authority operation per invocation.
//
// No business logic lives here. All wiring is explicit constructor injection.
//
// # Usage
//
//	accountctl status
//	accountctl bootstrap --username boss --password secret --name "The Boss"
//	accountctl create --username alice --password pw123 --role cashier --name "Alice A"
//	accountctl list [--cashiers]
//	accountctl verify --username alice --password pw123
//	accountctl update --id <uuid> --username alice --name "Alice A" --role cashier [--password newpw]
//	accountctl logout --id <uuid>
//	accountctl delete --id <uuid>
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/KrazyWes/Offline-LAN-Project/internal/accounts"
	"github.com/KrazyWes/Offline-LAN-Project/internal/platform/apperr"
	"github.com/KrazyWes/Offline-LAN-Project/internal/platform/config"
	"github.com/KrazyWes/Offline-LAN-Project/internal/platform/constants"
	"github.com/KrazyWes/Offline-LAN-Project/internal/platform/migration"
	pgstore "github.com/KrazyWes/Offline-LAN-Project/internal/platform/postgres"
)

var rootCmd = &cobra.Command{
	Use:     "accountctl",
	Short:   "accountctl manages the accounts of one Offline-LAN installation",
	Long:    "accountctl manages the accounts of one Offline-LAN installation",
	Version: constants.AppVersion,

	// The authority reports errors with display-safe messages; render those
	// ourselves instead of cobra's default "Error: ..." plus usage dump.
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE:  connect,
	PersistentPostRunE: disconnect,
}

// Shared wiring, built once per invocation in connect.
var (
	log       *slog.Logger
	pool      *pgxpool.Pool
	authority *accounts.Service
)

// Flag storage for the subcommands.
var (
	flagUsername string
	flagPassword string
	flagName     string
	flagRole     string
	flagID       string
	flagCashiers bool
)

// connect performs the full startup sequence before any subcommand runs.
func connect(cmd *cobra.Command, args []string) error {

	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	// Logs go to stderr; stdout is reserved for command output.
	log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})).With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if cfg.Debug {
		log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})).With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	// Bounded startup so misconfiguration fails fast instead of hanging.
	startupCtx, cancel := context.WithTimeout(cmd.Context(), constants.StartupTimeout)
	defer cancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err = pgstore.NewPool(startupCtx, cfg.DatabaseURL(), log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}

	// ── 4. Migrations ─────────────────────────────────────────────────────
	if err := migration.RunUp(cfg.DatabaseURL(), cfg.MigrationPath, log); err != nil {
		pool.Close()
		return fmt.Errorf("run migrations: %w", err)
	}

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	store := accounts.NewPostgresStore(pool)
	tracker := accounts.NewSessionTracker(store, log)
	authority = accounts.NewService(store, tracker, log)

	return nil
}

func disconnect(cmd *cobra.Command, args []string) error {
	if pool != nil {
		pool.Close()
	}
	return nil
}

// # Subcommands

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether super-admin bootstrap is still needed",
	RunE: func(cmd *cobra.Command, args []string) error {
		needed, err := authority.BootstrapNeeded(cmd.Context())
		if err != nil {
			return err
		}
		if needed {
			fmt.Println("bootstrap needed: no super admin exists yet")
		} else {
			fmt.Println("bootstrap complete: super admin present")
		}
		return nil
	},
}

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create the one-time super admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := authority.CreateSuperAdmin(cmd.Context(), flagName, flagUsername, flagPassword); err != nil {
			return err
		}
		fmt.Println("super admin created")
		return nil
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a manageable account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := authority.CreateAccount(cmd.Context(), flagUsername, flagPassword, flagRole, flagName); err != nil {
			return err
		}
		fmt.Println("account created:", flagUsername)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List manageable accounts (or only cashiers)",
	RunE: func(cmd *cobra.Command, args []string) error {
		var views []accounts.View
		var err error
		if flagCashiers {
			views, err = authority.ListCashiers(cmd.Context())
		} else {
			views, err = authority.ListManageable(cmd.Context())
		}
		if err != nil {
			return err
		}
		printViews(views)
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check credentials and mark the account online",
	RunE: func(cmd *cobra.Command, args []string) error {
		principal, err := authority.Authenticate(cmd.Context(), flagUsername, flagPassword)
		if err != nil {
			return err
		}
		if principal == nil {
			fmt.Println("login rejected")
			os.Exit(1)
		}
		if err := authority.Tracker().OnLoginSuccess(cmd.Context(), principal.UserID); err != nil {
			return err
		}
		fmt.Printf("login ok: user_id=%s role=%s\n", principal.UserID, principal.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Mark the account offline",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := authority.Tracker().OnLogout(cmd.Context(), flagID); err != nil {
			return err
		}
		fmt.Println("logged out:", flagID)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Rewrite username, name, and role (optionally password)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := authority.UpdateAccount(cmd.Context(), flagID, flagUsername, flagName, flagRole, flagPassword); err != nil {
			return err
		}
		fmt.Println("account updated:", flagID)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a manageable account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := authority.DeleteAccount(cmd.Context(), flagID); err != nil {
			return err
		}
		fmt.Println("account deleted:", flagID)
		return nil
	},
}

// printViews renders account rows as an aligned table.
func printViews(views []accounts.View) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "USER_ID\tUSERNAME\tNAME\tROLE\tONLINE\tLAST_ACTIVE")
	for _, view := range views {
		lastActive := "-"
		if !view.LastActive.IsZero() {
			lastActive = view.LastActive.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\t%s\n",
			view.UserID, view.Username, view.Name, view.RoleLabel, view.IsActive, lastActive)
	}
	_ = w.Flush()
}

func main() {
	bootstrapCmd.Flags().StringVarP(&flagUsername, "username", "u", "", "super admin username")
	bootstrapCmd.Flags().StringVarP(&flagPassword, "password", "p", "", "super admin password")
	bootstrapCmd.Flags().StringVarP(&flagName, "name", "n", "", "display name (defaults to username)")

	createCmd.Flags().StringVarP(&flagUsername, "username", "u", "", "account username")
	createCmd.Flags().StringVarP(&flagPassword, "password", "p", "", "account password")
	createCmd.Flags().StringVarP(&flagRole, "role", "r", "cashier", "account role")
	createCmd.Flags().StringVarP(&flagName, "name", "n", "", "display name (defaults to username)")

	listCmd.Flags().BoolVar(&flagCashiers, "cashiers", false, "list only cashier accounts")

	verifyCmd.Flags().StringVarP(&flagUsername, "username", "u", "", "account username")
	verifyCmd.Flags().StringVarP(&flagPassword, "password", "p", "", "account password")

	logoutCmd.Flags().StringVar(&flagID, "id", "", "account user_id")

	updateCmd.Flags().StringVar(&flagID, "id", "", "account user_id")
	updateCmd.Flags().StringVarP(&flagUsername, "username", "u", "", "account username")
	updateCmd.Flags().StringVarP(&flagName, "name", "n", "", "display name")
	updateCmd.Flags().StringVarP(&flagRole, "role", "r", "", "account role")
	updateCmd.Flags().StringVarP(&flagPassword, "password", "p", "", "new password (empty keeps the current one)")

	deleteCmd.Flags().StringVar(&flagID, "id", "", "account user_id")

	rootCmd.AddCommand(
		statusCmd,
		bootstrapCmd,
		createCmd,
		listCmd,
		verifyCmd,
		logoutCmd,
		updateCmd,
		deleteCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		// Authority failures carry a display-safe message; startup failures
		// print as-is since nothing secret crosses this boundary.
		msg := err.Error()
		if apperr.As(err) != nil {
			msg = apperr.DisplayMessage(err)
		}
		fmt.Fprintln(os.Stderr, "error:", msg)
		if log != nil {
			log.Error("command_failed", slog.Any("error", err))
		}
		os.Exit(1)
	}
}
