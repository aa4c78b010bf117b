// StaffSphere Core - HR Management Backend
//
// This is the main entry point for the StaffSphere Core application.
// StaffSphere is the backend for an HR dashboard covering:
//   - Staff registration and role management (employee, hr, admin)
//   - Employee verification and salary administration
//   - Work log tracking
//   - Token issuance for the dashboard's authenticated calls
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/staffsphere/staffsphere-core/migrations"

	"github.com/staffsphere/staffsphere-core/internal/api"
	"github.com/staffsphere/staffsphere-core/internal/audit"
	"github.com/staffsphere/staffsphere-core/internal/infrastructure/config"
	"github.com/staffsphere/staffsphere-core/internal/infrastructure/database"
	"github.com/staffsphere/staffsphere-core/internal/infrastructure/logging"
	"github.com/staffsphere/staffsphere-core/internal/staff"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting StaffSphere Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Initialise repositories
	userRepo := staff.NewUserRepository(db.DB)
	taskRepo := staff.NewTaskRepository(db.DB)
	auditRepo := audit.NewSQLiteRepository(db.DB)

	// Seed the bootstrap admin so the first operator can log in
	seeded, err := staff.SeedAdmin(ctx, userRepo, cfg.Security.BootstrapAdminEmail, log.Logger)
	if err != nil {
		return fmt.Errorf("seeding admin account: %w", err)
	}
	if seeded {
		log.Info("bootstrap admin seeded", "email", cfg.Security.BootstrapAdminEmail)
	}

	// Start API server
	server, err := api.New(api.Deps{
		Config:   cfg.API,
		Security: cfg.Security,
		Logger:   log,
		Users:    userRepo,
		Tasks:    taskRepo,
		Audit:    auditRepo,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started", "host", cfg.API.Host, "port", cfg.API.Port)

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	log.Info("StaffSphere Core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses STAFFSPHERE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("STAFFSPHERE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
