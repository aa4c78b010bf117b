package staff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// SeedAdmin ensures an admin account exists on first boot. If no admin exists
// and adminEmail is configured, an existing account with that email is
// promoted, or a fresh one is created. Returns true if anything was changed.
//
// Without this there is no in-band way to mint the first admin: every
// promotion endpoint is itself admin-gated.
func SeedAdmin(ctx context.Context, repo UserRepository, adminEmail string, logger *slog.Logger) (bool, error) {
	if adminEmail == "" {
		return false, nil
	}

	count, err := repo.CountByRole(ctx, RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("checking admin count: %w", err)
	}
	if count > 0 {
		logger.Info("admin account exists, skipping bootstrap seed")
		return false, nil
	}

	existing, err := repo.GetByEmail(ctx, adminEmail)
	switch {
	case err == nil:
		if _, err := repo.UpdateRoleByEmail(ctx, adminEmail, RoleAdmin); err != nil {
			return false, fmt.Errorf("promoting bootstrap admin: %w", err)
		}
		logger.Warn("existing account promoted to admin",
			"email", adminEmail,
			"previous_role", string(existing.Role),
		)
		return true, nil

	case errors.Is(err, ErrUserNotFound):
		user := &User{
			Email: adminEmail,
			Name:  "Administrator",
			Role:  RoleAdmin,
		}
		if _, err := repo.Insert(ctx, user); err != nil {
			return false, fmt.Errorf("creating bootstrap admin: %w", err)
		}
		logger.Warn("bootstrap admin account created", "email", adminEmail)
		return true, nil

	default:
		return false, fmt.Errorf("looking up bootstrap admin: %w", err)
	}
}
