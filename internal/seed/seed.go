package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eakyurek/gradehub/internal/app/models"
	"github.com/eakyurek/gradehub/internal/app/repositories"
	"github.com/eakyurek/gradehub/internal/config"
	"github.com/eakyurek/gradehub/internal/pkg/apperrors"
	"github.com/eakyurek/gradehub/internal/pkg/auth"
	"github.com/eakyurek/gradehub/internal/pkg/logger"
)

// CreateDefaultAdmin ensures an admin account exists. Admin accounts cannot
// be self-registered, so a fresh install gets one from configuration.
func CreateDefaultAdmin(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config) error {
	if cfg.Admin.Password == "" {
		logger.Warn().Msg("Admin password not configured, skipping admin seed")
		return nil
	}

	userRepo := repositories.NewUserRepository(dbPool)

	hashed, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:     cfg.Admin.Email,
		Password:  hashed,
		FirstName: "System",
		LastName:  "Admin",
		RoleType:  models.RoleAdmin,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			logger.Debug().Str("email", cfg.Admin.Email).Msg("Admin account already exists")
			return nil
		}
		return err
	}

	logger.Info().Str("email", cfg.Admin.Email).Msg("Default admin account created")
	return nil
}
