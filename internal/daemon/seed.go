package daemon

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/irislab/irismapper-admin/internal/config"
	"github.com/irislab/irismapper-admin/internal/db/models"
	"github.com/irislab/irismapper-admin/internal/identity"
	"github.com/irislab/irismapper-admin/internal/profile"
)

// seed creates the bootstrap admin account when it does not exist yet.
// Without it a fresh install has no way into the admin panel.
func seed(cfg *config.Config, gateway identity.Gateway, profiles profile.Store) {
	ctx := context.Background()

	if _, err := profiles.FindAdminByEmail(ctx, cfg.Bootstrap.AdminEmail); err == nil {
		return
	} else if !errors.Is(err, profile.ErrNotFound) {
		log.Error().Err(err).Msg("bootstrap admin lookup failed")
		return
	}

	sess, err := gateway.SignUp(ctx, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword)
	if err != nil {
		if errors.Is(err, identity.ErrEmailAlreadyInUse) {
			log.Warn().Str("email", cfg.Bootstrap.AdminEmail).
				Msg("bootstrap admin account exists without admin profile, skipping seed")
			return
		}

		log.Fatal().Err(err).Msg("failed to create bootstrap admin account")
		return
	}

	now := time.Now().UTC()

	err = profiles.Set(ctx, &models.Profile{
		UID:          sess.UID,
		Name:         cfg.Bootstrap.AdminName,
		Email:        cfg.Bootstrap.AdminEmail,
		Status:       models.StatusActive,
		IsAdmin:      true,
		CreatedAt:    now,
		LastModified: now,
		ModifiedBy:   "system",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to write bootstrap admin profile")
		return
	}

	log.Info().Str("email", cfg.Bootstrap.AdminEmail).Msg("bootstrap admin account created")
}
