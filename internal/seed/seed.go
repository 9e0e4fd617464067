package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/unpuzzleclub/backend/internal/app/models"
	appRepos "github.com/unpuzzleclub/backend/internal/app/repositories"
	"github.com/unpuzzleclub/backend/internal/config"
	"github.com/unpuzzleclub/backend/internal/pkg/apperrors"
	pkgAuth "github.com/unpuzzleclub/backend/internal/pkg/auth"
)

var defaultSkills = []appModels.Skill{
	{Name: "Chess"},
	{Name: "Robotics"},
	{Name: "Painting"},
	{Name: "Classical Dance"},
	{Name: "Guitar"},
}

var defaultLocations = []appModels.Location{
	{Name: "Koramangala", City: "Bengaluru", State: "Karnataka"},
	{Name: "Indiranagar", City: "Bengaluru", State: "Karnataka"},
	{Name: "Powai", City: "Mumbai", State: "Maharashtra"},
	{Name: "Gachibowli", City: "Hyderabad", State: "Telangana"},
}

// CreateDefaultData seeds the skill and location directories and makes sure
// every configured admin email is backed by a super admin account, so the
// admin console is reachable on a fresh database.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	skillRepo := appRepos.NewSkillRepository(dbPool)
	locationRepo := appRepos.NewLocationRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)
	adminRepo := appRepos.NewAdminRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (skills/locations/admins)...")
	var finalErr error

	for i := range defaultSkills {
		skill := defaultSkills[i]
		if _, err := skillRepo.CreateSkill(ctx, &skill); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				continue
			}
			lgr.Error().Err(err).Str("skill", skill.Name).Msg("Error creating default skill")
			finalErr = errors.Join(finalErr, err)
		}
	}

	for i := range defaultLocations {
		location := defaultLocations[i]
		if _, err := locationRepo.CreateLocation(ctx, &location); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				continue
			}
			lgr.Error().Err(err).Str("location", location.Name).Msg("Error creating default location")
			finalErr = errors.Join(finalErr, err)
		}
	}

	for _, email := range cfg.Auth.AdminEmails {
		if err := ensureSuperAdmin(ctx, userRepo, adminRepo, cfg, lgr, email); err != nil {
			lgr.Error().Err(err).Str("email", email).Msg("Error seeding admin account")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}

// ensureSuperAdmin creates the user and admins row for a configured admin
// email if either is missing. Existing users keep their chosen role; the
// admins row alone carries the privilege.
func ensureSuperAdmin(
	ctx context.Context,
	userRepo *appRepos.UserRepository,
	adminRepo *appRepos.AdminRepository,
	cfg *config.Config,
	lgr zerolog.Logger,
	email string,
) error {
	user, err := userRepo.GetUserByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		role := appModels.RoleSuperAdmin
		newUser := &appModels.User{
			Email:    email,
			Role:     &role,
			IsActive: true,
		}
		if cfg.Auth.SeedAdminPassword != "" {
			hash, hashErr := pkgAuth.HashPassword(cfg.Auth.SeedAdminPassword)
			if hashErr != nil {
				return hashErr
			}
			newUser.Password = &hash
		}
		userID, createErr := userRepo.CreateUser(ctx, newUser)
		if createErr != nil {
			return createErr
		}
		newUser.ID = userID
		user = newUser
		lgr.Info().Str("email", email).Msg("Seeded bootstrap admin user")
	} else if err != nil {
		return err
	}

	if _, err := adminRepo.CreateAdmin(ctx, user.ID, user.ID); err != nil {
		if errors.Is(err, apperrors.ErrAdminAlreadyExists) {
			return nil
		}
		return err
	}
	return nil
}
