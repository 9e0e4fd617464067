package services

import (
	"github.com/unpuzzleclub/backend/internal/app/repositories"
	"github.com/unpuzzleclub/backend/internal/config"
	"github.com/unpuzzleclub/backend/internal/pkg/auth"
	"github.com/unpuzzleclub/backend/internal/pkg/filestorage"
)

// Services holds all the service instances
type Services struct {
	AuthService      AuthService
	DirectoryService DirectoryService
	AcademyService   AcademyService
	PhotoService     PhotoService
	ApprovalService  ApprovalService
	AdminService     AdminService
	DashboardService DashboardService
}

// NewServices wires all services onto the repositories and shared infrastructure
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	googleVerifier *auth.GoogleVerifier,
	storage filestorage.ObjectStorage,
	cfg *config.Config,
) *Services {
	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			repos.AdminRepository,
			repos.TokenRepository,
			googleVerifier,
			jwtService,
			cfg,
		),
		DirectoryService: NewDirectoryService(
			repos.LocationRepository,
			repos.SkillRepository,
		),
		AcademyService: NewAcademyService(
			repos.AcademyRepository,
			repos.AcademySkillRepository,
			repos.PhotoRepository,
			storage,
		),
		PhotoService: NewPhotoService(
			repos.PhotoRepository,
			repos.AcademyRepository,
			storage,
		),
		ApprovalService: NewApprovalService(
			repos.AcademySkillRepository,
		),
		AdminService: NewAdminService(
			repos.AdminRepository,
			repos.UserRepository,
		),
		DashboardService: NewDashboardService(
			repos.DashboardRepository,
			repos.BatchRepository,
			repos.AcademyRepository,
		),
	}
}
