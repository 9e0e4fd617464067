package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	AdminRepository        *AdminRepository
	LocationRepository     *LocationRepository
	SkillRepository        *SkillRepository
	AcademyRepository      *AcademyRepository
	AcademySkillRepository *AcademySkillRepository
	PhotoRepository        *PhotoRepository
	BatchRepository        *BatchRepository
	DashboardRepository    *DashboardRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		TokenRepository:        NewTokenRepository(db),
		AdminRepository:        NewAdminRepository(db),
		LocationRepository:     NewLocationRepository(db),
		SkillRepository:        NewSkillRepository(db),
		AcademyRepository:      NewAcademyRepository(db),
		AcademySkillRepository: NewAcademySkillRepository(db),
		PhotoRepository:        NewPhotoRepository(db),
		BatchRepository:        NewBatchRepository(db),
		DashboardRepository:    NewDashboardRepository(db),
	}
}
