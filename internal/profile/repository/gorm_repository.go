package repository

import (
	"errors"
	"fmt"

	"github.com/polybites/polybites-backend/internal/profile/domain"
	"gorm.io/gorm"
)

// GormProfileRepository implements ProfileRepository using GORM
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GORM profile repository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// Create inserts a new profile. The unique index on auth_id turns a second
// profile for the same identity into ErrProfileExists.
func (r *GormProfileRepository) Create(profile *domain.Profile) error {
	if err := r.db.Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrProfileExists
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// FindByID retrieves a profile by ID
func (r *GormProfileRepository) FindByID(id uint) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return &profile, nil
}

// FindByAuthID retrieves a profile by the identity provider's subject
func (r *GormProfileRepository) FindByAuthID(authID string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.Where("auth_id = ?", authID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return &profile, nil
}

// FindAll retrieves every profile
func (r *GormProfileRepository) FindAll() ([]domain.Profile, error) {
	var profiles []domain.Profile
	if err := r.db.Order("id ASC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// AutoMigrate runs database migrations for the profiles table
func (r *GormProfileRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Profile{})
}
