package domain

import (
	"errors"
	"time"
)

// Profile is the application-side record for an externally authenticated
// user. AuthID is the identity provider's subject and is unique per profile.
type Profile struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	AuthID    string    `json:"-" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Profile) TableName() string {
	return "profiles"
}

var (
	// ErrProfileNotFound is returned when no profile matches the lookup.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrProfileExists is returned when a profile already exists for the auth id.
	ErrProfileExists = errors.New("profile already exists for this user")
)

// ProfileRepository defines the contract for profile data access
type ProfileRepository interface {
	Create(profile *Profile) error
	FindByID(id uint) (*Profile, error)
	FindByAuthID(authID string) (*Profile, error)
	FindAll() ([]Profile, error)
}
