package command

import (
	"fmt"
	"time"

	"github.com/polybites/polybites-backend/internal/profile/domain"
)

// CreateProfileCommand represents the command to create a profile
type CreateProfileCommand struct {
	Name   string
	AuthID string
}

// CreateProfileHandler handles profile creation
type CreateProfileHandler struct {
	repo domain.ProfileRepository
}

// NewCreateProfileHandler creates a new create profile handler
func NewCreateProfileHandler(repo domain.ProfileRepository) *CreateProfileHandler {
	return &CreateProfileHandler{repo: repo}
}

// Handle executes the create profile command
func (h *CreateProfileHandler) Handle(cmd CreateProfileCommand) (*domain.Profile, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.AuthID == "" {
		return nil, fmt.Errorf("auth_id is required")
	}

	profile := &domain.Profile{
		Name:      cmd.Name,
		AuthID:    cmd.AuthID,
		CreatedAt: time.Now(),
	}

	if err := h.repo.Create(profile); err != nil {
		return nil, err
	}

	return profile, nil
}
