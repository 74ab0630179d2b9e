package query

import (
	"github.com/polybites/polybites-backend/internal/profile/domain"
)

// GetProfileQuery represents the query for a profile by id
type GetProfileQuery struct {
	ID uint
}

// GetProfileHandler handles the get profile query
type GetProfileHandler struct {
	repo domain.ProfileRepository
}

// NewGetProfileHandler creates a new get profile handler
func NewGetProfileHandler(repo domain.ProfileRepository) *GetProfileHandler {
	return &GetProfileHandler{repo: repo}
}

// Handle executes the get profile query
func (h *GetProfileHandler) Handle(query GetProfileQuery) (*domain.Profile, error) {
	return h.repo.FindByID(query.ID)
}

// GetProfileByAuthQuery represents the query for a profile by auth subject
type GetProfileByAuthQuery struct {
	AuthID string
}

// GetProfileByAuthHandler handles the get-by-auth query
type GetProfileByAuthHandler struct {
	repo domain.ProfileRepository
}

// NewGetProfileByAuthHandler creates a new get-by-auth handler
func NewGetProfileByAuthHandler(repo domain.ProfileRepository) *GetProfileByAuthHandler {
	return &GetProfileByAuthHandler{repo: repo}
}

// Handle executes the get-by-auth query
func (h *GetProfileByAuthHandler) Handle(query GetProfileByAuthQuery) (*domain.Profile, error) {
	return h.repo.FindByAuthID(query.AuthID)
}

// ListProfilesQuery represents the query for every profile
type ListProfilesQuery struct{}

// ListProfilesHandler handles the list profiles query
type ListProfilesHandler struct {
	repo domain.ProfileRepository
}

// NewListProfilesHandler creates a new list profiles handler
func NewListProfilesHandler(repo domain.ProfileRepository) *ListProfilesHandler {
	return &ListProfilesHandler{repo: repo}
}

// Handle executes the list profiles query
func (h *ListProfilesHandler) Handle(query ListProfilesQuery) ([]domain.Profile, error) {
	return h.repo.FindAll()
}
