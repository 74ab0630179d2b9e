package query

import (
	"github.com/polybites/polybites-backend/internal/restaurant/domain"
)

// GetRestaurantQuery represents the query for a single restaurant
type GetRestaurantQuery struct {
	ID uint
}

// GetRestaurantHandler handles the get restaurant query
type GetRestaurantHandler struct {
	repo domain.RestaurantRepository
}

// NewGetRestaurantHandler creates a new get restaurant handler
func NewGetRestaurantHandler(repo domain.RestaurantRepository) *GetRestaurantHandler {
	return &GetRestaurantHandler{repo: repo}
}

// Handle executes the get restaurant query
func (h *GetRestaurantHandler) Handle(query GetRestaurantQuery) (*domain.Restaurant, error) {
	return h.repo.FindByID(query.ID)
}
