package query

import (
	"github.com/polybites/polybites-backend/internal/restaurant/domain"
)

// ListRestaurantsQuery represents the query for the restaurant listing with
// review aggregates and menu size
type ListRestaurantsQuery struct{}

// ListRestaurantsHandler handles the list restaurants query
type ListRestaurantsHandler struct {
	repo domain.RestaurantRepository
}

// NewListRestaurantsHandler creates a new list restaurants handler
func NewListRestaurantsHandler(repo domain.RestaurantRepository) *ListRestaurantsHandler {
	return &ListRestaurantsHandler{repo: repo}
}

// Handle executes the list restaurants query
func (h *ListRestaurantsHandler) Handle(query ListRestaurantsQuery) ([]domain.RestaurantWithStats, error) {
	return h.repo.FindAllWithStats()
}
