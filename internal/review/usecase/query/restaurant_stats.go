package query

import (
	"github.com/polybites/polybites-backend/internal/review/domain"
)

// RestaurantStatsQuery represents the query for per-restaurant review aggregates
type RestaurantStatsQuery struct{}

// RestaurantStatsHandler handles the restaurant stats query
type RestaurantStatsHandler struct {
	repo domain.ReviewRepository
}

// NewRestaurantStatsHandler creates a new restaurant stats handler
func NewRestaurantStatsHandler(repo domain.ReviewRepository) *RestaurantStatsHandler {
	return &RestaurantStatsHandler{repo: repo}
}

// Handle executes the restaurant stats query; most-reviewed restaurants come
// first, and restaurants with no foods or no reviews still appear with zeros.
func (h *RestaurantStatsHandler) Handle(query RestaurantStatsQuery) ([]domain.RestaurantReviewStats, error) {
	return h.repo.RestaurantReviewStats()
}
