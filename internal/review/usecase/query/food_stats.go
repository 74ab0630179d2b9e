package query

import (
	"github.com/polybites/polybites-backend/internal/review/domain"
)

// FoodStatsQuery represents the query for one food's review aggregates
type FoodStatsQuery struct {
	FoodID uint
}

// FoodStatsHandler handles the food stats query
type FoodStatsHandler struct {
	repo domain.ReviewRepository
}

// NewFoodStatsHandler creates a new food stats handler
func NewFoodStatsHandler(repo domain.ReviewRepository) *FoodStatsHandler {
	return &FoodStatsHandler{repo: repo}
}

// Handle executes the food stats query. A food with no reviews reports
// {review_count: 0, average_rating: 0}.
func (h *FoodStatsHandler) Handle(query FoodStatsQuery) (*domain.FoodStats, error) {
	return h.repo.FoodStats(query.FoodID)
}
