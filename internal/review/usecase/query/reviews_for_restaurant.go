package query

import (
	"github.com/polybites/polybites-backend/internal/review/domain"
)

// ReviewsForRestaurantQuery represents the query to list reviews across a
// restaurant's whole menu
type ReviewsForRestaurantQuery struct {
	RestaurantID uint
}

// ReviewsForRestaurantHandler handles the reviews-for-restaurant query
type ReviewsForRestaurantHandler struct {
	repo domain.ReviewRepository
}

// NewReviewsForRestaurantHandler creates a new reviews-for-restaurant handler
func NewReviewsForRestaurantHandler(repo domain.ReviewRepository) *ReviewsForRestaurantHandler {
	return &ReviewsForRestaurantHandler{repo: repo}
}

// Handle executes the query; each review carries the name of the food it targets
func (h *ReviewsForRestaurantHandler) Handle(query ReviewsForRestaurantQuery) ([]domain.ReviewWithFood, error) {
	return h.repo.FindByRestaurant(query.RestaurantID)
}
