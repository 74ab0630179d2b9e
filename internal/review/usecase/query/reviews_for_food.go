package query

import (
	"github.com/polybites/polybites-backend/internal/review/domain"
)

// ReviewsForFoodQuery represents the query to list reviews of one food item
type ReviewsForFoodQuery struct {
	FoodID uint
}

// ReviewsForFoodHandler handles the reviews-for-food query
type ReviewsForFoodHandler struct {
	repo domain.ReviewRepository
}

// NewReviewsForFoodHandler creates a new reviews-for-food handler
func NewReviewsForFoodHandler(repo domain.ReviewRepository) *ReviewsForFoodHandler {
	return &ReviewsForFoodHandler{repo: repo}
}

// Handle executes the reviews-for-food query, oldest review first
func (h *ReviewsForFoodHandler) Handle(query ReviewsForFoodQuery) ([]domain.FoodReview, error) {
	return h.repo.FindByFood(query.FoodID)
}

// ReviewsForFoodWithLikesQuery is the batch like-state variant: every review
// on the food with its like count and, when UserID is set, whether that user
// liked it.
type ReviewsForFoodWithLikesQuery struct {
	FoodID uint
	UserID uint
}

// ReviewsForFoodWithLikesHandler handles the with-likes variant
type ReviewsForFoodWithLikesHandler struct {
	repo domain.ReviewRepository
}

// NewReviewsForFoodWithLikesHandler creates a new with-likes handler
func NewReviewsForFoodWithLikesHandler(repo domain.ReviewRepository) *ReviewsForFoodWithLikesHandler {
	return &ReviewsForFoodWithLikesHandler{repo: repo}
}

// Handle executes the query through a single grouped join, one query for the
// whole food rather than one per review.
func (h *ReviewsForFoodWithLikesHandler) Handle(query ReviewsForFoodWithLikesQuery) ([]domain.ReviewWithLikes, error) {
	return h.repo.FindByFoodWithLikes(query.FoodID, query.UserID)
}
