package query

import (
	"github.com/polybites/polybites-backend/internal/review/domain"
)

// ListReviewsQuery represents the query to list every review
type ListReviewsQuery struct{}

// ListReviewsHandler handles the list reviews query
type ListReviewsHandler struct {
	repo domain.ReviewRepository
}

// NewListReviewsHandler creates a new list reviews handler
func NewListReviewsHandler(repo domain.ReviewRepository) *ListReviewsHandler {
	return &ListReviewsHandler{repo: repo}
}

// Handle executes the list reviews query
func (h *ListReviewsHandler) Handle(query ListReviewsQuery) ([]domain.FoodReview, error) {
	return h.repo.FindAll()
}
