package query

import (
	"github.com/polybites/polybites-backend/internal/review/domain"
)

// GetReviewQuery represents the query to get a single review
type GetReviewQuery struct {
	ID uint
}

// GetReviewHandler handles the get review query
type GetReviewHandler struct {
	repo domain.ReviewRepository
}

// NewGetReviewHandler creates a new get review handler
func NewGetReviewHandler(repo domain.ReviewRepository) *GetReviewHandler {
	return &GetReviewHandler{repo: repo}
}

// Handle executes the get review query
func (h *GetReviewHandler) Handle(query GetReviewQuery) (*domain.FoodReview, error) {
	return h.repo.FindByID(query.ID)
}
