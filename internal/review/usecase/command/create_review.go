package command

import (
	"fmt"
	"time"

	"github.com/polybites/polybites-backend/internal/review/domain"
)

// CreateReviewCommand represents the command to create a food review
type CreateReviewCommand struct {
	UserID uint
	FoodID uint
	Rating int
	Text   string
}

// CreateReviewHandler handles review creation
type CreateReviewHandler struct {
	repo domain.ReviewRepository
}

// NewCreateReviewHandler creates a new create review handler
func NewCreateReviewHandler(repo domain.ReviewRepository) *CreateReviewHandler {
	return &CreateReviewHandler{repo: repo}
}

// Handle executes the create review command. The target food must exist and
// the rating must be in 1..5; both checks were absent upstream of this
// service historically, so they are enforced here.
func (h *CreateReviewHandler) Handle(cmd CreateReviewCommand) (*domain.FoodReview, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrInvalidArgument)
	}
	if cmd.FoodID == 0 {
		return nil, fmt.Errorf("%w: food_id is required", domain.ErrInvalidArgument)
	}
	if cmd.Rating < 1 || cmd.Rating > 5 {
		return nil, domain.ErrInvalidRating
	}

	exists, err := h.repo.FoodExists(cmd.FoodID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate food: %w", err)
	}
	if !exists {
		return nil, domain.ErrFoodNotFound
	}

	review := &domain.FoodReview{
		UserID:    cmd.UserID,
		FoodID:    cmd.FoodID,
		Rating:    cmd.Rating,
		Text:      cmd.Text,
		CreatedAt: time.Now(),
	}

	if err := h.repo.Create(review); err != nil {
		return nil, err
	}

	return review, nil
}
