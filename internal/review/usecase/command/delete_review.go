package command

import (
	"fmt"

	"github.com/polybites/polybites-backend/internal/review/domain"
)

// DeleteReviewCommand represents the command to delete a review. UserID is
// the requesting user; only the author's delete succeeds.
type DeleteReviewCommand struct {
	ID     uint
	UserID uint
}

// DeleteReviewHandler handles review deletion
type DeleteReviewHandler struct {
	repo domain.ReviewRepository
}

// NewDeleteReviewHandler creates a new delete review handler
func NewDeleteReviewHandler(repo domain.ReviewRepository) *DeleteReviewHandler {
	return &DeleteReviewHandler{repo: repo}
}

// Handle executes the delete review command and returns the deleted
// review's food id for event consumers. The repository deletes likes and
// the review in one transaction; a missing review and a foreign owner both
// come back as ErrReviewNotFound. The ownership check lives in the
// conditional delete, so the preceding read only resolves the food id.
func (h *DeleteReviewHandler) Handle(cmd DeleteReviewCommand) (uint, error) {
	if cmd.UserID == 0 {
		return 0, fmt.Errorf("%w: user_id is required", domain.ErrInvalidArgument)
	}

	review, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return 0, err
	}

	if err := h.repo.DeleteOwned(cmd.ID, cmd.UserID); err != nil {
		return 0, err
	}
	return review.FoodID, nil
}
