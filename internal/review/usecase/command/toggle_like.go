package command

import (
	"fmt"

	"github.com/polybites/polybites-backend/internal/review/domain"
)

// ToggleLikeCommand represents the command to flip a user's like state on a review
type ToggleLikeCommand struct {
	ReviewID uint
	UserID   uint
}

// ToggleLikeHandler handles like toggling
type ToggleLikeHandler struct {
	repo domain.ReviewRepository
}

// NewToggleLikeHandler creates a new toggle like handler
func NewToggleLikeHandler(repo domain.ReviewRepository) *ToggleLikeHandler {
	return &ToggleLikeHandler{repo: repo}
}

// Handle executes the toggle like command. This is check-then-act: two
// concurrent toggles by the same user can both read "absent", in which case
// the ledger's unique constraint makes exactly one insert fail with
// ErrAlreadyLiked rather than double-counting.
func (h *ToggleLikeHandler) Handle(cmd ToggleLikeCommand) (*LikeResult, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrInvalidArgument)
	}

	review, err := h.repo.FindByID(cmd.ReviewID)
	if err != nil {
		return nil, err
	}

	liked, err := h.repo.HasLiked(cmd.ReviewID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := h.repo.RemoveLike(cmd.ReviewID, cmd.UserID); err != nil {
			return nil, err
		}
	} else {
		if err := h.repo.AddLike(cmd.ReviewID, cmd.UserID); err != nil {
			return nil, err
		}
	}

	likes, err := h.repo.CountLikes(cmd.ReviewID)
	if err != nil {
		return nil, err
	}

	return &LikeResult{Liked: !liked, Likes: likes, FoodID: review.FoodID}, nil
}
