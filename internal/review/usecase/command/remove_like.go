package command

import (
	"fmt"

	"github.com/polybites/polybites-backend/internal/review/domain"
)

// RemoveLikeCommand represents the command to unlike a review
type RemoveLikeCommand struct {
	ReviewID uint
	UserID   uint
}

// RemoveLikeHandler handles like removal
type RemoveLikeHandler struct {
	repo domain.ReviewRepository
}

// NewRemoveLikeHandler creates a new remove like handler
func NewRemoveLikeHandler(repo domain.ReviewRepository) *RemoveLikeHandler {
	return &RemoveLikeHandler{repo: repo}
}

// Handle executes the remove like command. Removing a like that was never
// there is a no-op; the unchanged count is returned either way.
func (h *RemoveLikeHandler) Handle(cmd RemoveLikeCommand) (*LikeResult, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrInvalidArgument)
	}

	if err := h.repo.RemoveLike(cmd.ReviewID, cmd.UserID); err != nil {
		return nil, err
	}

	likes, err := h.repo.CountLikes(cmd.ReviewID)
	if err != nil {
		return nil, err
	}

	return &LikeResult{Liked: false, Likes: likes}, nil
}
