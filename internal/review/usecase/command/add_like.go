package command

import (
	"fmt"

	"github.com/polybites/polybites-backend/internal/review/domain"
)

// LikeResult is the ledger state after a like mutation: whether the caller
// now likes the review, and the authoritative like count. FoodID identifies
// the reviewed food for event consumers and is not part of the response body.
type LikeResult struct {
	Liked  bool  `json:"liked"`
	Likes  int64 `json:"likes"`
	FoodID uint  `json:"-"`
}

// AddLikeCommand represents the command to like a review
type AddLikeCommand struct {
	ReviewID uint
	UserID   uint
}

// AddLikeHandler handles like creation
type AddLikeHandler struct {
	repo domain.ReviewRepository
}

// NewAddLikeHandler creates a new add like handler
func NewAddLikeHandler(repo domain.ReviewRepository) *AddLikeHandler {
	return &AddLikeHandler{repo: repo}
}

// Handle executes the add like command. A duplicate like fails with
// ErrAlreadyLiked and leaves the count untouched.
func (h *AddLikeHandler) Handle(cmd AddLikeCommand) (*LikeResult, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrInvalidArgument)
	}

	// Keeps likes from referencing missing reviews with a clean error
	// instead of a foreign-key failure.
	review, err := h.repo.FindByID(cmd.ReviewID)
	if err != nil {
		return nil, err
	}

	if err := h.repo.AddLike(cmd.ReviewID, cmd.UserID); err != nil {
		return nil, err
	}

	likes, err := h.repo.CountLikes(cmd.ReviewID)
	if err != nil {
		return nil, err
	}

	return &LikeResult{Liked: true, Likes: likes, FoodID: review.FoodID}, nil
}
