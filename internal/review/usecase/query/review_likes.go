package query

import (
	"github.com/polybites/polybites-backend/internal/review/domain"
)

// ReviewLikesQuery represents the query for a review's like state. UserID 0
// means no caller context; UserLiked is then always false.
type ReviewLikesQuery struct {
	ReviewID uint
	UserID   uint
}

// ReviewLikesHandler handles the review likes query
type ReviewLikesHandler struct {
	repo domain.ReviewRepository
}

// NewReviewLikesHandler creates a new review likes handler
func NewReviewLikesHandler(repo domain.ReviewRepository) *ReviewLikesHandler {
	return &ReviewLikesHandler{repo: repo}
}

// Handle executes the review likes query
func (h *ReviewLikesHandler) Handle(query ReviewLikesQuery) (*domain.LikeStatus, error) {
	if _, err := h.repo.FindByID(query.ReviewID); err != nil {
		return nil, err
	}

	likes, err := h.repo.CountLikes(query.ReviewID)
	if err != nil {
		return nil, err
	}

	status := &domain.LikeStatus{Likes: likes}
	if query.UserID != 0 {
		liked, err := h.repo.HasLiked(query.ReviewID, query.UserID)
		if err != nil {
			return nil, err
		}
		status.UserLiked = liked
	}

	return status, nil
}

// HasLikedQuery represents the existence check on one (user, review) pair
type HasLikedQuery struct {
	ReviewID uint
	UserID   uint
}

// HasLikedHandler handles the has-liked query
type HasLikedHandler struct {
	repo domain.ReviewRepository
}

// NewHasLikedHandler creates a new has-liked handler
func NewHasLikedHandler(repo domain.ReviewRepository) *HasLikedHandler {
	return &HasLikedHandler{repo: repo}
}

// Handle executes the has-liked query
func (h *HasLikedHandler) Handle(query HasLikedQuery) (bool, error) {
	return h.repo.HasLiked(query.ReviewID, query.UserID)
}
