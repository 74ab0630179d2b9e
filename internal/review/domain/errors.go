package domain

import "errors"

var (
	// ErrReviewNotFound covers both a missing review and a delete attempted
	// by a non-owner; callers cannot tell the two apart.
	ErrReviewNotFound = errors.New("review not found")

	// ErrFoodNotFound is returned when a review targets a food that does not exist.
	ErrFoodNotFound = errors.New("food item not found")

	// ErrAlreadyLiked is returned when the (user, review) pair is already in
	// the ledger. Callers should treat it as idempotent failure, not a hard error.
	ErrAlreadyLiked = errors.New("review already liked")

	// ErrInvalidRating is returned when a rating falls outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrInvalidArgument is wrapped by validation failures on required fields.
	ErrInvalidArgument = errors.New("invalid argument")
)
