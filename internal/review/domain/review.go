package domain

import "time"

// FoodReview represents a review of a single menu item. Reviews are never
// updated in place; they are created once and deleted only by their author.
type FoodReview struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	FoodID    uint      `json:"food_id" gorm:"not null;index"`
	Rating    int       `json:"rating" gorm:"not null"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (FoodReview) TableName() string {
	return "food_reviews"
}

// Like is one row of the like ledger. The composite unique index is the
// source of truth for "a user likes a review at most once"; counts are always
// derived from these rows, never cached.
type Like struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_likes_user_review"`
	FoodReviewID uint      `json:"food_review_id" gorm:"not null;uniqueIndex:idx_likes_user_review;index"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Like) TableName() string {
	return "likes"
}

// ReviewWithFood is a review enriched with the name of the food it targets,
// used when listing reviews across a whole restaurant.
type ReviewWithFood struct {
	FoodReview `gorm:"embedded"`
	FoodName   string `json:"food_name"`
}

// ReviewWithLikes is a review plus its like count and whether the requesting
// user (if any) is among the likers.
type ReviewWithLikes struct {
	FoodReview `gorm:"embedded"`
	Likes      int64 `json:"likes"`
	Liked      bool  `json:"liked"`
}

// FoodStats are the per-food aggregate numbers. AverageRating is 0, not
// null/NaN, when the food has no reviews.
type FoodStats struct {
	ReviewCount   int64   `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}

// RestaurantReviewStats are per-restaurant review aggregates, computed by
// joining reviews through foods. Restaurants without reviews still appear
// with zero counts.
type RestaurantReviewStats struct {
	RestaurantID   uint    `json:"restaurant_id"`
	RestaurantName string  `json:"restaurant_name"`
	ReviewCount    int64   `json:"review_count"`
	AverageRating  float64 `json:"average_rating"`
}

// LikeStatus reports the like state of one review for an optional caller.
type LikeStatus struct {
	Likes     int64 `json:"likes"`
	UserLiked bool  `json:"userLiked"`
}

// ReviewRepository defines the contract for review and like-ledger data access
type ReviewRepository interface {
	Create(review *FoodReview) error
	FindByID(id uint) (*FoodReview, error)
	FindAll() ([]FoodReview, error)
	FindByFood(foodID uint) ([]FoodReview, error)
	FindByRestaurant(restaurantID uint) ([]ReviewWithFood, error)
	// DeleteOwned removes the review and its likes in one transaction. The
	// review row is matched on (id, user_id) so a delete by a non-owner and a
	// delete of a missing review are the same ErrReviewNotFound.
	DeleteOwned(id, userID uint) error
	FoodExists(foodID uint) (bool, error)

	HasLiked(reviewID, userID uint) (bool, error)
	// AddLike inserts a ledger row; a duplicate (user, review) pair fails
	// with ErrAlreadyLiked via the unique constraint.
	AddLike(reviewID, userID uint) error
	// RemoveLike deletes the matching ledger row; deleting zero rows is not
	// an error.
	RemoveLike(reviewID, userID uint) error
	CountLikes(reviewID uint) (int64, error)
	// FindByFoodWithLikes returns every review on the food with like counts
	// in a single grouped query. userID 0 means no caller context.
	FindByFoodWithLikes(foodID, userID uint) ([]ReviewWithLikes, error)

	FoodStats(foodID uint) (*FoodStats, error)
	RestaurantReviewStats() ([]RestaurantReviewStats, error)
}
