package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/polybites/polybites-backend/internal/review/domain"
	"gorm.io/gorm"
)

// GormReviewRepository implements ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GORM review repository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Create inserts a new review and returns the persisted row on the same
// struct (generated id and timestamp included).
func (r *GormReviewRepository) Create(review *domain.FoodReview) error {
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// FindByID retrieves a review by ID
func (r *GormReviewRepository) FindByID(id uint) (*domain.FoodReview, error) {
	var review domain.FoodReview
	if err := r.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	return &review, nil
}

// FindAll retrieves every review in insertion order
func (r *GormReviewRepository) FindAll() ([]domain.FoodReview, error) {
	var reviews []domain.FoodReview
	if err := r.db.Order("id ASC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	return reviews, nil
}

// FindByFood retrieves all reviews for one food item, oldest first
func (r *GormReviewRepository) FindByFood(foodID uint) ([]domain.FoodReview, error) {
	var reviews []domain.FoodReview
	if err := r.db.Where("food_id = ?", foodID).Order("id ASC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to find reviews for food: %w", err)
	}
	return reviews, nil
}

// FindByRestaurant retrieves all reviews across a restaurant's menu, each
// enriched with the food name.
func (r *GormReviewRepository) FindByRestaurant(restaurantID uint) ([]domain.ReviewWithFood, error) {
	var reviews []domain.ReviewWithFood
	err := r.db.Raw(`
		SELECT food_reviews.id, food_reviews.user_id, food_reviews.food_id,
		       food_reviews.rating, food_reviews.text, food_reviews.created_at,
		       foods.name AS food_name
		FROM food_reviews
		JOIN foods ON foods.id = food_reviews.food_id
		WHERE foods.restaurant_id = ?
		ORDER BY food_reviews.id ASC`, restaurantID).Scan(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews for restaurant: %w", err)
	}
	return reviews, nil
}

// DeleteOwned removes a review and its likes. The likes delete and the
// conditional review delete run in one transaction, so a non-owner (or a
// missing id) rolls the whole thing back and no likes are lost.
func (r *GormReviewRepository) DeleteOwned(id, userID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("food_review_id = ?", id).Delete(&domain.Like{}).Error; err != nil {
			return fmt.Errorf("failed to delete likes for review: %w", err)
		}

		// Matching on (id, user_id) makes "wrong owner" and "missing"
		// the same zero-rows outcome.
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&domain.FoodReview{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete review: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrReviewNotFound
		}
		return nil
	})
	return err
}

// FoodExists reports whether a food row with the given id exists
func (r *GormReviewRepository) FoodExists(foodID uint) (bool, error) {
	var count int64
	if err := r.db.Table("foods").Where("id = ?", foodID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check food existence: %w", err)
	}
	return count > 0, nil
}

// HasLiked reports whether the (user, review) pair is in the ledger
func (r *GormReviewRepository) HasLiked(reviewID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Like{}).
		Where("food_review_id = ? AND user_id = ?", reviewID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return count > 0, nil
}

// AddLike inserts a ledger row. The store's unique constraint on
// (user_id, food_review_id) is what prevents double-counting; a violation
// surfaces as ErrAlreadyLiked.
func (r *GormReviewRepository) AddLike(reviewID, userID uint) error {
	like := domain.Like{
		UserID:       userID,
		FoodReviewID: reviewID,
		CreatedAt:    time.Now(),
	}
	if err := r.db.Create(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyLiked
		}
		return fmt.Errorf("failed to add like: %w", err)
	}
	return nil
}

// RemoveLike deletes the matching ledger row; zero rows affected is fine
func (r *GormReviewRepository) RemoveLike(reviewID, userID uint) error {
	err := r.db.Where("food_review_id = ? AND user_id = ?", reviewID, userID).
		Delete(&domain.Like{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}
	return nil
}

// CountLikes returns the authoritative like count for a review
func (r *GormReviewRepository) CountLikes(reviewID uint) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Like{}).
		Where("food_review_id = ?", reviewID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// reviewWithLikesRow is the scan target for the grouped like join. liked is
// an int so the aggregate scans cleanly on both postgres and sqlite.
type reviewWithLikesRow struct {
	ID        uint
	UserID    uint
	FoodID    uint
	Rating    int
	Text      string
	CreatedAt time.Time
	Likes     int64
	Liked     int
}

// FindByFoodWithLikes returns every review on a food with its like count and
// whether userID liked it, in one grouped query rather than a count per review.
func (r *GormReviewRepository) FindByFoodWithLikes(foodID, userID uint) ([]domain.ReviewWithLikes, error) {
	var rows []reviewWithLikesRow
	err := r.db.Raw(`
		SELECT fr.id, fr.user_id, fr.food_id, fr.rating, fr.text, fr.created_at,
		       COUNT(l.id) AS likes,
		       COALESCE(MAX(CASE WHEN l.user_id = ? THEN 1 ELSE 0 END), 0) AS liked
		FROM food_reviews fr
		LEFT JOIN likes l ON l.food_review_id = fr.id
		WHERE fr.food_id = ?
		GROUP BY fr.id, fr.user_id, fr.food_id, fr.rating, fr.text, fr.created_at
		ORDER BY fr.id ASC`, userID, foodID).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews with likes: %w", err)
	}

	reviews := make([]domain.ReviewWithLikes, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, domain.ReviewWithLikes{
			FoodReview: domain.FoodReview{
				ID:        row.ID,
				UserID:    row.UserID,
				FoodID:    row.FoodID,
				Rating:    row.Rating,
				Text:      row.Text,
				CreatedAt: row.CreatedAt,
			},
			Likes: row.Likes,
			Liked: row.Liked > 0,
		})
	}
	return reviews, nil
}

// FoodStats computes {review_count, average_rating} for one food. COALESCE
// turns the zero-row AVG null into 0.
func (r *GormReviewRepository) FoodStats(foodID uint) (*domain.FoodStats, error) {
	var stats domain.FoodStats
	err := r.db.Raw(`
		SELECT COUNT(*) AS review_count,
		       COALESCE(AVG(rating), 0) AS average_rating
		FROM food_reviews
		WHERE food_id = ?`, foodID).Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute food stats: %w", err)
	}
	return &stats, nil
}

// RestaurantReviewStats aggregates reviews per restaurant through the foods
// table. Left joins keep restaurants with no menu or no reviews in the result
// with zero counts; most-reviewed restaurants come first.
func (r *GormReviewRepository) RestaurantReviewStats() ([]domain.RestaurantReviewStats, error) {
	var stats []domain.RestaurantReviewStats
	err := r.db.Raw(`
		SELECT r.id AS restaurant_id, r.name AS restaurant_name,
		       COUNT(fr.id) AS review_count,
		       COALESCE(AVG(fr.rating), 0) AS average_rating
		FROM restaurants r
		LEFT JOIN foods f ON f.restaurant_id = r.id
		LEFT JOIN food_reviews fr ON fr.food_id = f.id
		GROUP BY r.id, r.name
		ORDER BY review_count DESC, r.id ASC`).Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute restaurant review stats: %w", err)
	}
	return stats, nil
}

// AutoMigrate runs database migrations for the review tables
func (r *GormReviewRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.FoodReview{}, &domain.Like{})
}
