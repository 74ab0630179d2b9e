package repository

import (
	"errors"
	"fmt"

	"github.com/polybites/polybites-backend/internal/restaurant/domain"
	"gorm.io/gorm"
)

// GormRestaurantRepository implements RestaurantRepository using GORM
type GormRestaurantRepository struct {
	db *gorm.DB
}

// NewGormRestaurantRepository creates a new GORM restaurant repository
func NewGormRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

// FindAllWithStats lists restaurants with review aggregates and menu size.
// Left joins keep restaurants with no menu or no reviews in the listing;
// DISTINCT keeps the two joined row sets from inflating each other's counts.
func (r *GormRestaurantRepository) FindAllWithStats() ([]domain.RestaurantWithStats, error) {
	var restaurants []domain.RestaurantWithStats
	err := r.db.Raw(`
		SELECT r.id, r.name, r.description, r.location, r.created_at,
		       COALESCE(AVG(fr.rating), 0) AS average_rating,
		       COUNT(DISTINCT fr.id) AS review_count,
		       COUNT(DISTINCT f.id) AS menu_item_count
		FROM restaurants r
		LEFT JOIN foods f ON f.restaurant_id = r.id
		LEFT JOIN food_reviews fr ON fr.food_id = f.id
		GROUP BY r.id, r.name, r.description, r.location, r.created_at
		ORDER BY r.id ASC`).Scan(&restaurants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants with stats: %w", err)
	}
	return restaurants, nil
}

// FindByID retrieves a restaurant by ID
func (r *GormRestaurantRepository) FindByID(id uint) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	if err := r.db.First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to find restaurant: %w", err)
	}
	return &restaurant, nil
}

// FindAllFoods retrieves every food item in id order
func (r *GormRestaurantRepository) FindAllFoods() ([]domain.Food, error) {
	var foods []domain.Food
	if err := r.db.Order("id ASC").Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}
	return foods, nil
}

// FindFoodByID retrieves a food item by ID
func (r *GormRestaurantRepository) FindFoodByID(id uint) (*domain.Food, error) {
	var food domain.Food
	if err := r.db.First(&food, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodNotFound
		}
		return nil, fmt.Errorf("failed to find food: %w", err)
	}
	return &food, nil
}

// FindFoodsByRestaurant retrieves a restaurant's menu
func (r *GormRestaurantRepository) FindFoodsByRestaurant(restaurantID uint) ([]domain.Food, error) {
	var foods []domain.Food
	err := r.db.Where("restaurant_id = ?", restaurantID).Order("id ASC").Find(&foods).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list foods for restaurant: %w", err)
	}
	return foods, nil
}

// AutoMigrate runs database migrations for the restaurant tables
func (r *GormRestaurantRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Restaurant{}, &domain.Food{})
}
