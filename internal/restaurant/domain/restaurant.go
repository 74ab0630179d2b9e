package domain

import (
	"errors"
	"time"
)

// Restaurant represents a dining location
type Restaurant struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Restaurant) TableName() string {
	return "restaurants"
}

// Food represents one menu item of a restaurant. Foods are seeded out of
// band and read-only to this service.
type Food struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	FoodType     string    `json:"food_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Food) TableName() string {
	return "foods"
}

// RestaurantWithStats is a restaurant with its review aggregates and menu
// size, as served by the restaurant listing.
type RestaurantWithStats struct {
	Restaurant    `gorm:"embedded"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
	MenuItemCount int64   `json:"menu_item_count"`
}

var (
	// ErrRestaurantNotFound is returned when no restaurant has the given id.
	ErrRestaurantNotFound = errors.New("restaurant not found")

	// ErrFoodNotFound is returned when no food has the given id.
	ErrFoodNotFound = errors.New("food item not found")
)

// RestaurantRepository defines the contract for restaurant and food reads
type RestaurantRepository interface {
	// FindAllWithStats lists every restaurant with average rating, review
	// count and menu item count, zeros when there is nothing to aggregate.
	FindAllWithStats() ([]RestaurantWithStats, error)
	FindByID(id uint) (*Restaurant, error)
	FindAllFoods() ([]Food, error)
	FindFoodByID(id uint) (*Food, error)
	FindFoodsByRestaurant(restaurantID uint) ([]Food, error)
}
