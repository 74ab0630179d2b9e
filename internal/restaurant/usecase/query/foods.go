package query

import (
	"github.com/polybites/polybites-backend/internal/restaurant/domain"
)

// ListFoodsQuery represents the query for every food item
type ListFoodsQuery struct{}

// ListFoodsHandler handles the list foods query
type ListFoodsHandler struct {
	repo domain.RestaurantRepository
}

// NewListFoodsHandler creates a new list foods handler
func NewListFoodsHandler(repo domain.RestaurantRepository) *ListFoodsHandler {
	return &ListFoodsHandler{repo: repo}
}

// Handle executes the list foods query
func (h *ListFoodsHandler) Handle(query ListFoodsQuery) ([]domain.Food, error) {
	return h.repo.FindAllFoods()
}

// GetFoodQuery represents the query for a single food item
type GetFoodQuery struct {
	ID uint
}

// GetFoodHandler handles the get food query
type GetFoodHandler struct {
	repo domain.RestaurantRepository
}

// NewGetFoodHandler creates a new get food handler
func NewGetFoodHandler(repo domain.RestaurantRepository) *GetFoodHandler {
	return &GetFoodHandler{repo: repo}
}

// Handle executes the get food query
func (h *GetFoodHandler) Handle(query GetFoodQuery) (*domain.Food, error) {
	return h.repo.FindFoodByID(query.ID)
}

// FoodsForRestaurantQuery represents the query for a restaurant's menu
type FoodsForRestaurantQuery struct {
	RestaurantID uint
}

// FoodsForRestaurantHandler handles the foods-for-restaurant query
type FoodsForRestaurantHandler struct {
	repo domain.RestaurantRepository
}

// NewFoodsForRestaurantHandler creates a new foods-for-restaurant handler
func NewFoodsForRestaurantHandler(repo domain.RestaurantRepository) *FoodsForRestaurantHandler {
	return &FoodsForRestaurantHandler{repo: repo}
}

// Handle executes the foods-for-restaurant query
func (h *FoodsForRestaurantHandler) Handle(query FoodsForRestaurantQuery) ([]domain.Food, error) {
	return h.repo.FindFoodsByRestaurant(query.RestaurantID)
}
