package repository

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	restaurantdomain "github.com/polybites/polybites-backend/internal/restaurant/domain"
	"github.com/polybites/polybites-backend/internal/review/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&restaurantdomain.Restaurant{},
		&restaurantdomain.Food{},
		&domain.FoodReview{},
		&domain.Like{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedRestaurant(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	restaurant := restaurantdomain.Restaurant{Name: name}
	if err := db.Create(&restaurant).Error; err != nil {
		t.Fatalf("failed to seed restaurant: %v", err)
	}
	return restaurant.ID
}

func seedFood(t *testing.T, db *gorm.DB, restaurantID uint, name string) uint {
	t.Helper()
	food := restaurantdomain.Food{RestaurantID: restaurantID, Name: name}
	if err := db.Create(&food).Error; err != nil {
		t.Fatalf("failed to seed food: %v", err)
	}
	return food.ID
}

func seedReview(t *testing.T, repo *GormReviewRepository, userID, foodID uint, rating int) *domain.FoodReview {
	t.Helper()
	review := &domain.FoodReview{UserID: userID, FoodID: foodID, Rating: rating, Text: "tasty"}
	if err := repo.Create(review); err != nil {
		t.Fatalf("failed to seed review: %v", err)
	}
	return review
}

func TestCreateAndFindReview(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReviewRepository(db)
	foodID := seedFood(t, db, seedRestaurant(t, db, "Luigi's"), "Carbonara")

	created := seedReview(t, repo, 7, foodID, 4)
	if created.ID == 0 {
		t.Fatal("expected generated id after create")
	}

	found, err := repo.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found.UserID != 7 || found.FoodID != foodID || found.Rating != 4 || found.Text != "tasty" {
		t.Errorf("unexpected review: %+v", found)
	}
}

func TestFindByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReviewRepository(db)

	if _, err := repo.FindByID(12345); !errors.Is(err, domain.ErrReviewNotFound) {
		t.Errorf("expected ErrReviewNotFound, got %v", err)
	}
}

func TestFoodExists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReviewRepository(db)
	foodID := seedFood(t, db, seedRestaurant(t, db, "Luigi's"), "Carbonara")

	exists, err := repo.FoodExists(foodID)
	if err != nil {
		t.Fatalf("FoodExists failed: %v", err)
	}
	if !exists {
		t.Error("expected food to exist")
	}

	exists, err = repo.FoodExists(9999)
	if err != nil {
		t.Fatalf("FoodExists failed: %v", err)
	}
	if exists {
		t.Error("expected food to not exist")
	}
}

func TestDeleteOwnedCascadesLikes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReviewRepository(db)
	foodID := seedFood(t, db, seedRestaurant(t, db, "Luigi's"), "Carbonara")
	review := seedReview(t, repo, 1, foodID, 5)

	for _, userID := range []uint{2, 3, 4} {
		if err := repo.AddLike(review.ID, userID); err != nil {
			t.Fatalf("AddLike failed: %v", err)
		}
	}

	if err := repo.DeleteOwned(review.ID, 1); err != nil {
		t.Fatalf("DeleteOwned failed: %v", err)
	}

	if _, err := repo.FindByID(review.ID); !errors.Is(err, domain.ErrReviewNotFound) {
		t.Errorf("expected review to be gone, got %v", err)
	}

	var likeCount int64
	if err := db.Model(&domain.Like{}).Where("food_review_id = ?", review.ID).Count(&likeCount).Error; err != nil {
		t.Fatalf("counting likes failed: %v", err)
	}
	if likeCount != 0 {
		t.Errorf("expected 0 leftover likes, got %d", likeCount)
	}
}

func TestDeleteOwnedWrongOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReviewRepository(db)
	foodID := seedFood(t, db, seedRestaurant(t, db, "Luigi's"), "Carbonara")
	review := seedReview(t, repo, 1, foodID, 5)

	if err := repo.AddLike(review.ID, 2); err != nil {
		t.Fatalf("AddLike failed: %v", err)
	}

	// User 9 does not own the review; the whole transaction rolls back
	if err := repo.DeleteOwned(review.ID, 9); !errors.Is(err, domain.ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound, got %v", err)
	}

	if _, err := repo.FindByID(review.ID); err != nil {
		t.Errorf("review should still exist: %v", err)
	}
	likes, err := repo.CountLikes(review.ID)
	if err != nil {
		t.Fatalf("CountLikes failed: %v", err)
	}
	if likes != 1 {
		t.Errorf("expected like to survive the rollback, got %d", likes)
	}
}

func TestDeleteOwnedMissingReview(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReviewRepository(db)

	if err := repo.DeleteOwned(4242, 1); !errors.Is(err, domain.ErrReviewNotFound) {
		t.Errorf("expected ErrReviewNotFound, got %v", err)
	}
}

func TestAddLikeDuplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReviewRepository(db)
	foodID := seedFood(t, db, seedRestaurant(t, db, "Luigi's"), "Carbonara")
	review := seedReview(t, repo, 1, foodID, 5)

	if err := repo.AddLike(review.ID, 2); err != nil {
		t.Fatalf("first AddLike failed: %v", err)
	}
	if err := repo.AddLike(review.ID, 2); !errors.Is(err, domain.ErrAlreadyLiked) {
		t.Fatalf("expected ErrAlreadyLiked, got %v", err)
	}

	likes, err := repo.CountLikes(review.ID)
	if err != nil {
		t.Fatalf("CountLikes failed: %v", err)
	}
	if likes != 1 {
		t.Errorf("duplicate like must not change the count, got %d", likes)
	}
}

func TestAddRemoveLikeSymmetry(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReviewRepository(db)
	foodID := seedFood(t, db, seedRestaurant(t, db, "Luigi's"), "Carbonara")
	review := seedReview(t, repo, 1, foodID, 5)

	if err := repo.AddLike(review.ID, 2); err != nil {
		t.Fatalf("AddLike failed: %v", err)
	}
	liked, err := repo.HasLiked(review.ID, 2)
	if err != nil || !liked {
		t.Fatalf("expected HasLiked true, got %v %v", liked, err)
	}

	if err := repo.RemoveLike(review.ID, 2); err != nil {
		t.Fatalf("RemoveLike failed: %v", err)
	}
	liked, err = repo.HasLiked(review.ID, 2)
	if err != nil || liked {
		t.Fatalf("expected HasLiked false, got %v %v", liked, err)
	}

	likes, err := repo.CountLikes(review.ID)
	if err != nil {
		t.Fatalf("CountLikes failed: %v", err)
	}
	if likes != 0 {
		t.Errorf("expected 0 likes, got %d", likes)
	}
}

func TestRemoveLikeIsNoOpWhenAbsent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReviewRepository(db)
	foodID := seedFood(t, db, seedRestaurant(t, db, "Luigi's"), "Carbonara")
	review := seedReview(t, repo, 1, foodID, 5)

	if err := repo.RemoveLike(review.ID, 2); err != nil {
		t.Fatalf("RemoveLike of absent like must not fail: %v", err)
	}
}

func TestFindByFoodWithLikes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReviewRepository(db)
	foodID := seedFood(t, db, seedRestaurant(t, db, "Luigi's"), "Carbonara")

	first := seedReview(t, repo, 1, foodID, 5)
	second := seedReview(t, repo, 2, foodID, 3)

	// first gets likes from users 2 and 3; second gets none
	if err := repo.AddLike(first.ID, 2); err != nil {
		t.Fatalf("AddLike failed: %v", err)
	}
	if err := repo.AddLike(first.ID, 3); err != nil {
		t.Fatalf("AddLike failed: %v", err)
	}

	rows, err := repo.FindByFoodWithLikes(foodID, 3)
	if err != nil {
		t.Fatalf("FindByFoodWithLikes failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	if rows[0].ID != first.ID || rows[0].Likes != 2 || !rows[0].Liked {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[1].ID != second.ID || rows[1].Likes != 0 || rows[1].Liked {
		t.Errorf("unexpected second row: %+v", rows[1])
	}
}

func TestFindByFoodWithLikesAnonymous(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReviewRepository(db)
	foodID := seedFood(t, db, seedRestaurant(t, db, "Luigi's"), "Carbonara")
	review := seedReview(t, repo, 1, foodID, 5)
	if err := repo.AddLike(review.ID, 2); err != nil {
		t.Fatalf("AddLike failed: %v", err)
	}

	rows, err := repo.FindByFoodWithLikes(foodID, 0)
	if err != nil {
		t.Fatalf("FindByFoodWithLikes failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Likes != 1 || rows[0].Liked {
		t.Errorf("anonymous caller must never be marked as liker: %+v", rows[0])
	}
}

func TestFoodStatsEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReviewRepository(db)
	foodID := seedFood(t, db, seedRestaurant(t, db, "Luigi's"), "Carbonara")

	stats, err := repo.FoodStats(foodID)
	if err != nil {
		t.Fatalf("FoodStats failed: %v", err)
	}
	if stats.ReviewCount != 0 || stats.AverageRating != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestFoodStats(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReviewRepository(db)
	foodID := seedFood(t, db, seedRestaurant(t, db, "Luigi's"), "Carbonara")

	for i, rating := range []int{5, 3, 4} {
		seedReview(t, repo, uint(i+1), foodID, rating)
	}

	stats, err := repo.FoodStats(foodID)
	if err != nil {
		t.Fatalf("FoodStats failed: %v", err)
	}
	if stats.ReviewCount != 3 {
		t.Errorf("expected 3 reviews, got %d", stats.ReviewCount)
	}
	if stats.AverageRating != 4 {
		t.Errorf("expected average 4, got %f", stats.AverageRating)
	}
}

func TestFoodStatsAfterDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReviewRepository(db)
	foodID := seedFood(t, db, seedRestaurant(t, db, "Luigi's"), "Carbonara")

	first := seedReview(t, repo, 1, foodID, 5)
	stats, err := repo.FoodStats(foodID)
	if err != nil {
		t.Fatalf("FoodStats failed: %v", err)
	}
	if stats.ReviewCount != 1 || stats.AverageRating != 5 {
		t.Errorf("after first review: %+v", stats)
	}

	seedReview(t, repo, 2, foodID, 1)
	stats, err = repo.FoodStats(foodID)
	if err != nil {
		t.Fatalf("FoodStats failed: %v", err)
	}
	if stats.ReviewCount != 2 || stats.AverageRating != 3 {
		t.Errorf("after second review: %+v", stats)
	}

	if err := repo.DeleteOwned(first.ID, 1); err != nil {
		t.Fatalf("DeleteOwned failed: %v", err)
	}
	stats, err = repo.FoodStats(foodID)
	if err != nil {
		t.Fatalf("FoodStats failed: %v", err)
	}
	if stats.ReviewCount != 1 || stats.AverageRating != 1 {
		t.Errorf("stats must reflect the delete, got %+v", stats)
	}
}

func TestFindByRestaurant(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReviewRepository(db)
	restaurantID := seedRestaurant(t, db, "Luigi's")
	pasta := seedFood(t, db, restaurantID, "Carbonara")
	pizza := seedFood(t, db, restaurantID, "Margherita")
	otherFood := seedFood(t, db, seedRestaurant(t, db, "Elsewhere"), "Burger")

	seedReview(t, repo, 1, pasta, 5)
	seedReview(t, repo, 2, pizza, 4)
	seedReview(t, repo, 3, otherFood, 1)

	rows, err := repo.FindByRestaurant(restaurantID)
	if err != nil {
		t.Fatalf("FindByRestaurant failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].FoodName != "Carbonara" || rows[1].FoodName != "Margherita" {
		t.Errorf("expected food names on rows, got %+v", rows)
	}
}

func TestRestaurantReviewStats(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReviewRepository(db)

	busyID := seedRestaurant(t, db, "Busy")
	quietID := seedRestaurant(t, db, "Quiet")
	emptyID := seedRestaurant(t, db, "Empty")

	busyFood := seedFood(t, db, busyID, "Special")
	quietFood := seedFood(t, db, quietID, "Soup")
	seedFood(t, db, emptyID, "Unreviewed")

	seedReview(t, repo, 1, busyFood, 5)
	seedReview(t, repo, 2, busyFood, 4)
	seedReview(t, repo, 3, quietFood, 2)

	stats, err := repo.RestaurantReviewStats()
	if err != nil {
		t.Fatalf("RestaurantReviewStats failed: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("expected 3 restaurants, got %d", len(stats))
	}

	// Most reviewed first; the empty restaurant still shows with zeros
	if stats[0].RestaurantID != busyID || stats[0].ReviewCount != 2 || stats[0].AverageRating != 4.5 {
		t.Errorf("unexpected first row: %+v", stats[0])
	}
	if stats[1].RestaurantID != quietID || stats[1].ReviewCount != 1 {
		t.Errorf("unexpected second row: %+v", stats[1])
	}
	if stats[2].RestaurantID != emptyID || stats[2].ReviewCount != 0 || stats[2].AverageRating != 0 {
		t.Errorf("unexpected third row: %+v", stats[2])
	}
}
