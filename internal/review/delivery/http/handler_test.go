package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	restaurantdomain "github.com/polybites/polybites-backend/internal/restaurant/domain"
	"github.com/polybites/polybites-backend/internal/review/domain"
	"github.com/polybites/polybites-backend/internal/review/repository"
)

// The handler registers its Prometheus collectors on construction, so the
// suite shares one handler and one database across tests.
var (
	testDB     *gorm.DB
	testRouter *mux.Router
)

func TestMain(m *testing.M) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open test database: %v\n", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get database instance: %v\n", err)
		os.Exit(1)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&restaurantdomain.Restaurant{},
		&restaurantdomain.Food{},
		&domain.FoodReview{},
		&domain.Like{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to migrate test database: %v\n", err)
		os.Exit(1)
	}

	testDB = db
	handler := NewFoodReviewHandler(repository.NewGormReviewRepository(db), nil)
	testRouter = mux.NewRouter()
	handler.RegisterRoutes(testRouter)

	os.Exit(m.Run())
}

func doRequest(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	testRouter.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func createFood(t *testing.T, name string) uint {
	t.Helper()
	restaurant := restaurantdomain.Restaurant{Name: name + " place"}
	if err := testDB.Create(&restaurant).Error; err != nil {
		t.Fatalf("failed to create restaurant: %v", err)
	}
	food := restaurantdomain.Food{RestaurantID: restaurant.ID, Name: name}
	if err := testDB.Create(&food).Error; err != nil {
		t.Fatalf("failed to create food: %v", err)
	}
	return food.ID
}

func createReview(t *testing.T, userID, foodID uint, rating int) uint {
	t.Helper()
	rec := doRequest(t, http.MethodPost, "/api/food-reviews", map[string]interface{}{
		"user_id": userID,
		"food_id": foodID,
		"rating":  rating,
		"text":    "solid",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create review returned %d: %s", rec.Code, rec.Body.String())
	}
	var review domain.FoodReview
	decodeBody(t, rec, &review)
	return review.ID
}

func TestCreateReviewEndpoint(t *testing.T) {
	foodID := createFood(t, "Ramen")

	rec := doRequest(t, http.MethodPost, "/api/food-reviews", map[string]interface{}{
		"user_id": 1,
		"food_id": foodID,
		"rating":  5,
		"text":    "outstanding",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var review domain.FoodReview
	decodeBody(t, rec, &review)
	if review.ID == 0 || review.Rating != 5 || review.FoodID != foodID {
		t.Errorf("unexpected review: %+v", review)
	}
}

func TestCreateReviewInvalidRating(t *testing.T) {
	foodID := createFood(t, "Gyoza")

	rec := doRequest(t, http.MethodPost, "/api/food-reviews", map[string]interface{}{
		"user_id": 1,
		"food_id": foodID,
		"rating":  9,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["error"] == "" {
		t.Error("expected error message in body")
	}
}

func TestCreateReviewUnknownFoodEndpoint(t *testing.T) {
	rec := doRequest(t, http.MethodPost, "/api/food-reviews", map[string]interface{}{
		"user_id": 1,
		"food_id": 999999,
		"rating":  3,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateReviewMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/food-reviews", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	testRouter.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetReviewNotFound(t *testing.T) {
	rec := doRequest(t, http.MethodGet, "/api/food-reviews/987654", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDeleteReviewOwnership(t *testing.T) {
	foodID := createFood(t, "Tonkatsu")
	reviewID := createReview(t, 11, foodID, 4)

	// A foreign user's delete is indistinguishable from a missing review
	rec := doRequest(t, http.MethodDelete, fmt.Sprintf("/api/food-reviews/%d", reviewID), map[string]interface{}{
		"user_id": 99,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign delete: expected 404, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, http.MethodDelete, fmt.Sprintf("/api/food-reviews/%d", reviewID), map[string]interface{}{
		"user_id": 11,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("owner delete: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, http.MethodGet, fmt.Sprintf("/api/food-reviews/%d", reviewID), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected review to be gone, got %d", rec.Code)
	}
}

func TestLikeLifecycleEndpoints(t *testing.T) {
	foodID := createFood(t, "Udon")
	reviewID := createReview(t, 21, foodID, 4)

	rec := doRequest(t, http.MethodPost, fmt.Sprintf("/api/food-reviews/%d/like", reviewID), map[string]interface{}{
		"user_id": 22,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("like: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result struct {
		Liked bool  `json:"liked"`
		Likes int64 `json:"likes"`
	}
	decodeBody(t, rec, &result)
	if !result.Liked || result.Likes != 1 {
		t.Errorf("unexpected like result: %+v", result)
	}

	// Second like conflicts
	rec = doRequest(t, http.MethodPost, fmt.Sprintf("/api/food-reviews/%d/like", reviewID), map[string]interface{}{
		"user_id": 22,
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate like: expected 409, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, http.MethodGet, fmt.Sprintf("/api/food-reviews/%d/like/%d", reviewID, 22), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("has-liked: expected 200, got %d", rec.Code)
	}
	var liked map[string]bool
	decodeBody(t, rec, &liked)
	if !liked["liked"] {
		t.Error("expected liked true")
	}

	rec = doRequest(t, http.MethodDelete, fmt.Sprintf("/api/food-reviews/%d/like", reviewID), map[string]interface{}{
		"user_id": 22,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("unlike: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &result)
	if result.Liked || result.Likes != 0 {
		t.Errorf("unexpected unlike result: %+v", result)
	}
}

func TestToggleLikeEndpoint(t *testing.T) {
	foodID := createFood(t, "Soba")
	reviewID := createReview(t, 31, foodID, 3)

	var result struct {
		Liked bool  `json:"liked"`
		Likes int64 `json:"likes"`
	}

	rec := doRequest(t, http.MethodPost, fmt.Sprintf("/api/food-reviews/%d/toggle-like", reviewID), map[string]interface{}{
		"user_id": 32,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle on: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &result)
	if !result.Liked || result.Likes != 1 {
		t.Errorf("after toggle on: %+v", result)
	}

	rec = doRequest(t, http.MethodPost, fmt.Sprintf("/api/food-reviews/%d/toggle-like", reviewID), map[string]interface{}{
		"user_id": 32,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle off: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &result)
	if result.Liked || result.Likes != 0 {
		t.Errorf("after toggle off: %+v", result)
	}
}

func TestLikeMissingReviewEndpoint(t *testing.T) {
	rec := doRequest(t, http.MethodPost, "/api/food-reviews/876543/like", map[string]interface{}{
		"user_id": 1,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLikeRequiresUserID(t *testing.T) {
	foodID := createFood(t, "Curry")
	reviewID := createReview(t, 41, foodID, 4)

	rec := doRequest(t, http.MethodPost, fmt.Sprintf("/api/food-reviews/%d/like", reviewID), map[string]interface{}{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestReviewLikesEndpoint(t *testing.T) {
	foodID := createFood(t, "Donburi")
	reviewID := createReview(t, 51, foodID, 5)

	for _, userID := range []uint{52, 53} {
		rec := doRequest(t, http.MethodPost, fmt.Sprintf("/api/food-reviews/%d/like", reviewID), map[string]interface{}{
			"user_id": userID,
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("like failed: %d", rec.Code)
		}
	}

	rec := doRequest(t, http.MethodGet, fmt.Sprintf("/api/food-reviews/%d/likes?user_id=52", reviewID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var status domain.LikeStatus
	decodeBody(t, rec, &status)
	if status.Likes != 2 || !status.UserLiked {
		t.Errorf("unexpected like status: %+v", status)
	}

	rec = doRequest(t, http.MethodGet, fmt.Sprintf("/api/food-reviews/%d/likes", reviewID), nil)
	decodeBody(t, rec, &status)
	if status.Likes != 2 || status.UserLiked {
		t.Errorf("anonymous like status: %+v", status)
	}
}

func TestFoodStatsEndpoint(t *testing.T) {
	foodID := createFood(t, "Okonomiyaki")
	createReview(t, 61, foodID, 5)
	createReview(t, 62, foodID, 3)

	rec := doRequest(t, http.MethodGet, fmt.Sprintf("/api/food-reviews/food/%d/stats", foodID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var stats domain.FoodStats
	decodeBody(t, rec, &stats)
	if stats.ReviewCount != 2 || stats.AverageRating != 4 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestReviewsForFoodWithLikesEndpoint(t *testing.T) {
	foodID := createFood(t, "Takoyaki")
	reviewID := createReview(t, 71, foodID, 4)
	createReview(t, 72, foodID, 2)

	rec := doRequest(t, http.MethodPost, fmt.Sprintf("/api/food-reviews/%d/like", reviewID), map[string]interface{}{
		"user_id": 73,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("like failed: %d", rec.Code)
	}

	rec = doRequest(t, http.MethodGet, fmt.Sprintf("/api/food-reviews/food/%d/with-likes?user_id=73", foodID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var rows []domain.ReviewWithLikes
	decodeBody(t, rec, &rows)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ID != reviewID || rows[0].Likes != 1 || !rows[0].Liked {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Likes != 0 || rows[1].Liked {
		t.Errorf("unexpected second row: %+v", rows[1])
	}
}

func TestMalformedUserIDQuery(t *testing.T) {
	foodID := createFood(t, "Karaage")
	reviewID := createReview(t, 81, foodID, 4)

	rec := doRequest(t, http.MethodGet, fmt.Sprintf("/api/food-reviews/%d/likes?user_id=abc", reviewID), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("likes: expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, http.MethodGet, fmt.Sprintf("/api/food-reviews/food/%d/with-likes?user_id=abc", foodID), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("with-likes: expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRequestMetricsRecorded(t *testing.T) {
	rec := doRequest(t, http.MethodGet, "/api/food-reviews", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := map[string]bool{}
	for _, mf := range families {
		switch mf.GetName() {
		case "review_service_requests_total", "review_service_request_duration_seconds":
			if len(mf.GetMetric()) > 0 {
				found[mf.GetName()] = true
			}
		}
	}
	if !found["review_service_requests_total"] || !found["review_service_request_duration_seconds"] {
		t.Errorf("expected both review service collectors to have samples, found %v", found)
	}
}

func TestInvalidPathID(t *testing.T) {
	rec := doRequest(t, http.MethodGet, "/api/food-reviews/abc", nil)
	if rec.Code != http.StatusNotFound {
		// The numeric route constraint rejects the path before the handler
		t.Fatalf("expected 404 from router, got %d", rec.Code)
	}
}
