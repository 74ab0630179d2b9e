package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/polybites/polybites-backend/internal/review/domain"
	"github.com/polybites/polybites-backend/internal/review/usecase/command"
	"github.com/polybites/polybites-backend/internal/review/usecase/query"
	"github.com/polybites/polybites-backend/kafka"
	"github.com/polybites/polybites-backend/pkg/logger"
)

// FoodReviewHandler handles HTTP requests for reviews and likes using CQRS pattern
type FoodReviewHandler struct {
	// Command handlers
	createHandler     *command.CreateReviewHandler
	deleteHandler     *command.DeleteReviewHandler
	addLikeHandler    *command.AddLikeHandler
	removeLikeHandler *command.RemoveLikeHandler
	toggleLikeHandler *command.ToggleLikeHandler

	// Query handlers
	listHandler            *query.ListReviewsHandler
	getHandler             *query.GetReviewHandler
	forFoodHandler         *query.ReviewsForFoodHandler
	forFoodWithLikes       *query.ReviewsForFoodWithLikesHandler
	forRestaurantHandler   *query.ReviewsForRestaurantHandler
	foodStatsHandler       *query.FoodStatsHandler
	restaurantStatsHandler *query.RestaurantStatsHandler
	reviewLikesHandler     *query.ReviewLikesHandler
	hasLikedHandler        *query.HasLikedHandler

	repo           domain.ReviewRepository
	publisher      *kafka.Publisher
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewFoodReviewHandler creates a new review handler. publisher may be nil;
// events are then skipped.
func NewFoodReviewHandler(repo domain.ReviewRepository, publisher *kafka.Publisher) *FoodReviewHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_service_requests_total",
			Help: "Total number of requests to the review service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "review_service_request_duration_seconds",
			Help:    "Duration of review service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &FoodReviewHandler{
		createHandler:          command.NewCreateReviewHandler(repo),
		deleteHandler:          command.NewDeleteReviewHandler(repo),
		addLikeHandler:         command.NewAddLikeHandler(repo),
		removeLikeHandler:      command.NewRemoveLikeHandler(repo),
		toggleLikeHandler:      command.NewToggleLikeHandler(repo),
		listHandler:            query.NewListReviewsHandler(repo),
		getHandler:             query.NewGetReviewHandler(repo),
		forFoodHandler:         query.NewReviewsForFoodHandler(repo),
		forFoodWithLikes:       query.NewReviewsForFoodWithLikesHandler(repo),
		forRestaurantHandler:   query.NewReviewsForRestaurantHandler(repo),
		foodStatsHandler:       query.NewFoodStatsHandler(repo),
		restaurantStatsHandler: query.NewRestaurantStatsHandler(repo),
		reviewLikesHandler:     query.NewReviewLikesHandler(repo),
		hasLikedHandler:        query.NewHasLikedHandler(repo),
		repo:                   repo,
		publisher:              publisher,
		requestCounter:         requestCounter,
		requestLatency:         requestLatency,
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *FoodReviewHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// ListReviews handles GET /api/food-reviews
func (h *FoodReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.listHandler.Handle(query.ListReviewsQuery{})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, reviews)
}

// GetReview handles GET /api/food-reviews/{id}
func (h *FoodReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	review, err := h.getHandler.Handle(query.GetReviewQuery{ID: id})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, review)
}

// ReviewsForFood handles GET /api/food-reviews/food/{foodId}
func (h *FoodReviewHandler) ReviewsForFood(w http.ResponseWriter, r *http.Request) {
	foodID, ok := h.pathID(w, r, "foodId")
	if !ok {
		return
	}

	reviews, err := h.forFoodHandler.Handle(query.ReviewsForFoodQuery{FoodID: foodID})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, reviews)
}

// ReviewsForFoodWithLikes handles GET /api/food-reviews/food/{foodId}/with-likes.
// An optional user_id query parameter marks which reviews that user liked.
func (h *FoodReviewHandler) ReviewsForFoodWithLikes(w http.ResponseWriter, r *http.Request) {
	foodID, ok := h.pathID(w, r, "foodId")
	if !ok {
		return
	}
	userID, ok := h.queryUserID(w, r)
	if !ok {
		return
	}

	reviews, err := h.forFoodWithLikes.Handle(query.ReviewsForFoodWithLikesQuery{
		FoodID: foodID,
		UserID: userID,
	})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, reviews)
}

// ReviewsForRestaurant handles GET /api/food-reviews/restaurant/{restaurantId}
func (h *FoodReviewHandler) ReviewsForRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := h.pathID(w, r, "restaurantId")
	if !ok {
		return
	}

	reviews, err := h.forRestaurantHandler.Handle(query.ReviewsForRestaurantQuery{RestaurantID: restaurantID})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, reviews)
}

// FoodStats handles GET /api/food-reviews/food/{foodId}/stats
func (h *FoodReviewHandler) FoodStats(w http.ResponseWriter, r *http.Request) {
	foodID, ok := h.pathID(w, r, "foodId")
	if !ok {
		return
	}

	stats, err := h.foodStatsHandler.Handle(query.FoodStatsQuery{FoodID: foodID})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, stats)
}

// RestaurantStats handles GET /api/food-reviews/food-review-details
func (h *FoodReviewHandler) RestaurantStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.restaurantStatsHandler.Handle(query.RestaurantStatsQuery{})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, stats)
}

// CreateReview handles POST /api/food-reviews
func (h *FoodReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID uint   `json:"user_id"`
		FoodID uint   `json:"food_id"`
		Rating int    `json:"rating"`
		Text   string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	review, err := h.createHandler.Handle(command.CreateReviewCommand{
		UserID: req.UserID,
		FoodID: req.FoodID,
		Rating: req.Rating,
		Text:   req.Text,
	})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.publish(r.Context(), kafka.ReviewEvent{
		EventType: kafka.EventTypeReviewCreated,
		ReviewID:  review.ID,
		FoodID:    review.FoodID,
		UserID:    review.UserID,
		Rating:    review.Rating,
	})

	h.respondJSON(w, http.StatusCreated, review)
}

// DeleteReview handles DELETE /api/food-reviews/{id}. The requesting user_id
// comes in the body; a delete of someone else's review reports not found.
func (h *FoodReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		UserID uint `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	foodID, err := h.deleteHandler.Handle(command.DeleteReviewCommand{ID: id, UserID: req.UserID})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.publish(r.Context(), kafka.ReviewEvent{
		EventType: kafka.EventTypeReviewDeleted,
		ReviewID:  id,
		FoodID:    foodID,
		UserID:    req.UserID,
	})

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Review deleted successfully"})
}

// HasLiked handles GET /api/food-reviews/{reviewId}/like/{userId}
func (h *FoodReviewHandler) HasLiked(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := h.pathID(w, r, "reviewId")
	if !ok {
		return
	}
	userID, ok := h.pathID(w, r, "userId")
	if !ok {
		return
	}

	liked, err := h.hasLikedHandler.Handle(query.HasLikedQuery{ReviewID: reviewID, UserID: userID})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

// AddLike handles POST /api/food-reviews/{reviewId}/like
func (h *FoodReviewHandler) AddLike(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := h.pathID(w, r, "reviewId")
	if !ok {
		return
	}
	userID, ok := h.bodyUserID(w, r)
	if !ok {
		return
	}

	result, err := h.addLikeHandler.Handle(command.AddLikeCommand{ReviewID: reviewID, UserID: userID})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.publish(r.Context(), kafka.ReviewEvent{
		EventType: kafka.EventTypeReviewLiked,
		ReviewID:  reviewID,
		FoodID:    result.FoodID,
		UserID:    userID,
		Liked:     true,
	})

	h.respondJSON(w, http.StatusOK, result)
}

// RemoveLike handles DELETE /api/food-reviews/{reviewId}/like
func (h *FoodReviewHandler) RemoveLike(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := h.pathID(w, r, "reviewId")
	if !ok {
		return
	}
	userID, ok := h.bodyUserID(w, r)
	if !ok {
		return
	}

	result, err := h.removeLikeHandler.Handle(command.RemoveLikeCommand{ReviewID: reviewID, UserID: userID})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

// ToggleLike handles POST /api/food-reviews/{reviewId}/toggle-like
func (h *FoodReviewHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := h.pathID(w, r, "reviewId")
	if !ok {
		return
	}
	userID, ok := h.bodyUserID(w, r)
	if !ok {
		return
	}

	result, err := h.toggleLikeHandler.Handle(command.ToggleLikeCommand{ReviewID: reviewID, UserID: userID})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.publish(r.Context(), kafka.ReviewEvent{
		EventType: kafka.EventTypeReviewLiked,
		ReviewID:  reviewID,
		FoodID:    result.FoodID,
		UserID:    userID,
		Liked:     result.Liked,
	})

	h.respondJSON(w, http.StatusOK, result)
}

// ReviewLikes handles GET /api/food-reviews/{reviewId}/likes. An optional
// user_id query parameter adds whether that user is among the likers.
func (h *FoodReviewHandler) ReviewLikes(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := h.pathID(w, r, "reviewId")
	if !ok {
		return
	}
	userID, ok := h.queryUserID(w, r)
	if !ok {
		return
	}

	status, err := h.reviewLikesHandler.Handle(query.ReviewLikesQuery{ReviewID: reviewID, UserID: userID})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, status)
}

// HealthCheck handles GET /health
func (h *FoodReviewHandler) HealthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			h.respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}

		h.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

// publish sends a review event when a publisher is configured
func (h *FoodReviewHandler) publish(ctx context.Context, event kafka.ReviewEvent) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishReviewEvent(ctx, event); err != nil {
		logger.Error(ctx).
			Err(err).
			Str("event_type", event.EventType).
			Msg("Failed to publish review event")
	}
}

// pathID parses a numeric path variable, responding 400 on garbage
func (h *FoodReviewHandler) pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars[name], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// queryUserID parses the optional user_id query parameter. Absent means
// userID 0 (no caller context); a present but non-numeric value is a 400.
func (h *FoodReviewHandler) queryUserID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid user_id")
		return 0, false
	}
	return uint(id), true
}

// bodyUserID decodes the {"user_id": n} request body used by like mutations
func (h *FoodReviewHandler) bodyUserID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	var req struct {
		UserID uint `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return 0, false
	}
	if req.UserID == 0 {
		h.respondError(w, http.StatusBadRequest, "user_id is required")
		return 0, false
	}
	return req.UserID, true
}

// respondDomainError maps domain errors onto the HTTP status taxonomy.
// Unknown errors collapse to 500 with the detail logged, not returned.
func (h *FoodReviewHandler) respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrReviewNotFound), errors.Is(err, domain.ErrFoodNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyLiked):
		h.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidRating), errors.Is(err, domain.ErrInvalidArgument):
		h.respondError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error(r.Context()).
			Err(err).
			Str("path", r.URL.Path).
			Msg("Unhandled store error")
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// respondJSON sends a JSON response
func (h *FoodReviewHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *FoodReviewHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all review routes under /api/food-reviews
func (h *FoodReviewHandler) RegisterRoutes(router *mux.Router) {
	r := router.PathPrefix("/api/food-reviews").Subrouter()

	// Static paths are registered before the numeric {id} matcher
	r.HandleFunc("/food-review-details", h.metricsMiddleware("/food-reviews/food-review-details", h.RestaurantStats)).Methods("GET")
	r.HandleFunc("/food/{foodId:[0-9]+}/stats", h.metricsMiddleware("/food-reviews/food/{foodId}/stats", h.FoodStats)).Methods("GET")
	r.HandleFunc("/food/{foodId:[0-9]+}/with-likes", h.metricsMiddleware("/food-reviews/food/{foodId}/with-likes", h.ReviewsForFoodWithLikes)).Methods("GET")
	r.HandleFunc("/food/{foodId:[0-9]+}", h.metricsMiddleware("/food-reviews/food/{foodId}", h.ReviewsForFood)).Methods("GET")
	r.HandleFunc("/restaurant/{restaurantId:[0-9]+}", h.metricsMiddleware("/food-reviews/restaurant/{restaurantId}", h.ReviewsForRestaurant)).Methods("GET")

	r.HandleFunc("", h.metricsMiddleware("/food-reviews", h.ListReviews)).Methods("GET")
	r.HandleFunc("", h.metricsMiddleware("/food-reviews", h.CreateReview)).Methods("POST")
	r.HandleFunc("/{id:[0-9]+}", h.metricsMiddleware("/food-reviews/{id}", h.GetReview)).Methods("GET")
	r.HandleFunc("/{id:[0-9]+}", h.metricsMiddleware("/food-reviews/{id}", h.DeleteReview)).Methods("DELETE")

	r.HandleFunc("/{reviewId:[0-9]+}/like/{userId:[0-9]+}", h.metricsMiddleware("/food-reviews/{reviewId}/like/{userId}", h.HasLiked)).Methods("GET")
	r.HandleFunc("/{reviewId:[0-9]+}/like", h.metricsMiddleware("/food-reviews/{reviewId}/like", h.AddLike)).Methods("POST")
	r.HandleFunc("/{reviewId:[0-9]+}/like", h.metricsMiddleware("/food-reviews/{reviewId}/like", h.RemoveLike)).Methods("DELETE")
	r.HandleFunc("/{reviewId:[0-9]+}/toggle-like", h.metricsMiddleware("/food-reviews/{reviewId}/toggle-like", h.ToggleLike)).Methods("POST")
	r.HandleFunc("/{reviewId:[0-9]+}/likes", h.metricsMiddleware("/food-reviews/{reviewId}/likes", h.ReviewLikes)).Methods("GET")
}

// RegisterHealthCheck registers the health check endpoint
func (h *FoodReviewHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", h.HealthCheck(db)).Methods("GET")
}
