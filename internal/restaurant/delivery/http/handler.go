package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/polybites/polybites-backend/internal/restaurant/domain"
	"github.com/polybites/polybites-backend/internal/restaurant/usecase/query"
	"github.com/polybites/polybites-backend/pkg/logger"
)

// RestaurantHandler handles HTTP requests for the restaurants/foods read side
type RestaurantHandler struct {
	listHandler      *query.ListRestaurantsHandler
	getHandler       *query.GetRestaurantHandler
	listFoodsHandler *query.ListFoodsHandler
	getFoodHandler   *query.GetFoodHandler
	menuHandler      *query.FoodsForRestaurantHandler

	repo           domain.RestaurantRepository
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewRestaurantHandler creates a new restaurant handler
func NewRestaurantHandler(repo domain.RestaurantRepository) *RestaurantHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restaurant_service_requests_total",
			Help: "Total number of requests to the restaurant read side",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "restaurant_service_request_duration_seconds",
			Help:    "Duration of restaurant read side requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &RestaurantHandler{
		listHandler:      query.NewListRestaurantsHandler(repo),
		getHandler:       query.NewGetRestaurantHandler(repo),
		listFoodsHandler: query.NewListFoodsHandler(repo),
		getFoodHandler:   query.NewGetFoodHandler(repo),
		menuHandler:      query.NewFoodsForRestaurantHandler(repo),
		repo:             repo,
		requestCounter:   requestCounter,
		requestLatency:   requestLatency,
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
func (h *RestaurantHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// ListRestaurants handles GET /api/restaurants
func (h *RestaurantHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.listHandler.Handle(query.ListRestaurantsQuery{})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, restaurants)
}

// GetRestaurant handles GET /api/restaurants/{id}
func (h *RestaurantHandler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	restaurant, err := h.getHandler.Handle(query.GetRestaurantQuery{ID: id})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, restaurant)
}

// ListFoods handles GET /api/foods
func (h *RestaurantHandler) ListFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := h.listFoodsHandler.Handle(query.ListFoodsQuery{})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, foods)
}

// GetFood handles GET /api/foods/{id}
func (h *RestaurantHandler) GetFood(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	food, err := h.getFoodHandler.Handle(query.GetFoodQuery{ID: id})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, food)
}

// FoodsForRestaurant handles GET /api/foods/restaurant/{restaurantId}
func (h *RestaurantHandler) FoodsForRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := h.pathID(w, r, "restaurantId")
	if !ok {
		return
	}

	foods, err := h.menuHandler.Handle(query.FoodsForRestaurantQuery{RestaurantID: restaurantID})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, foods)
}

// pathID parses a numeric path variable, responding 400 on garbage
func (h *RestaurantHandler) pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars[name], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// respondDomainError maps domain errors onto HTTP statuses
func (h *RestaurantHandler) respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrRestaurantNotFound), errors.Is(err, domain.ErrFoodNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	default:
		logger.Error(r.Context()).
			Err(err).
			Str("path", r.URL.Path).
			Msg("Unhandled store error")
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// respondJSON sends a JSON response
func (h *RestaurantHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *RestaurantHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers restaurant and food routes under /api
func (h *RestaurantHandler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/restaurants", h.metricsMiddleware("/restaurants", h.ListRestaurants)).Methods("GET")
	api.HandleFunc("/restaurants/{id:[0-9]+}", h.metricsMiddleware("/restaurants/{id}", h.GetRestaurant)).Methods("GET")

	api.HandleFunc("/foods", h.metricsMiddleware("/foods", h.ListFoods)).Methods("GET")
	api.HandleFunc("/foods/restaurant/{restaurantId:[0-9]+}", h.metricsMiddleware("/foods/restaurant/{restaurantId}", h.FoodsForRestaurant)).Methods("GET")
	api.HandleFunc("/foods/{id:[0-9]+}", h.metricsMiddleware("/foods/{id}", h.GetFood)).Methods("GET")
}
