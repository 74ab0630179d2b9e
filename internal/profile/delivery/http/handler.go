package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/polybites/polybites-backend/internal/profile/domain"
	"github.com/polybites/polybites-backend/internal/profile/usecase/command"
	"github.com/polybites/polybites-backend/internal/profile/usecase/query"
	"github.com/polybites/polybites-backend/pkg/logger"
)

// ProfileHandler handles HTTP requests for profiles
type ProfileHandler struct {
	createHandler    *command.CreateProfileHandler
	getHandler       *query.GetProfileHandler
	getByAuthHandler *query.GetProfileByAuthHandler
	listHandler      *query.ListProfilesHandler

	repo           domain.ProfileRepository
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(repo domain.ProfileRepository) *ProfileHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_service_requests_total",
			Help: "Total number of requests to the profile service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "profile_service_request_duration_seconds",
			Help:    "Duration of profile service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &ProfileHandler{
		createHandler:    command.NewCreateProfileHandler(repo),
		getHandler:       query.NewGetProfileHandler(repo),
		getByAuthHandler: query.NewGetProfileByAuthHandler(repo),
		listHandler:      query.NewListProfilesHandler(repo),
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
func (h *ProfileHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// ListProfiles handles GET /api/profiles
func (h *ProfileHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.listHandler.Handle(query.ListProfilesQuery{})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, profiles)
}

// GetProfile handles GET /api/profiles/{id}
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid profile ID")
		return
	}

	profile, err := h.getHandler.Handle(query.GetProfileQuery{ID: uint(id)})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, profile)
}

// GetProfileByAuthID handles GET /api/profiles/auth/{authId}
func (h *ProfileHandler) GetProfileByAuthID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	authID := vars["authId"]

	profile, err := h.getByAuthHandler.Handle(query.GetProfileByAuthQuery{AuthID: authID})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, profile)
}

// CreateProfile handles POST /api/profiles
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		AuthID string `json:"auth_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.createHandler.Handle(command.CreateProfileCommand{
		Name:   req.Name,
		AuthID: req.AuthID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrProfileExists) {
			h.respondError(w, http.StatusConflict, err.Error())
			return
		}
		if err.Error() == "name is required" || err.Error() == "auth_id is required" {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondDomainError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, profile)
}

// respondDomainError maps domain errors onto HTTP statuses
func (h *ProfileHandler) respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrProfileExists):
		h.respondError(w, http.StatusConflict, err.Error())
	default:
		logger.Error(r.Context()).
			Err(err).
			Str("path", r.URL.Path).
			Msg("Unhandled store error")
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// respondJSON sends a JSON response
func (h *ProfileHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *ProfileHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers profile routes under /api/profiles
func (h *ProfileHandler) RegisterRoutes(router *mux.Router) {
	r := router.PathPrefix("/api/profiles").Subrouter()

	r.HandleFunc("", h.metricsMiddleware("/profiles", h.ListProfiles)).Methods("GET")
	r.HandleFunc("", h.metricsMiddleware("/profiles", h.CreateProfile)).Methods("POST")
	r.HandleFunc("/auth/{authId}", h.metricsMiddleware("/profiles/auth/{authId}", h.GetProfileByAuthID)).Methods("GET")
	r.HandleFunc("/{id:[0-9]+}", h.metricsMiddleware("/profiles/{id}", h.GetProfile)).Methods("GET")
}
