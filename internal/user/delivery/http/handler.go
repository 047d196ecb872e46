package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mahir/lifelessons/internal/user/domain"
	"github.com/mahir/lifelessons/internal/user/usecase/command"
	"github.com/mahir/lifelessons/internal/user/usecase/query"
	"github.com/mahir/lifelessons/pkg/guard"
	"github.com/mahir/lifelessons/pkg/logger"
)

// UserHandler handles HTTP requests for users using CQRS pattern
type UserHandler struct {
	// Command handlers
	syncHandler *command.SyncUserHandler

	// Query handlers
	profileHandler *query.GetProfileHandler

	syncCounter *prometheus.CounterVec
}

// NewUserHandler creates a new user handler using dependency injection
func NewUserHandler(syncHandler *command.SyncUserHandler, profileHandler *query.GetProfileHandler) *UserHandler {
	syncCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_syncs_total",
			Help: "Total number of identity sync requests by outcome",
		},
		[]string{"outcome"},
	)
	prometheus.MustRegister(syncCounter)

	return &UserHandler{
		syncHandler:    syncHandler,
		profileHandler: profileHandler,
		syncCounter:    syncCounter,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SyncUser handles POST /users/sync. Identity fields come from the verified
// token; the body only carries profile extras.
func (h *UserHandler) SyncUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject, _ := guard.Subject(ctx)
	email, _ := guard.Email(ctx)

	var req struct {
		Name     string `json:"name"`
		PhotoURL string `json:"photo_url"`
	}
	// An empty body is fine, the token alone is enough to sync
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	cmd := command.SyncUserCommand{
		Subject:  subject,
		Email:    email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
	}

	result, err := h.syncHandler.Handle(ctx, cmd)
	if err != nil {
		h.syncCounter.WithLabelValues("error").Inc()
		logger.Error(ctx).Err(err).Msg("Failed to sync user")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to sync user",
		})
		return
	}

	status := http.StatusOK
	message := "User already registered"
	if result.Created {
		h.syncCounter.WithLabelValues("created").Inc()
		status = http.StatusCreated
		message = "User registered successfully"
	} else {
		h.syncCounter.WithLabelValues("existing").Inc()
	}

	respondJSON(w, status, Response{
		Success: true,
		Message: message,
		Data:    result,
	})
}

// GetMe handles GET /api/users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject, ok := guard.Subject(ctx)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{
			Success: false,
			Error:   "Identity not found in context",
		})
		return
	}

	user, err := h.profileHandler.Handle(ctx, query.GetProfileQuery{Subject: subject})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, Response{
				Success: false,
				Error:   "User not registered, sync first",
			})
			return
		}
		logger.Error(ctx).Err(err).Msg("Failed to get profile")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to get profile",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    user,
	})
}

// RegisterRoutes registers all user routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/users/sync", guard.Chain(h.SyncUser, guard.Authenticate)).Methods("POST")
	router.HandleFunc("/api/users/me", guard.Chain(h.GetMe, guard.Authenticate)).Methods("GET")
}

// RegisterHealthCheck registers health check endpoint
func (h *UserHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Service is healthy",
		})
	}).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
