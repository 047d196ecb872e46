package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mahir/lifelessons/internal/lesson/domain"
	"github.com/mahir/lifelessons/internal/lesson/usecase/command"
	"github.com/mahir/lifelessons/internal/lesson/usecase/query"
	"github.com/mahir/lifelessons/internal/trending"
	userdomain "github.com/mahir/lifelessons/internal/user/domain"
	"github.com/mahir/lifelessons/kafka"
	"github.com/mahir/lifelessons/pkg/guard"
	"github.com/mahir/lifelessons/pkg/logger"
)

// LessonHandler handles HTTP requests for lessons using CQRS pattern
type LessonHandler struct {
	// Command handlers
	createHandler         *command.CreateLessonHandler
	deleteHandler         *command.DeleteLessonHandler
	toggleLikeHandler     *command.ToggleLikeHandler
	toggleFavoriteHandler *command.ToggleFavoriteHandler

	// Query handlers
	getHandler           *query.GetLessonHandler
	listHandler          *query.ListLessonsHandler
	checkFavoriteHandler *query.CheckFavoriteHandler
	listFavoritesHandler *query.ListFavoritesHandler
	trendingHandler      *query.TrendingHandler
	driftHandler         *query.CounterDriftHandler

	kafkaPublisher *kafka.Publisher

	toggleCounter *prometheus.CounterVec
}

// NewLessonHandler creates a new lesson handler using dependency injection
func NewLessonHandler(
	createHandler *command.CreateLessonHandler,
	deleteHandler *command.DeleteLessonHandler,
	toggleLikeHandler *command.ToggleLikeHandler,
	toggleFavoriteHandler *command.ToggleFavoriteHandler,
	getHandler *query.GetLessonHandler,
	listHandler *query.ListLessonsHandler,
	checkFavoriteHandler *query.CheckFavoriteHandler,
	listFavoritesHandler *query.ListFavoritesHandler,
	trendingHandler *query.TrendingHandler,
	driftHandler *query.CounterDriftHandler,
	kafkaPublisher *kafka.Publisher,
) *LessonHandler {
	toggleCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lesson_engagement_toggles_total",
			Help: "Total number of engagement toggles by kind and resulting state",
		},
		[]string{"kind", "active"},
	)
	prometheus.MustRegister(toggleCounter)

	return &LessonHandler{
		createHandler:         createHandler,
		deleteHandler:         deleteHandler,
		toggleLikeHandler:     toggleLikeHandler,
		toggleFavoriteHandler: toggleFavoriteHandler,
		getHandler:            getHandler,
		listHandler:           listHandler,
		checkFavoriteHandler:  checkFavoriteHandler,
		listFavoritesHandler:  listFavoritesHandler,
		trendingHandler:       trendingHandler,
		driftHandler:          driftHandler,
		kafkaPublisher:        kafkaPublisher,
		toggleCounter:         toggleCounter,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateLesson handles POST /api/lessons
func (h *LessonHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject, _ := guard.Subject(ctx)

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
		ImageURL    string `json:"image_url"`
		IsPremium   bool   `json:"is_premium"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.CreateLessonCommand{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		ImageURL:       req.ImageURL,
		IsPremium:      req.IsPremium,
		CreatorSubject: subject,
	}

	lesson, err := h.createHandler.Handle(ctx, cmd)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to create lesson")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Lesson created successfully",
		Data:    lesson,
	})
}

// GetLesson handles GET /api/lessons/{id}
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := lessonID(w, r)
	if !ok {
		return
	}

	subject, _ := guard.Subject(ctx)
	role, _ := guard.Role(ctx)

	q := query.GetLessonQuery{LessonID: id, Caller: subject, Role: role}
	lesson, err := h.getHandler.Handle(ctx, q)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			respondJSON(w, http.StatusNotFound, Response{
				Success: false,
				Error:   "Lesson not found",
			})
		case errors.Is(err, query.ErrPremiumRequired):
			respondJSON(w, http.StatusForbidden, Response{
				Success: false,
				Error:   "Premium entitlement required",
			})
		default:
			logger.Error(ctx).Err(err).Uint("lesson_id", id).Msg("Failed to get lesson")
			respondJSON(w, http.StatusInternalServerError, Response{
				Success: false,
				Error:   "Failed to get lesson",
			})
		}
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    lesson,
	})
}

// ListLessons handles GET /api/lessons
func (h *LessonHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	lessons, err := h.listHandler.Handle(ctx, query.ListLessonsQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to list lessons")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list lessons",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"lessons": lessons,
			"total":   len(lessons),
		},
	})
}

// DeleteLesson handles DELETE /api/lessons/{id}
func (h *LessonHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := lessonID(w, r)
	if !ok {
		return
	}

	subject, _ := guard.Subject(ctx)
	role, _ := guard.Role(ctx)

	cmd := command.DeleteLessonCommand{
		LessonID: id,
		Caller:   subject,
		IsAdmin:  role == userdomain.RoleAdmin,
	}

	if err := h.deleteHandler.Handle(ctx, cmd); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			respondJSON(w, http.StatusNotFound, Response{
				Success: false,
				Error:   "Lesson not found",
			})
		case errors.Is(err, command.ErrNotOwner):
			respondJSON(w, http.StatusForbidden, Response{
				Success: false,
				Error:   "Only the creator may delete this lesson",
			})
		default:
			logger.Error(ctx).Err(err).Uint("lesson_id", id).Msg("Failed to delete lesson")
			respondJSON(w, http.StatusInternalServerError, Response{
				Success: false,
				Error:   "Failed to delete lesson",
			})
		}
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Lesson deleted successfully",
	})
}

// ToggleLike handles POST /api/lessons/{id}/like
func (h *LessonHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := lessonID(w, r)
	if !ok {
		return
	}
	subject, _ := guard.Subject(ctx)

	liked, err := h.toggleLikeHandler.Handle(ctx, command.ToggleLikeCommand{LessonID: id, Subject: subject})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, Response{
				Success: false,
				Error:   "Lesson not found",
			})
			return
		}
		logger.Error(ctx).Err(err).Uint("lesson_id", id).Msg("Failed to toggle like")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to toggle like",
		})
		return
	}

	h.toggleCounter.WithLabelValues(trending.KindLike, strconv.FormatBool(liked)).Inc()
	h.publishEngagement(ctx, id, subject, trending.KindLike, liked)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"isLiked": liked},
	})
}

// ToggleFavorite handles POST /api/lessons/{id}/favorite
func (h *LessonHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := lessonID(w, r)
	if !ok {
		return
	}
	subject, _ := guard.Subject(ctx)

	favorited, err := h.toggleFavoriteHandler.Handle(ctx, command.ToggleFavoriteCommand{LessonID: id, Subject: subject})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, Response{
				Success: false,
				Error:   "Lesson not found",
			})
			return
		}
		logger.Error(ctx).Err(err).Uint("lesson_id", id).Msg("Failed to toggle favorite")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to toggle favorite",
		})
		return
	}

	h.toggleCounter.WithLabelValues(trending.KindFavorite, strconv.FormatBool(favorited)).Inc()
	h.publishEngagement(ctx, id, subject, trending.KindFavorite, favorited)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"isFavorite": favorited},
	})
}

// CheckFavorite handles GET /api/lessons/{id}/favorite
func (h *LessonHandler) CheckFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := lessonID(w, r)
	if !ok {
		return
	}
	subject, _ := guard.Subject(ctx)

	favorited, err := h.checkFavoriteHandler.Handle(ctx, query.CheckFavoriteQuery{LessonID: id, Subject: subject})
	if err != nil {
		logger.Error(ctx).Err(err).Uint("lesson_id", id).Msg("Failed to check favorite")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to check favorite",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"isFavorite": favorited},
	})
}

// ListFavorites handles GET /api/lessons/favorites
func (h *LessonHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject, _ := guard.Subject(ctx)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	lessons, err := h.listFavoritesHandler.Handle(ctx, query.ListFavoritesQuery{
		Subject: subject,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to list favorites")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list favorites",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"lessons": lessons,
			"total":   len(lessons),
		},
	})
}

// Trending handles GET /api/lessons/trending
func (h *LessonHandler) Trending(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	lessons, err := h.trendingHandler.Handle(ctx, query.TrendingQuery{Limit: limit})
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to get trending lessons")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to get trending lessons",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"lessons": lessons,
			"total":   len(lessons),
		},
	})
}

// ConsistencyReport handles GET /api/admin/lessons/consistency
func (h *LessonHandler) ConsistencyReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	drifts, err := h.driftHandler.Handle(ctx)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to build consistency report")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to build consistency report",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"drift":      drifts,
			"drift_rows": len(drifts),
		},
	})
}

// publishEngagement emits the toggle event. Publishing is best-effort: the
// database write already committed, so a broker failure only delays the
// trending ranking.
func (h *LessonHandler) publishEngagement(ctx context.Context, id uint, subject, kind string, active bool) {
	if h.kafkaPublisher == nil {
		return
	}
	event := kafka.LessonEngagedEvent{
		LessonID: id,
		Subject:  subject,
		Kind:     kind,
		Active:   active,
	}
	if err := h.kafkaPublisher.PublishLessonEngaged(ctx, event); err != nil {
		logger.Error(ctx).
			Err(err).
			Uint("lesson_id", id).
			Str("kind", kind).
			Msg("Failed to publish engagement event")
	}
}

// RegisterRoutes registers all lesson routes. Literal paths are registered
// before the {id} pattern so mux never shadows them.
func (h *LessonHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/api/lessons/trending", h.Trending).Methods("GET")
	router.HandleFunc("/api/lessons", h.ListLessons).Methods("GET")

	// Authenticated user routes (any logged-in user)
	router.HandleFunc("/api/lessons/favorites", guard.Chain(h.ListFavorites, guard.Authenticate)).Methods("GET")
	router.HandleFunc("/api/lessons", guard.Chain(h.CreateLesson, guard.Authenticate)).Methods("POST")
	router.HandleFunc("/api/lessons/{id}", guard.Chain(h.GetLesson, guard.Authenticate)).Methods("GET")
	router.HandleFunc("/api/lessons/{id}", guard.Chain(h.DeleteLesson, guard.Authenticate)).Methods("DELETE")
	router.HandleFunc("/api/lessons/{id}/like", guard.Chain(h.ToggleLike, guard.Authenticate)).Methods("POST")
	router.HandleFunc("/api/lessons/{id}/favorite", guard.Chain(h.ToggleFavorite, guard.Authenticate)).Methods("POST")
	router.HandleFunc("/api/lessons/{id}/favorite", guard.Chain(h.CheckFavorite, guard.Authenticate)).Methods("GET")

	// Admin routes (require admin role)
	router.HandleFunc("/api/admin/lessons/consistency", guard.Chain(h.ConsistencyReport, guard.Authenticate, guard.RequireRole(userdomain.RoleAdmin))).Methods("GET")
}

// RegisterHealthCheck registers health check endpoint
func (h *LessonHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
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

// lessonID extracts and validates the {id} path variable.
func lessonID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil || id == 0 {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid lesson ID",
		})
		return 0, false
	}
	return uint(id), true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
