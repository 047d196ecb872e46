package http

import (
	nethttp "net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler nethttp.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// CreateLesson godoc
// @Summary Create a new lesson
// @Description Create a lesson owned by the authenticated user
// @Tags Lessons
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{title=string,description=string,category=string,image_url=string,is_premium=bool} true "Lesson data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/lessons [post]
func (h *LessonHandler) CreateLessonDoc() {}

// GetLesson godoc
// @Summary Get lesson by ID
// @Description Get a specific lesson; premium lessons require the entitlement
// @Tags Lessons
// @Security BearerAuth
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/lessons/{id} [get]
func (h *LessonHandler) GetLessonDoc() {}

// ListLessons godoc
// @Summary List lessons
// @Description Get a list of lessons with pagination
// @Tags Lessons
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=object{lessons=array,total=int}}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/lessons [get]
func (h *LessonHandler) ListLessonsDoc() {}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Description Delete a lesson (creator or admin)
// @Tags Lessons
// @Security BearerAuth
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/lessons/{id} [delete]
func (h *LessonHandler) DeleteLessonDoc() {}

// ToggleLike godoc
// @Summary Toggle like
// @Description Flip the caller's like on a lesson and return the new state
// @Tags Engagement
// @Security BearerAuth
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} object{success=bool,data=object{isLiked=bool}}
// @Failure 401 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/lessons/{id}/like [post]
func (h *LessonHandler) ToggleLikeDoc() {}

// ToggleFavorite godoc
// @Summary Toggle favorite
// @Description Flip the caller's favorite on a lesson and return the new state
// @Tags Engagement
// @Security BearerAuth
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} object{success=bool,data=object{isFavorite=bool}}
// @Failure 401 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/lessons/{id}/favorite [post]
func (h *LessonHandler) ToggleFavoriteDoc() {}

// CheckFavorite godoc
// @Summary Check favorite
// @Description Report whether the caller has favorited a lesson
// @Tags Engagement
// @Security BearerAuth
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} object{success=bool,data=object{isFavorite=bool}}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/lessons/{id}/favorite [get]
func (h *LessonHandler) CheckFavoriteDoc() {}

// ListFavorites godoc
// @Summary List favorites
// @Description Get the lessons the caller has favorited, newest first
// @Tags Engagement
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=object{lessons=array,total=int}}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/lessons/favorites [get]
func (h *LessonHandler) ListFavoritesDoc() {}

// Trending godoc
// @Summary Trending lessons
// @Description Get the highest-engagement lessons from the ranking
// @Tags Lessons
// @Produce json
// @Param limit query int false "Limit"
// @Success 200 {object} object{success=bool,data=object{lessons=array,total=int}}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/lessons/trending [get]
func (h *LessonHandler) TrendingDoc() {}

// ConsistencyReport godoc
// @Summary Engagement counter consistency report
// @Description List lessons whose cached counters drift from membership truth (Admin only)
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object{drift=array,drift_rows=int}}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/admin/lessons/consistency [get]
func (h *LessonHandler) ConsistencyReportDoc() {}
