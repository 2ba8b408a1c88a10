package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"inkwell/internal/service"
)

// PostHandler handles post endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePostRequest represents a post creation request. AvailableAt is
// optional; omitting it publishes the post immediately.
type CreatePostRequest struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Summary     string     `json:"summary" validate:"max=500"`
	Content     string     `json:"content" validate:"required"`
	AvailableAt *time.Time `json:"available_at"`
}

// UpdatePostRequest represents a post update request.
type UpdatePostRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Summary string `json:"summary" validate:"max=500"`
	Content string `json:"content" validate:"required"`
}

// SchedulePostRequest represents a reschedule request.
type SchedulePostRequest struct {
	AvailableAt time.Time `json:"available_at" validate:"required"`
}

// CreatePost godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePostRequest true "Post data"
// @Success 201 {object} service.PostView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := service.CreatePostInput{
		Title:   req.Title,
		Summary: req.Summary,
		Content: req.Content,
	}
	if req.AvailableAt != nil {
		in.AvailableAt = *req.AvailableAt
	}

	post, err := h.postService.CreatePost(c.Request().Context(), claims.UserID, in)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPost godoc
// @Summary Get a post with author and like count
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} service.PostView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postService.GetPost(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, post)
}

// ListPosts godoc
// @Summary List posts
// @Tags posts
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Page offset"
// @Param include_scheduled query bool false "Include posts scheduled for the future"
// @Param user_id query int false "Filter by author"
// @Param search query string false "Match against title and summary"
// @Success 200 {object} service.PostPage
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) ListPosts(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	includeScheduled, _ := strconv.ParseBool(c.QueryParam("include_scheduled"))
	userID, _ := strconv.ParseUint(c.QueryParam("user_id"), 10, 32)

	page, err := h.postService.ListPosts(c.Request().Context(), service.ListPostsInput{
		Limit:            limit,
		Offset:           offset,
		IncludeScheduled: includeScheduled,
		UserID:           uint(userID),
		Search:           c.QueryParam("search"),
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, page)
}

// MostLiked godoc
// @Summary List the most liked posts within a recent window
// @Tags posts
// @Produce json
// @Param days query int false "Window in days (default 30)"
// @Param limit query int false "Maximum results (default 10)"
// @Success 200 {array} service.PostView
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts/most-liked [get]
func (h *PostHandler) MostLiked(c echo.Context) error {
	days, _ := strconv.Atoi(c.QueryParam("days"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	var window time.Duration
	if days > 0 {
		window = time.Duration(days) * 24 * time.Hour
	}

	posts, err := h.postService.MostLiked(c.Request().Context(), window, limit)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, posts)
}

// UpdatePost godoc
// @Summary Update a post (owner only)
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body UpdatePostRequest true "Post data"
// @Success 200 {object} service.PostView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [put]
func (h *PostHandler) UpdatePost(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.UpdatePost(c.Request().Context(), id, claims.UserID, service.UpdatePostInput{
		Title:   req.Title,
		Summary: req.Summary,
		Content: req.Content,
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, post)
}

// SchedulePost godoc
// @Summary Reschedule a post's availability (owner only)
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body SchedulePostRequest true "New availability"
// @Success 200 {object} service.PostView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id}/schedule [put]
func (h *PostHandler) SchedulePost(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req SchedulePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.SchedulePost(c.Request().Context(), id, claims.UserID, req.AvailableAt)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary Delete a post and its likes (owner only)
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [delete]
func (h *PostHandler) DeletePost(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.postService.DeletePost(c.Request().Context(), id, claims.UserID); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "post deleted"})
}
