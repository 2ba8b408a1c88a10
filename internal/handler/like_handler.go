package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"inkwell/internal/service"
)

// LikeHandler handles like endpoints.
type LikeHandler struct {
	likeService service.LikeService
}

// NewLikeHandler creates a new like handler.
func NewLikeHandler(likeService service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// ToggleLike godoc
// @Summary Toggle the caller's like on a post
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} service.ToggleResult
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /posts/{id}/like [post]
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.likeService.Toggle(c.Request().Context(), postID, claims.UserID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, result)
}

// RemoveLike godoc
// @Summary Deactivate a like (creator only)
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Like ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /likes/{id} [delete]
func (h *LikeHandler) RemoveLike(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	likeID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.likeService.Remove(c.Request().Context(), likeID, claims.UserID); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "like removed"})
}
