package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"authapp/internal/errors"
	"authapp/internal/service"
)

// PostHandler handles post endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePostRequest represents a post creation request.
type CreatePostRequest struct {
	Name string `json:"name" validate:"required"`
}

// Create godoc
// @Summary Create a post owned by the signed-in user
// @Tags posts
// @Accept json
// @Produce json
// @Param request body CreatePostRequest true "Post payload"
// @Success 201 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	userID, err := claims.Subject()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
	}

	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.Create(c.Request().Context(), userID, req.Name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, post)
}

// List godoc
// @Summary List the signed-in user's posts, newest first
// @Tags posts
// @Produce json
// @Success 200 {array} model.Post
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	userID, err := claims.Subject()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
	}

	posts, err := h.postService.ListMine(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, posts)
}

// Latest godoc
// @Summary Return the signed-in user's most recent post
// @Tags posts
// @Produce json
// @Success 200 {object} model.Post
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /posts/latest [get]
func (h *PostHandler) Latest(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	userID, err := claims.Subject()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
	}

	post, err := h.postService.LatestMine(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	if post == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{"post": nil})
	}

	return c.JSON(http.StatusOK, post)
}
