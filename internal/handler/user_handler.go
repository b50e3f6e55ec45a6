package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"authapp/internal/errors"
	"authapp/internal/service"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	userService   service.UserService
	uploadService service.UploadService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, uploadService service.UploadService) *UserHandler {
	return &UserHandler{userService: userService, uploadService: uploadService}
}

// UserDetailsRequest represents a profile update.
type UserDetailsRequest struct {
	FullName     string `json:"fullName" validate:"required"`
	Gender       string `json:"gender" validate:"required,oneof=male female other prefer-not-to-say"`
	DateOfBirth  string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	FbLink       string `json:"fbLink" validate:"omitempty,url"`
	LinkedinLink string `json:"linkedinLink" validate:"omitempty,url"`
	Image        string `json:"image" validate:"omitempty,url"`
}

// GetDetails godoc
// @Summary Read the signed-in user's profile
// @Tags user
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /user/details [get]
func (h *UserHandler) GetDetails(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	userID, err := claims.Subject()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
	}

	user, err := h.userService.Get(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateDetails godoc
// @Summary Update the signed-in user's profile
// @Tags user
// @Accept json
// @Produce json
// @Param request body UserDetailsRequest true "Profile fields"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /user/details [post]
func (h *UserHandler) UpdateDetails(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	userID, err := claims.Subject()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
	}

	var req UserDetailsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	details := service.UserDetails{
		FullName:     req.FullName,
		Gender:       req.Gender,
		FbLink:       req.FbLink,
		LinkedinLink: req.LinkedinLink,
		Image:        req.Image,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid dateOfBirth")
		}
		details.DateOfBirth = &dob
	}

	user, err := h.userService.UpdateDetails(c.Request().Context(), userID, details)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "user details updated successfully",
		"user":    user,
	})
}

// Upload godoc
// @Summary Upload a profile image
// @Tags user
// @Accept mpfd
// @Produce json
// @Param image formData file true "Image file"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /upload [post]
func (h *UserHandler) Upload(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	userID, err := claims.Subject()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no file uploaded")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read upload")
	}
	defer file.Close()

	url, err := h.uploadService.Upload(c.Request().Context(), file, fileHeader)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to upload image",
			Code:  "UPLOAD_FAILED",
		})
	}

	if _, err := h.userService.SetImage(c.Request().Context(), userID, url); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
