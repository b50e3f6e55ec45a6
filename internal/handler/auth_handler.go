package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"authapp/internal/auth"
	"authapp/internal/errors"
	"authapp/internal/oauth"
	"authapp/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	providers   oauth.Registry
	states      auth.StateStoreInterface
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, providers oauth.Registry, states auth.StateStoreInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		providers:   providers,
		states:      states,
	}
}

// SignupRequest represents a credential signup request.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SigninRequest represents a credential sign-in request.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse carries the session token and the signed-in user.
type SessionResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// Signup godoc
// @Summary Register a credential account and send the verification email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "verification email sent, please check your inbox",
		"userId":  user.ID,
	})
}

// Signin godoc
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SigninRequest true "Credentials"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /auth/signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req SigninRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, SessionResponse{Token: token, User: user})
}

// VerifyEmail godoc
// @Summary Consume an email verification token
// @Tags auth
// @Produce json
// @Param token query string true "Verification token"
// @Success 302 {string} string "redirect to /signin"
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/verify-email [get]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "missing verification token",
			Code:  "MISSING_TOKEN",
		})
	}

	_, err := h.authService.VerifyEmail(c.Request().Context(), token)
	if err != nil {
		// A second click on an already-consumed link is not an error worth
		// showing; the account is verified either way.
		if err == errors.ErrAlreadyVerified {
			return c.Redirect(http.StatusFound, "/signin?verified=already")
		}
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.Redirect(http.StatusFound, "/signin?verified=true")
}

// ResendVerificationRequest asks for a fresh verification email.
type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResendVerification godoc
// @Summary Re-send the verification email with a fresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResendVerificationRequest true "Account email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(c echo.Context) error {
	var req ResendVerificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ResendVerification(c.Request().Context(), req.Email); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "verification email sent, please check your inbox",
	})
}

// CheckEmail godoc
// @Summary Check whether an email is registered
// @Tags auth
// @Produce json
// @Param email query string true "Email address"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/check-email [get]
func (h *AuthHandler) CheckEmail(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	exists, err := h.authService.CheckEmail(c.Request().Context(), email)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]bool{"exists": exists})
}

// OAuthRedirect godoc
// @Summary Start an OAuth sign-in with the named provider
// @Tags auth
// @Param provider path string true "Provider name (github, google)"
// @Success 302 {string} string "redirect to provider"
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/{provider} [get]
func (h *AuthHandler) OAuthRedirect(c echo.Context) error {
	provider, err := h.providers.Lookup(c.Param("provider"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	state, err := h.states.Issue(c.Request().Context(), provider.Name())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not start oauth flow")
	}

	return c.Redirect(http.StatusTemporaryRedirect, provider.AuthCodeURL(state))
}

// OAuthCallback godoc
// @Summary Complete an OAuth sign-in
// @Tags auth
// @Produce json
// @Param provider path string true "Provider name (github, google)"
// @Param code query string true "Authorization code"
// @Param state query string true "State nonce"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/{provider}/callback [get]
func (h *AuthHandler) OAuthCallback(c echo.Context) error {
	provider, err := h.providers.Lookup(c.Param("provider"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	ctx := c.Request().Context()

	if err := h.states.Take(ctx, provider.Name(), c.QueryParam("state")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid oauth state")
	}

	code := c.QueryParam("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing authorization code")
	}

	oauthToken, err := provider.Exchange(ctx, code)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authorization code exchange failed")
	}

	profile, err := provider.FetchProfile(ctx, oauthToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not fetch provider profile")
	}

	token, user, err := h.authService.OAuthLogin(ctx, profile)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, SessionResponse{Token: token, User: user})
}
