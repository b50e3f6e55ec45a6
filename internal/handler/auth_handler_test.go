package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "authapp/internal/errors"
	"authapp/internal/model"
	"authapp/internal/oauth"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, name, email, password string) (*model.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) OAuthLogin(ctx context.Context, profile *oauth.Profile) (string, *model.User, error) {
	args := m.Called(ctx, profile)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) ResendVerification(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) CheckEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.v.Struct(i)
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Signup", mock.Anything, "Alice", "alice@example.com", "Secret123!").
			Return(&model.User{ID: uuid.New(), Email: "alice@example.com"}, nil)

		h := NewAuthHandler(mockSvc, nil, nil)
		c, rec := newTestContext(http.MethodPost, "/api/auth/signup",
			`{"name":"Alice","email":"alice@example.com","password":"Secret123!"}`)

		assert.NoError(t, h.Signup(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "userId")
		mockSvc.AssertExpectations(t)
	})

	t.Run("email taken", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Signup", mock.Anything, "Alice", "taken@example.com", "Secret123!").
			Return(nil, apperrors.ErrEmailTaken)

		h := NewAuthHandler(mockSvc, nil, nil)
		c, _ := newTestContext(http.MethodPost, "/api/auth/signup",
			`{"name":"Alice","email":"taken@example.com","password":"Secret123!"}`)

		err := h.Signup(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusConflict, httpErr.Code)
	})

	t.Run("invalid payload", func(t *testing.T) {
		h := NewAuthHandler(new(MockAuthService), nil, nil)
		c, _ := newTestContext(http.MethodPost, "/api/auth/signup",
			`{"name":"Alice","email":"not-an-email","password":"x"}`)

		err := h.Signup(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestAuthHandler_Signin(t *testing.T) {
	tests := []struct {
		name         string
		serviceError error
		wantStatus   int
	}{
		{name: "unknown email", serviceError: apperrors.ErrUnknownEmail, wantStatus: http.StatusUnauthorized},
		{name: "wrong password", serviceError: apperrors.ErrInvalidPassword, wantStatus: http.StatusUnauthorized},
		{name: "social only account", serviceError: apperrors.ErrSocialAccountOnly, wantStatus: http.StatusForbidden},
		{name: "unverified email", serviceError: apperrors.ErrEmailNotVerified, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockAuthService)
			mockSvc.On("Login", mock.Anything, "a@x.com", "Secret123!").Return("", nil, tt.serviceError)

			h := NewAuthHandler(mockSvc, nil, nil)
			c, _ := newTestContext(http.MethodPost, "/api/auth/signin",
				`{"email":"a@x.com","password":"Secret123!"}`)

			err := h.Signin(c)
			httpErr, ok := err.(*echo.HTTPError)
			assert.True(t, ok)
			assert.Equal(t, tt.wantStatus, httpErr.Code)
		})
	}

	t.Run("success returns session", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Login", mock.Anything, "a@x.com", "Secret123!").
			Return("session-token", &model.User{ID: uuid.New(), Email: "a@x.com"}, nil)

		h := NewAuthHandler(mockSvc, nil, nil)
		c, rec := newTestContext(http.MethodPost, "/api/auth/signin",
			`{"email":"a@x.com","password":"Secret123!"}`)

		assert.NoError(t, h.Signin(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "session-token")
	})
}

func TestAuthHandler_VerifyEmail(t *testing.T) {
	t.Run("success redirects to signin", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("VerifyEmail", mock.Anything, "tok").Return(&model.User{IsVerified: true}, nil)

		h := NewAuthHandler(mockSvc, nil, nil)
		c, rec := newTestContext(http.MethodGet, "/api/auth/verify-email?token=tok", "")

		assert.NoError(t, h.VerifyEmail(c))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/signin?verified=true", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("already verified still redirects", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("VerifyEmail", mock.Anything, "tok").Return(nil, apperrors.ErrAlreadyVerified)

		h := NewAuthHandler(mockSvc, nil, nil)
		c, rec := newTestContext(http.MethodGet, "/api/auth/verify-email?token=tok", "")

		assert.NoError(t, h.VerifyEmail(c))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/signin?verified=already", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("unknown token", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("VerifyEmail", mock.Anything, "bogus").Return(nil, apperrors.ErrInvalidToken)

		h := NewAuthHandler(mockSvc, nil, nil)
		c, _ := newTestContext(http.MethodGet, "/api/auth/verify-email?token=bogus", "")

		err := h.VerifyEmail(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		h := NewAuthHandler(new(MockAuthService), nil, nil)
		c, _ := newTestContext(http.MethodGet, "/api/auth/verify-email", "")

		err := h.VerifyEmail(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestAuthHandler_ResendVerification(t *testing.T) {
	t.Run("sent", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("ResendVerification", mock.Anything, "a@x.com").Return(nil)

		h := NewAuthHandler(mockSvc, nil, nil)
		c, rec := newTestContext(http.MethodPost, "/api/auth/resend-verification", `{"email":"a@x.com"}`)

		assert.NoError(t, h.ResendVerification(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("already verified", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("ResendVerification", mock.Anything, "a@x.com").Return(apperrors.ErrAlreadyVerified)

		h := NewAuthHandler(mockSvc, nil, nil)
		c, _ := newTestContext(http.MethodPost, "/api/auth/resend-verification", `{"email":"a@x.com"}`)

		err := h.ResendVerification(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestAuthHandler_CheckEmail(t *testing.T) {
	mockSvc := new(MockAuthService)
	mockSvc.On("CheckEmail", mock.Anything, "a@x.com").Return(true, nil)

	h := NewAuthHandler(mockSvc, nil, nil)
	c, rec := newTestContext(http.MethodGet, "/api/auth/check-email?email=a@x.com", "")

	assert.NoError(t, h.CheckEmail(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"exists":true}`, rec.Body.String())
}

func TestAuthHandler_OAuthRedirect_UnknownProvider(t *testing.T) {
	h := NewAuthHandler(new(MockAuthService), oauth.Registry{}, nil)
	c, _ := newTestContext(http.MethodGet, "/api/auth/facebook", "")
	c.SetParamNames("provider")
	c.SetParamValues("facebook")

	err := h.OAuthRedirect(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}
