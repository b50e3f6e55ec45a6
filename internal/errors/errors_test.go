package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{ErrUnknownEmail, http.StatusUnauthorized, "UNKNOWN_EMAIL"},
		{ErrInvalidPassword, http.StatusUnauthorized, "INVALID_PASSWORD"},
		{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{ErrSocialAccountOnly, http.StatusForbidden, "SOCIAL_ACCOUNT_ONLY"},
		{ErrEmailNotVerified, http.StatusForbidden, "EMAIL_NOT_VERIFIED"},
		{ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN"},
		{ErrInvalidToken, http.StatusBadRequest, "INVALID_TOKEN"},
		{ErrAlreadyVerified, http.StatusBadRequest, "ALREADY_VERIFIED"},
		{ErrEmailSendFailed, http.StatusInternalServerError, "EMAIL_SEND_FAILED"},
		{ErrProviderEmailMissing, http.StatusBadRequest, "PROVIDER_EMAIL_MISSING"},
		{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{errors.New("something broke"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", ErrEmailNotVerified)
	httpErr := MapErrorToHTTP(wrapped)
	assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)
	assert.Equal(t, "EMAIL_NOT_VERIFIED", httpErr.Code)
}

func TestMapErrorToHTTP_InternalErrorHidesDetails(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("dsn user:pass@tcp leaked"))
	resp := httpErr.ToErrorResponse()
	assert.Equal(t, "internal server error", resp.Error)
	assert.NotContains(t, resp.Error, "dsn")
}
