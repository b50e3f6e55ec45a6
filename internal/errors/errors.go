package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnknownEmail is returned when no account exists for the email.
	ErrUnknownEmail = errors.New("email does not exist")
	// ErrInvalidPassword is returned when the password does not match.
	ErrInvalidPassword = errors.New("incorrect password")
	// ErrInvalidCredentials replaces the two errors above in generic mode.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrSocialAccountOnly is returned for accounts without a local password.
	ErrSocialAccountOnly = errors.New("please sign in with your social account")
	// ErrEmailNotVerified is returned when the account has not completed verification.
	ErrEmailNotVerified = errors.New("please verify your email before signing in")
	// ErrEmailTaken is returned when a signup reuses a registered email.
	ErrEmailTaken = errors.New("email already exists")
	// ErrInvalidToken is returned for an unknown or consumed verification token.
	ErrInvalidToken = errors.New("invalid verification token")
	// ErrAlreadyVerified is returned when the email was verified earlier.
	ErrAlreadyVerified = errors.New("email is already verified")
	// ErrEmailSendFailed is returned when the verification email could not be sent.
	ErrEmailSendFailed = errors.New("failed to send verification email")
	// ErrProviderEmailMissing is returned when the OAuth profile has no email.
	ErrProviderEmailMissing = errors.New("provider did not supply an email address")
	// ErrUserNotFound is returned when a user lookup comes up empty.
	ErrUserNotFound = errors.New("user not found")
	// ErrForbidden is returned on ownership mismatch.
	ErrForbidden = errors.New("forbidden")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. This is the single place
// where authentication results become transport responses.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnknownEmail):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNKNOWN_EMAIL")
	case errors.Is(err, ErrInvalidPassword):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_PASSWORD")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrSocialAccountOnly):
		return NewHTTPError(http.StatusForbidden, err.Error(), "SOCIAL_ACCOUNT_ONLY")
	case errors.Is(err, ErrEmailNotVerified):
		return NewHTTPError(http.StatusForbidden, err.Error(), "EMAIL_NOT_VERIFIED")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrAlreadyVerified):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ALREADY_VERIFIED")
	case errors.Is(err, ErrEmailSendFailed):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "EMAIL_SEND_FAILED")
	case errors.Is(err, ErrProviderEmailMissing):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PROVIDER_EMAIL_MISSING")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
