package types

import (
	"errors"
	"net/http"
)

// AuthErrorKind classifies a rejected authentication attempt.
type AuthErrorKind int

const (
	// KindInvalidCredentials covers bad username/password pairs and any
	// token that cannot be resolved to a user.
	KindInvalidCredentials AuthErrorKind = iota + 1
	// KindInactiveUser is a valid token for a disabled account.
	KindInactiveUser
)

func (k AuthErrorKind) String() string {
	switch k {
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindInactiveUser:
		return "inactive_user"
	default:
		return "unknown"
	}
}

// AuthError is the typed outcome of a rejected authentication attempt.
// Reason is safe to show to the client as-is.
type AuthError struct {
	Kind   AuthErrorKind
	Reason string
	// Challenge asks the HTTP layer to send WWW-Authenticate: Bearer.
	Challenge bool
}

func (e *AuthError) Error() string { return e.Reason }

// Is matches any AuthError of the same kind, so callers can branch on
// ErrIncorrectCredentials without caring which reason text was used.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Kind == e.Kind
}

// StatusCode maps the rejection onto the HTTP status the client sees.
func (e *AuthError) StatusCode() int {
	if e.Kind == KindInactiveUser {
		return http.StatusBadRequest
	}
	return http.StatusUnauthorized
}

var (
	ErrIncorrectCredentials = &AuthError{Kind: KindInvalidCredentials, Reason: "Incorrect username or password", Challenge: true}
	ErrCouldNotValidate     = &AuthError{Kind: KindInvalidCredentials, Reason: "Could not validate credentials", Challenge: true}
	ErrInactiveUser         = &AuthError{Kind: KindInactiveUser, Reason: "Inactive user"}
)

// CRUD layer errors.
var (
	ErrNotFound   = errors.New("requested item not found")
	ErrConflict   = errors.New("item already exists or conflict")
	ErrForbidden  = errors.New("action forbidden")
	ErrBadRequest = errors.New("invalid request")
)

// TokenResponse is returned by the token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIs..."`
	TokenType   string `json:"token_type" example:"bearer"`
}

// LoginRequest is the JSON form of the token endpoint body.
type LoginRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"correct-password"`
}

// Response is a generic API response for success or error messages.
type Response struct {
	Success   bool   `json:"success" example:"true"`
	Message   string `json:"message,omitempty" example:"Operation successful"`
	Error     string `json:"error,omitempty" example:"Resource not found"`
	// RequestID echoes the X-Request-Id assigned by the router on failures.
	RequestID string `json:"request_id,omitempty" example:"host/abc123-000001"`
}
