package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/FACorreiaa/go-favorite-cities/internal/api"
	"github.com/FACorreiaa/go-favorite-cities/internal/types"
)

type contextKey string

const userKey contextKey = "authenticatedUser"

// Authenticate resolves the request's bearer token through the gate and
// stores the active user in the request context. Requests that do not
// resolve never reach next.
func Authenticate(service AuthService, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			l := logger.With(slog.String("middleware", "Authenticate"))

			token, ok := BearerToken(r)
			if !ok {
				l.DebugContext(ctx, "Missing or malformed Authorization header")
				api.AuthErrorResponse(w, r, types.ErrCouldNotValidate)
				return
			}

			user, err := service.ResolveBearer(ctx, token)
			if err != nil {
				var authErr *types.AuthError
				if errors.As(err, &authErr) {
					api.AuthErrorResponse(w, r, authErr)
					return
				}
				l.ErrorContext(ctx, "Failed to resolve bearer token", slog.Any("error", err))
				api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(ctx, user)))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is case-insensitive.
func BearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func WithUser(ctx context.Context, user *types.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the user set by Authenticate.
func UserFromContext(ctx context.Context) (*types.User, bool) {
	user, ok := ctx.Value(userKey).(*types.User)
	return user, ok && user != nil
}
