package auth

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-favorite-cities/app/observability/metrics"
	"github.com/FACorreiaa/go-favorite-cities/internal/types"
)

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService is the authentication gate. Rejections come back as
// *types.AuthError; any other error is an infrastructure failure.
type AuthService interface {
	// Authenticate checks a username/password pair.
	Authenticate(ctx context.Context, username, password string) (*types.User, error)
	// ResolveBearer turns a raw bearer token into an active user.
	ResolveBearer(ctx context.Context, token string) (*types.User, error)
	// Login authenticates and mints an access token for the user.
	Login(ctx context.Context, username, password string) (*types.TokenResponse, error)
}

type AuthServiceImpl struct {
	logger *slog.Logger
	repo   CredentialStore
	hasher PasswordHasher
	tokens TokenIssuer

	// dummyDigest is compared against when the username is unknown, so that
	// case costs one hash comparison like a wrong password.
	dummyDigest string
}

func NewAuthService(repo CredentialStore, hasher PasswordHasher, tokens TokenIssuer, logger *slog.Logger) *AuthServiceImpl {
	digest, err := hasher.Hash("unknown-user-placeholder")
	if err != nil {
		logger.Warn("Failed to precompute placeholder digest", slog.Any("error", err))
	}
	return &AuthServiceImpl{
		logger:      logger,
		repo:        repo,
		hasher:      hasher,
		tokens:      tokens,
		dummyDigest: digest,
	}
}

func (s *AuthServiceImpl) Authenticate(ctx context.Context, username, password string) (*types.User, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Authenticate")
	defer span.End()

	l := s.logger.With(slog.String("method", "Authenticate"), slog.String("username", username))
	metrics.Get().LoginAttemptsTotal.Add(ctx, 1)

	user, err := s.repo.FindUserByUsername(ctx, username)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Credential store failed")
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if user == nil {
		s.hasher.Verify(password, s.dummyDigest)
		return nil, s.reject(ctx, l, types.ErrIncorrectCredentials, "unknown username")
	}
	if !s.hasher.Verify(password, user.HashedPassword) {
		return nil, s.reject(ctx, l, types.ErrIncorrectCredentials, "password mismatch")
	}
	if !user.Active() {
		return nil, s.reject(ctx, l, types.ErrIncorrectCredentials, "account disabled")
	}

	l.DebugContext(ctx, "User authenticated")
	span.SetStatus(codes.Ok, "Authenticated")
	return user, nil
}

func (s *AuthServiceImpl) ResolveBearer(ctx context.Context, token string) (*types.User, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "ResolveBearer")
	defer span.End()

	l := s.logger.With(slog.String("method", "ResolveBearer"))

	subject, err := s.tokens.Verify(token)
	if err != nil {
		return nil, s.reject(ctx, l, types.ErrCouldNotValidate, "token rejected")
	}
	l = l.With(slog.String("username", subject))

	user, err := s.repo.FindUserBySubject(ctx, subject)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Credential store failed")
		return nil, fmt.Errorf("resolve bearer: %w", err)
	}
	if user == nil {
		return nil, s.reject(ctx, l, types.ErrCouldNotValidate, "subject has no user")
	}
	if !user.Active() {
		return nil, s.reject(ctx, l, types.ErrInactiveUser, "account disabled")
	}

	span.SetStatus(codes.Ok, "Authenticated")
	return user, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*types.TokenResponse, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.Issue(user.Username, 0)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to issue access token", slog.String("username", user.Username), slog.Any("error", err))
		return nil, fmt.Errorf("login: %w", err)
	}
	metrics.Get().TokensIssuedTotal.Add(ctx, 1)

	return &types.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, nil
}

func (s *AuthServiceImpl) reject(ctx context.Context, l *slog.Logger, authErr *types.AuthError, detail string) error {
	l.WarnContext(ctx, "Authentication rejected", slog.String("kind", authErr.Kind.String()), slog.String("detail", detail))
	metrics.Get().AuthRejectionsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", authErr.Kind.String())))
	trace.SpanFromContext(ctx).SetStatus(codes.Error, authErr.Reason)
	return authErr
}
