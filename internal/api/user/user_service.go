package user

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-favorite-cities/internal/api/auth"
	"github.com/FACorreiaa/go-favorite-cities/internal/types"
)

// Ensure implementation satisfies the interface
var _ UserService = (*UserServiceImpl)(nil)

// UserService defines the business logic contract for user operations.
type UserService interface {
	CreateUser(ctx context.Context, req types.CreateUserRequest) (*types.CreateUserResponse, error)
	ListUsers(ctx context.Context) ([]types.UserResponse, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*types.UserResponse, error)
	GetUserByUsername(ctx context.Context, username string) (*types.UserResponse, error)
	// DisableUser soft deletes target on behalf of caller. Callers may only
	// disable themselves.
	DisableUser(ctx context.Context, caller *types.User, target uuid.UUID) error
}

// UserServiceImpl provides the implementation for UserService.
type UserServiceImpl struct {
	logger *slog.Logger
	repo   UserRepo
	hasher auth.PasswordHasher
}

// NewUserService creates a new user service instance.
func NewUserService(repo UserRepo, hasher auth.PasswordHasher, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		logger: logger,
		repo:   repo,
		hasher: hasher,
	}
}

func validateCreateUser(req types.CreateUserRequest) error {
	switch {
	case req.Username == "" || req.Email == "" || req.Password == "":
		return fmt.Errorf("%w: username, email and password are required", types.ErrBadRequest)
	case utf8.RuneCountInString(req.Username) > types.MaxUsernameLength:
		return fmt.Errorf("%w: username must be at most %d characters", types.ErrBadRequest, types.MaxUsernameLength)
	case utf8.RuneCountInString(req.Email) > types.MaxEmailLength:
		return fmt.Errorf("%w: email must be at most %d characters", types.ErrBadRequest, types.MaxEmailLength)
	}
	if addr, err := mail.ParseAddress(req.Email); err != nil || addr.Address != req.Email {
		return fmt.Errorf("%w: email is not a valid address", types.ErrBadRequest)
	}
	return nil
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, req types.CreateUserRequest) (*types.CreateUserResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	ctx, span := otel.Tracer("UserService").Start(ctx, "CreateUser", trace.WithAttributes(
		attribute.String("username", req.Username),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "CreateUser"), slog.String("username", req.Username))

	if err := validateCreateUser(req); err != nil {
		span.SetStatus(codes.Error, "Validation failed")
		return nil, err
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		l.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Hash failed")
		return nil, fmt.Errorf("%w: %s", types.ErrBadRequest, err.Error())
	}

	u, err := s.repo.CreateUser(ctx, req.Username, req.Email, digest)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Create failed")
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	span.SetStatus(codes.Ok, "User created")
	return &types.CreateUserResponse{ID: u.ID, Username: u.Username, Email: u.Email}, nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]types.UserResponse, error) {
	ctx, span := otel.Tracer("UserService").Start(ctx, "ListUsers")
	defer span.End()

	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list users", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "List failed")
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	out := make([]types.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, types.NewUserResponse(&users[i]))
	}
	span.SetStatus(codes.Ok, "Users listed")
	return out, nil
}

func (s *UserServiceImpl) GetUserByID(ctx context.Context, userID uuid.UUID) (*types.UserResponse, error) {
	ctx, span := otel.Tracer("UserService").Start(ctx, "GetUserByID", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	resp := types.NewUserResponse(u)
	return &resp, nil
}

func (s *UserServiceImpl) GetUserByUsername(ctx context.Context, username string) (*types.UserResponse, error) {
	ctx, span := otel.Tracer("UserService").Start(ctx, "GetUserByUsername")
	defer span.End()

	if username == "" {
		return nil, fmt.Errorf("%w: username is required", types.ErrBadRequest)
	}
	u, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	resp := types.NewUserResponse(u)
	return &resp, nil
}

func (s *UserServiceImpl) DisableUser(ctx context.Context, caller *types.User, target uuid.UUID) error {
	ctx, span := otel.Tracer("UserService").Start(ctx, "DisableUser", trace.WithAttributes(
		attribute.String("user.id", target.String()),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "DisableUser"), slog.String("target", target.String()))

	if caller == nil || caller.ID != target {
		l.WarnContext(ctx, "Refusing to disable another user's account")
		span.SetStatus(codes.Error, "Forbidden")
		return types.ErrForbidden
	}

	if err := s.repo.DisableUser(ctx, target); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Disable failed")
		return fmt.Errorf("error disabling user: %w", err)
	}

	l.InfoContext(ctx, "User disabled")
	span.SetStatus(codes.Ok, "User disabled")
	return nil
}
