package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	database "github.com/FACorreiaa/go-favorite-cities/app/db"
	"github.com/FACorreiaa/go-favorite-cities/app/observability/metrics"
	"github.com/FACorreiaa/go-favorite-cities/internal/types"
)

var _ CredentialStore = (*PostgresAuthRepo)(nil)

// CredentialStore is the read side of the users table the gate needs.
// An absent user is (nil, nil); errors mean the store itself failed.
type CredentialStore interface {
	FindUserByUsername(ctx context.Context, username string) (*types.User, error)
	// FindUserBySubject resolves a token subject. Subjects are usernames.
	FindUserBySubject(ctx context.Context, subject string) (*types.User, error)
}

type PostgresAuthRepo struct {
	logger *slog.Logger
	db     database.Querier
}

func NewPostgresAuthRepo(db database.Querier, logger *slog.Logger) *PostgresAuthRepo {
	return &PostgresAuthRepo{
		logger: logger,
		db:     db,
	}
}

const findUserByUsernameQuery = `
	SELECT id, username, email, hashed_password, disabled, created_at, disabled_at
	FROM users
	WHERE username = $1`

func (r *PostgresAuthRepo) FindUserByUsername(ctx context.Context, username string) (*types.User, error) {
	return r.findUser(ctx, "FindUserByUsername", username)
}

func (r *PostgresAuthRepo) FindUserBySubject(ctx context.Context, subject string) (*types.User, error) {
	return r.findUser(ctx, "FindUserBySubject", subject)
}

func (r *PostgresAuthRepo) findUser(ctx context.Context, op, username string) (*types.User, error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, op, trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	start := time.Now()
	var user types.User
	err := r.db.QueryRow(ctx, findUserByUsernameQuery, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.HashedPassword,
		&user.Disabled,
		&user.CreatedAt,
		&user.DisabledAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		metrics.ObserveQuery(ctx, op, start, nil)
		span.SetStatus(codes.Ok, "User not found")
		return nil, nil
	}
	metrics.ObserveQuery(ctx, op, start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to load user", slog.String("method", op), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	span.SetStatus(codes.Ok, "User found")
	return &user, nil
}
