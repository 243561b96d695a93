package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
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

var _ UserRepo = (*PostgresUserRepo)(nil)

// UserRepo defines the contract for user data persistence.
type UserRepo interface {
	ListUsers(ctx context.Context) ([]types.User, error)
	// GetUserByID returns types.ErrNotFound when no row matches.
	GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	GetUserByUsername(ctx context.Context, username string) (*types.User, error)
	// CreateUser inserts an already hashed credential. A duplicate username
	// or email is types.ErrConflict.
	CreateUser(ctx context.Context, username, email, hashedPassword string) (*types.User, error)
	// DisableUser soft deletes the account. The row stays so that existing
	// tokens resolve to an inactive user instead of an unknown one.
	DisableUser(ctx context.Context, userID uuid.UUID) error
}

type PostgresUserRepo struct {
	logger *slog.Logger
	db     database.Querier
}

func NewPostgresUserRepo(db database.Querier, logger *slog.Logger) *PostgresUserRepo {
	return &PostgresUserRepo{
		logger: logger,
		db:     db,
	}
}

const userColumns = `id, username, email, hashed_password, disabled, created_at, disabled_at`

func scanUser(row pgx.Row) (*types.User, error) {
	var u types.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.Disabled, &u.CreatedAt, &u.DisabledAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func startSpan(ctx context.Context, op, sqlOp string) (context.Context, trace.Span) {
	return otel.Tracer("UserRepo").Start(ctx, op, trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", sqlOp),
		attribute.String("db.sql.table", "users"),
	))
}

func (r *PostgresUserRepo) ListUsers(ctx context.Context) ([]types.User, error) {
	ctx, span := startSpan(ctx, "ListUsers", "SELECT")
	defer span.End()

	start := time.Now()
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, username`)
	if err != nil {
		metrics.ObserveQuery(ctx, "ListUsers", start, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []types.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			metrics.ObserveQuery(ctx, "ListUsers", start, err)
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *u)
	}
	err = rows.Err()
	metrics.ObserveQuery(ctx, "ListUsers", start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Row iteration failed")
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	span.SetAttributes(attribute.Int("db.rows", len(users)))
	span.SetStatus(codes.Ok, "Users listed")
	return users, nil
}

func (r *PostgresUserRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	ctx, span := startSpan(ctx, "GetUserByID", "SELECT")
	defer span.End()
	span.SetAttributes(attribute.String("db.user.id", userID.String()))

	return r.getOne(ctx, span, "GetUserByID", `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
}

func (r *PostgresUserRepo) GetUserByUsername(ctx context.Context, username string) (*types.User, error) {
	ctx, span := startSpan(ctx, "GetUserByUsername", "SELECT")
	defer span.End()

	return r.getOne(ctx, span, "GetUserByUsername", `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *PostgresUserRepo) getOne(ctx context.Context, span trace.Span, op, query string, arg any) (*types.User, error) {
	start := time.Now()
	u, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		metrics.ObserveQuery(ctx, op, start, nil)
		span.SetStatus(codes.Ok, "User not found")
		return nil, types.ErrNotFound
	}
	metrics.ObserveQuery(ctx, op, start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to load user", slog.String("method", op), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	span.SetStatus(codes.Ok, "User found")
	return u, nil
}

func (r *PostgresUserRepo) CreateUser(ctx context.Context, username, email, hashedPassword string) (*types.User, error) {
	ctx, span := startSpan(ctx, "CreateUser", "INSERT")
	defer span.End()

	l := r.logger.With(slog.String("method", "CreateUser"), slog.String("username", username))

	query := `
		INSERT INTO users (username, email, hashed_password)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	start := time.Now()
	u, err := scanUser(r.db.QueryRow(ctx, query, username, email, hashedPassword))
	if database.IsUniqueViolation(err) {
		metrics.ObserveQuery(ctx, "CreateUser", start, nil)
		l.WarnContext(ctx, "Username or email already registered")
		span.SetStatus(codes.Error, "Unique violation")
		return nil, fmt.Errorf("%w: username or email already registered", types.ErrConflict)
	}
	metrics.ObserveQuery(ctx, "CreateUser", start, err)
	if err != nil {
		l.ErrorContext(ctx, "Failed to insert user", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB insert failed")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	l.InfoContext(ctx, "User created", slog.String("userID", u.ID.String()))
	span.SetStatus(codes.Ok, "User created")
	return u, nil
}

func (r *PostgresUserRepo) DisableUser(ctx context.Context, userID uuid.UUID) error {
	ctx, span := startSpan(ctx, "DisableUser", "UPDATE")
	defer span.End()
	span.SetAttributes(attribute.String("db.user.id", userID.String()))

	query := `
		UPDATE users
		SET disabled = TRUE, disabled_at = COALESCE(disabled_at, NOW())
		WHERE id = $1`

	start := time.Now()
	tag, err := r.db.Exec(ctx, query, userID)
	metrics.ObserveQuery(ctx, "DisableUser", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to disable user", slog.String("userID", userID.String()), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB update failed")
		return fmt.Errorf("failed to disable user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "User not found")
		return types.ErrNotFound
	}

	span.SetStatus(codes.Ok, "User disabled")
	return nil
}
