package city

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	database "github.com/FACorreiaa/go-favorite-cities/app/db"
	"github.com/FACorreiaa/go-favorite-cities/app/observability/metrics"
	"github.com/FACorreiaa/go-favorite-cities/internal/types"
)

var _ CityRepository = (*PostgresCityRepository)(nil)

// CityRepository persists favorites. Every operation is keyed by the owner.
type CityRepository interface {
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]types.FavoriteCity, error)
	AddFavorite(ctx context.Context, userID uuid.UUID, city string) (*types.FavoriteCity, error)
	// DeleteFavorite returns types.ErrNotFound unless favoredID exists and
	// belongs to userID.
	DeleteFavorite(ctx context.Context, userID, favoredID uuid.UUID) error
}

type PostgresCityRepository struct {
	logger *slog.Logger
	db     database.Querier
}

func NewCityRepository(db database.Querier, logger *slog.Logger) *PostgresCityRepository {
	return &PostgresCityRepository{
		logger: logger,
		db:     db,
	}
}

func startSpan(ctx context.Context, op, sqlOp string, userID uuid.UUID) (context.Context, trace.Span) {
	return otel.Tracer("CityRepo").Start(ctx, op, trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", sqlOp),
		attribute.String("db.sql.table", "favored_cities"),
		attribute.String("db.user.id", userID.String()),
	))
}

func (r *PostgresCityRepository) ListFavorites(ctx context.Context, userID uuid.UUID) ([]types.FavoriteCity, error) {
	ctx, span := startSpan(ctx, "ListFavorites", "SELECT", userID)
	defer span.End()

	query := `
		SELECT favored_id, user_id, city
		FROM favored_cities
		WHERE user_id = $1
		ORDER BY city`

	start := time.Now()
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		metrics.ObserveQuery(ctx, "ListFavorites", start, err)
		r.logger.ErrorContext(ctx, "Failed to query favorite cities", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("failed to list favorite cities: %w", err)
	}
	defer rows.Close()

	var cities []types.FavoriteCity
	for rows.Next() {
		var c types.FavoriteCity
		if err := rows.Scan(&c.FavoredID, &c.UserID, &c.City); err != nil {
			metrics.ObserveQuery(ctx, "ListFavorites", start, err)
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan favorite city row: %w", err)
		}
		cities = append(cities, c)
	}
	err = rows.Err()
	metrics.ObserveQuery(ctx, "ListFavorites", start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Row iteration failed")
		return nil, fmt.Errorf("error iterating favorite city rows: %w", err)
	}

	span.SetAttributes(attribute.Int("db.rows", len(cities)))
	span.SetStatus(codes.Ok, "Favorites listed")
	return cities, nil
}

func (r *PostgresCityRepository) AddFavorite(ctx context.Context, userID uuid.UUID, city string) (*types.FavoriteCity, error) {
	ctx, span := startSpan(ctx, "AddFavorite", "INSERT", userID)
	defer span.End()

	query := `
		INSERT INTO favored_cities (user_id, city)
		VALUES ($1, $2)
		RETURNING favored_id, user_id, city`

	start := time.Now()
	var c types.FavoriteCity
	err := r.db.QueryRow(ctx, query, userID, city).Scan(&c.FavoredID, &c.UserID, &c.City)
	metrics.ObserveQuery(ctx, "AddFavorite", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert favorite city", slog.String("city", city), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB insert failed")
		return nil, fmt.Errorf("failed to add favorite city: %w", err)
	}

	span.SetStatus(codes.Ok, "Favorite added")
	return &c, nil
}

func (r *PostgresCityRepository) DeleteFavorite(ctx context.Context, userID, favoredID uuid.UUID) error {
	ctx, span := startSpan(ctx, "DeleteFavorite", "DELETE", userID)
	defer span.End()

	start := time.Now()
	tag, err := r.db.Exec(ctx, `DELETE FROM favored_cities WHERE favored_id = $1 AND user_id = $2`, favoredID, userID)
	metrics.ObserveQuery(ctx, "DeleteFavorite", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete favorite city", slog.String("favoredID", favoredID.String()), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB delete failed")
		return fmt.Errorf("failed to delete favorite city: %w", err)
	}
	if tag.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "Favorite not found")
		return types.ErrNotFound
	}

	span.SetStatus(codes.Ok, "Favorite deleted")
	return nil
}
