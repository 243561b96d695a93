package city

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-favorite-cities/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service manages the caller's favorite cities. The owner always comes from
// the authenticated user, never from the request.
type Service interface {
	ListFavorites(ctx context.Context, caller *types.User) ([]types.CityResponse, error)
	AddFavorite(ctx context.Context, caller *types.User, city string) (*types.FavoriteCityResponse, error)
	DeleteFavorite(ctx context.Context, caller *types.User, favoredID uuid.UUID) error
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   CityRepository
}

func NewCityService(repo CityRepository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *ServiceImpl) ListFavorites(ctx context.Context, caller *types.User) ([]types.CityResponse, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "ListFavorites", trace.WithAttributes(
		attribute.String("user.id", caller.ID.String()),
	))
	defer span.End()

	cities, err := s.repo.ListFavorites(ctx, caller.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "List failed")
		return nil, fmt.Errorf("error listing favorite cities: %w", err)
	}

	out := make([]types.CityResponse, 0, len(cities))
	for _, c := range cities {
		out = append(out, types.CityResponse{FavoredID: c.FavoredID, City: c.City})
	}
	span.SetStatus(codes.Ok, "Favorites listed")
	return out, nil
}

func (s *ServiceImpl) AddFavorite(ctx context.Context, caller *types.User, city string) (*types.FavoriteCityResponse, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "AddFavorite", trace.WithAttributes(
		attribute.String("user.id", caller.ID.String()),
	))
	defer span.End()

	city = strings.TrimSpace(city)
	switch {
	case city == "":
		span.SetStatus(codes.Error, "Validation failed")
		return nil, fmt.Errorf("%w: city is required", types.ErrBadRequest)
	case utf8.RuneCountInString(city) > types.MaxCityLength:
		span.SetStatus(codes.Error, "Validation failed")
		return nil, fmt.Errorf("%w: city must be at most %d characters", types.ErrBadRequest, types.MaxCityLength)
	}

	fav, err := s.repo.AddFavorite(ctx, caller.ID, city)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Add failed")
		return nil, fmt.Errorf("error adding favorite city: %w", err)
	}

	s.logger.InfoContext(ctx, "Favorite city added",
		slog.String("username", caller.Username),
		slog.String("favoredID", fav.FavoredID.String()))
	span.SetStatus(codes.Ok, "Favorite added")
	return &types.FavoriteCityResponse{
		FavoredID: fav.FavoredID,
		Username:  caller.Username,
		City:      fav.City,
	}, nil
}

func (s *ServiceImpl) DeleteFavorite(ctx context.Context, caller *types.User, favoredID uuid.UUID) error {
	ctx, span := otel.Tracer("CityService").Start(ctx, "DeleteFavorite", trace.WithAttributes(
		attribute.String("user.id", caller.ID.String()),
		attribute.String("favored.id", favoredID.String()),
	))
	defer span.End()

	if err := s.repo.DeleteFavorite(ctx, caller.ID, favoredID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Delete failed")
		return fmt.Errorf("error deleting favorite city: %w", err)
	}

	span.SetStatus(codes.Ok, "Favorite deleted")
	return nil
}
