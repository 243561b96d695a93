package city

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-favorite-cities/internal/api"
	"github.com/FACorreiaa/go-favorite-cities/internal/api/auth"
	"github.com/FACorreiaa/go-favorite-cities/internal/types"
)

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewCityHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// ListMyCities godoc
// @Summary      List the caller's favorite cities
// @Tags         Cities
// @Produce      json
// @Success      200 {array} types.CityResponse
// @Failure      401 {object} types.Response "Could not validate credentials"
// @Failure      404 {object} types.Response "No cities found"
// @Security     BearerAuth
// @Router       /users/me/cities [get]
func (h *Handler) ListMyCities(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "ListMyCities")
	defer span.End()
	l := h.logger.With(slog.String("method", "ListMyCities"))

	caller, ok := auth.UserFromContext(ctx)
	if !ok {
		api.AuthErrorResponse(w, r, types.ErrCouldNotValidate)
		return
	}

	cities, err := h.service.ListFavorites(ctx, caller)
	if err != nil {
		l.ErrorContext(ctx, "Failed to retrieve cities", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve cities")
		return
	}
	if len(cities) == 0 {
		api.ErrorResponse(w, r, http.StatusNotFound, "No cities found")
		return
	}

	span.SetStatus(codes.Ok, "Cities returned")
	api.WriteJSONResponse(w, r, http.StatusOK, cities)
}

// AddFavoriteCity godoc
// @Summary      Add a favorite city
// @Description  The favorite is always recorded for the authenticated user.
// @Tags         Cities
// @Accept       json
// @Produce      json
// @Param        city body types.AddFavoriteCityRequest true "City"
// @Success      200 {object} types.FavoriteCityResponse
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      401 {object} types.Response "Could not validate credentials"
// @Security     BearerAuth
// @Router       /add_favorite_city [post]
func (h *Handler) AddFavoriteCity(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "AddFavoriteCity")
	defer span.End()
	l := h.logger.With(slog.String("method", "AddFavoriteCity"))

	caller, ok := auth.UserFromContext(ctx)
	if !ok {
		api.AuthErrorResponse(w, r, types.ErrCouldNotValidate)
		return
	}

	var req types.AddFavoriteCityRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.AddFavorite(ctx, caller, req.City)
	if err != nil {
		if errors.Is(err, types.ErrBadRequest) {
			api.ErrorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("City must be between 1 and %d characters", types.MaxCityLength))
			return
		}
		l.ErrorContext(ctx, "Failed to add city", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to add city")
		return
	}

	span.SetStatus(codes.Ok, "City added")
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// DeleteFavoredCity godoc
// @Summary      Remove a favorite city
// @Tags         Cities
// @Param        favored_id query string true "Favorite id"
// @Success      204
// @Failure      400 {object} types.Response "Invalid favored_id"
// @Failure      401 {object} types.Response "Could not validate credentials"
// @Failure      404 {object} types.Response "City not found"
// @Security     BearerAuth
// @Router       /delete_favored_city [delete]
func (h *Handler) DeleteFavoredCity(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "DeleteFavoredCity")
	defer span.End()
	l := h.logger.With(slog.String("method", "DeleteFavoredCity"))

	caller, ok := auth.UserFromContext(ctx)
	if !ok {
		api.AuthErrorResponse(w, r, types.ErrCouldNotValidate)
		return
	}

	favoredID, err := uuid.Parse(r.URL.Query().Get("favored_id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid favored_id")
		return
	}

	if err := h.service.DeleteFavorite(ctx, caller, favoredID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "City not found")
			return
		}
		l.ErrorContext(ctx, "Failed to delete city", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete city")
		return
	}

	span.SetStatus(codes.Ok, "City deleted")
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}
