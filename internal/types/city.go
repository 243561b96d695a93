package types

import "github.com/google/uuid"

// MaxCityLength matches favored_cities.city.
const MaxCityLength = 50

// FavoriteCity links a user to a city name.
type FavoriteCity struct {
	FavoredID uuid.UUID `json:"favored_id"`
	UserID    uuid.UUID `json:"user_id"`
	City      string    `json:"city"`
}

type AddFavoriteCityRequest struct {
	City string `json:"city" example:"Bergen"`
}

type FavoriteCityResponse struct {
	FavoredID uuid.UUID `json:"favored_id"`
	Username  string    `json:"username" example:"alice"`
	City      string    `json:"city" example:"Bergen"`
}

// CityResponse is one entry of the caller's favorites listing.
type CityResponse struct {
	FavoredID uuid.UUID `json:"favored_id"`
	City      string    `json:"city" example:"Bergen"`
}
