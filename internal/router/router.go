package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/FACorreiaa/go-favorite-cities/docs"
	"github.com/FACorreiaa/go-favorite-cities/internal/api/auth"
	"github.com/FACorreiaa/go-favorite-cities/internal/api/city"
	"github.com/FACorreiaa/go-favorite-cities/internal/api/user"
)

// Config contains dependencies needed for the router setup
type Config struct {
	AuthHandler            auth.Handler
	UserHandler            user.Handler
	CityHandler            *city.Handler
	AuthenticateMiddleware func(http.Handler) http.Handler
	AllowedOrigins         []string
}

// SetupRouter initializes and configures the application routes.
// Server-wide middleware (request id, logging, recoverer) is applied by the
// caller before mounting this router.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"WWW-Authenticate"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Public
	r.Group(func(r chi.Router) {
		r.Post("/token", cfg.AuthHandler.Login)
		r.Post("/create_user", cfg.UserHandler.CreateUser)
	})

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(cfg.AuthenticateMiddleware)

		r.Get("/users/me", cfg.UserHandler.GetMe)
		r.Get("/users/me/cities", cfg.CityHandler.ListMyCities)
		r.Delete("/users/delete_user", cfg.UserHandler.DeleteUser)
		r.Get("/allusers", cfg.UserHandler.ListUsers)
		r.Post("/get_user_by_username", cfg.UserHandler.GetUserByUsername)
		r.Post("/get_user_by_id", cfg.UserHandler.GetUserByID)

		r.Post("/add_favorite_city", cfg.CityHandler.AddFavoriteCity)
		r.Delete("/delete_favored_city", cfg.CityHandler.DeleteFavoredCity)
	})

	return r
}
