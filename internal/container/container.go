package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/FACorreiaa/go-favorite-cities/app/db"
	"github.com/FACorreiaa/go-favorite-cities/config"
	"github.com/FACorreiaa/go-favorite-cities/internal/api/auth"
	"github.com/FACorreiaa/go-favorite-cities/internal/api/city"
	"github.com/FACorreiaa/go-favorite-cities/internal/api/user"
	"github.com/FACorreiaa/go-favorite-cities/internal/router"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	Pool   *pgxpool.Pool

	AuthService auth.AuthService
	AuthHandler *auth.HandlerImpl
	UserHandler *user.HandlerImpl
	CityHandler *city.Handler
}

// NewContainer opens the connection pool and wires every component on top
// of it.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(ctx, dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	c, err := NewContainerWithDB(cfg, pool, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}
	c.Pool = pool
	return c, nil
}

// NewContainerWithDB wires the components over any Querier, so tests can
// hand in a mock pool.
func NewContainerWithDB(cfg *config.Config, db database.Querier, logger *slog.Logger) (*Container, error) {
	tokens, err := auth.NewTokenManager(cfg.JWT, auth.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	authRepo := auth.NewPostgresAuthRepo(db, logger)
	authService := auth.NewAuthService(authRepo, hasher, tokens, logger)
	authHandler := auth.NewAuthHandlerImpl(authService, logger)

	userRepo := user.NewPostgresUserRepo(db, logger)
	userService := user.NewUserService(userRepo, hasher, logger)
	userHandler := user.NewHandlerImpl(userService, logger)

	cityRepo := city.NewCityRepository(db, logger)
	cityService := city.NewCityService(cityRepo, logger)
	cityHandler := city.NewCityHandler(cityService, logger)

	return &Container{
		Config:      cfg,
		Logger:      logger,
		AuthService: authService,
		AuthHandler: authHandler,
		UserHandler: userHandler,
		CityHandler: cityHandler,
	}, nil
}

// Router returns the application routes with the bearer gate in front of
// the protected group.
func (c *Container) Router() chi.Router {
	return router.SetupRouter(&router.Config{
		AuthHandler:            c.AuthHandler,
		UserHandler:            c.UserHandler,
		CityHandler:            c.CityHandler,
		AuthenticateMiddleware: auth.Authenticate(c.AuthService, c.Logger),
		AllowedOrigins:         c.Config.CORS.AllowedOrigins,
	})
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// WaitForDB waits for the database to be ready
func (c *Container) WaitForDB(ctx context.Context) bool {
	return database.WaitForDB(ctx, c.Pool, c.Logger)
}
