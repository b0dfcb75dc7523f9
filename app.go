package main

import (
	"fmt"
	"time"

	"dailydiet/internal/cache"
	"dailydiet/internal/config"
	"dailydiet/internal/database"
	"dailydiet/internal/handlers"
	"dailydiet/internal/repositories"
	"dailydiet/internal/services"
	"dailydiet/internal/telemetry"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Stores bundles the repositories the services run on.
type Stores struct {
	Users repositories.UserRepository
	Meals repositories.MealRepository
	close func() error
}

// Close releases the underlying database connection, if any.
func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStores builds the repositories for the configured driver and migrates
// the schema when a database is used.
func OpenStores(cfg *config.Config) (*Stores, error) {
	if cfg.DBDriver == database.DriverMemory {
		return &Stores{
			Users: repositories.NewInMemoryUserRepository(),
			Meals: repositories.NewInMemoryMealRepository(),
		}, nil
	}

	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	return &Stores{
		Users: repositories.NewGORMUserRepository(db),
		Meals: repositories.NewGORMMealRepository(db),
		close: sqlDB.Close,
	}, nil
}

// NewApp wires services, handlers and middleware into a Fiber app.
// cacheClient and events may be nil.
func NewApp(cfg *config.Config, stores *Stores, cacheClient *cache.Client, events services.EventPublisher) *fiber.App {
	userService := services.NewUserService(stores.Users)
	mealService := services.NewMealService(stores.Meals, cacheClient, events, cfg.MetricsCacheTTL)

	userHandler := handlers.NewUserHandler(userService, cfg.SessionTTL)
	mealHandler := handlers.NewMealHandler(mealService)

	collectors := telemetry.New()

	app := fiber.New(fiber.Config{
		AppName:               "dailydiet",
		DisableStartupMessage: true,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(collectors.Middleware("/metrics"))

	// --- API Routes ---
	userHandler.RegisterRoutes(app)
	mealHandler.RegisterRoutes(app)

	// --- Operational Endpoints ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	app.Get("/metrics", collectors.Handler())

	return app
}
