package router

import (
	custsvc "titulos-console/internal/application/customers"
	secsvc "titulos-console/internal/application/securities"
	"titulos-console/internal/config"
	"titulos-console/internal/infrastructure/database"
	custhandler "titulos-console/internal/interfaces/handlers/customers"
	healthhandler "titulos-console/internal/interfaces/handlers/health"
	sechandler "titulos-console/internal/interfaces/handlers/securities"
	"titulos-console/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with global middleware and all routes, and
// returns the opened DB/Redis handles so the caller can seed and ping.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{AllowedSuffix: cfg.CORSSuffix}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, nil, err
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
	}

	healthHandlers := &healthhandler.Handlers{DB: &gormDBPinger{db: db}, Rdb: rdb}
	app.Get("/health", healthHandlers.Probe)

	securitiesService := &secsvc.Service{DB: db, Rdb: rdb}
	securitiesHandlers := &sechandler.Handlers{Service: securitiesService}
	secGroup := app.Group("/api/v1/securities")
	secGroup.Get("/", securitiesHandlers.List)
	secGroup.Get("/meta", securitiesHandlers.Meta)
	secGroup.Get("/:id", securitiesHandlers.Get)

	customersService := &custsvc.Service{DB: db}
	customersHandlers := &custhandler.Handlers{Service: customersService}
	custGroup := app.Group("/api/v1/customers")
	custGroup.Post("/", customersHandlers.Create)
	custGroup.Get("/", customersHandlers.List)
	custGroup.Get("/:id", customersHandlers.Get)
	custGroup.Get("/:id/allocations", customersHandlers.Allocations)
	custGroup.Post("/:id/allocations", customersHandlers.CreateAllocation)

	return app, db, rdb, nil
}
