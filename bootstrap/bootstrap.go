package bootstrap

import (
	"context"

	secsvc "titulos-console/internal/application/securities"
	"titulos-console/internal/config"
	"titulos-console/internal/interfaces/router"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// New creates the Fiber app from environment config and seeds the security
// catalog from the configured CSV when one is present.
func New() (*fiber.App, *gorm.DB, *redis.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	app, db, rdb, err := router.CreateApp(cfg)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	if cfg.SecuritiesPath != "" {
		secs, err := secsvc.LoadCSV(cfg.SecuritiesPath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.SecuritiesPath).Msg("catalog seed skipped")
		} else {
			svc := &secsvc.Service{DB: db, Rdb: rdb}
			if err := svc.Load(context.Background(), secs); err != nil {
				return nil, nil, nil, nil, err
			}
			log.Info().Int("securities", len(secs)).Msg("catalog seeded")
		}
	}

	return app, db, rdb, cfg, nil
}
