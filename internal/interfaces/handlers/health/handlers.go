package health

import (
	"context"

	"titulos-console/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// DBPinger abstracts the database connectivity check.
type DBPinger interface {
	Ping() error
}

// Handlers holds dependencies for the health probe.
type Handlers struct {
	DB  DBPinger
	Rdb *redis.Client // optional
}

// Probe reports service status plus dependency reachability. The console
// treats any non-2xx as "backend down", so a dead database fails the probe.
func (h *Handlers) Probe(c *fiber.Ctx) error {
	deps := fiber.Map{}

	if h.DB != nil {
		if err := h.DB.Ping(); err != nil {
			deps["database"] = "down"
			return response.Detail(c, fiber.StatusServiceUnavailable, "Database unreachable")
		}
		deps["database"] = "up"
	}
	if h.Rdb != nil {
		if err := h.Rdb.Ping(context.Background()).Err(); err != nil {
			deps["redis"] = "down" // degraded, not fatal: facets fall back to SQL
		} else {
			deps["redis"] = "up"
		}
	}

	return c.JSON(fiber.Map{"status": "ok", "dependencies": deps})
}
