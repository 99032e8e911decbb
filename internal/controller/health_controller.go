package controller

import (
	"context"
	"time"

	"smartnotes-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Check(ctx *fiber.Ctx) error
}

type healthController struct {
	db Pinger
}

func NewHealthController(db Pinger) IHealthController {
	return &healthController{db: db}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/healthcheck", c.Check)
}

func (c *healthController) Check(ctx *fiber.Ctx) error {
	status := "ok"
	if c.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx.UserContext(), 2*time.Second)
		defer cancel()
		if err := c.db.PingContext(pingCtx); err != nil {
			status = "degraded"
		}
	}
	return ctx.JSON(serverutils.SuccessResponse("Health check passed", fiber.Map{"status": status}))
}
