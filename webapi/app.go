// Package webapi assembles the Fiber application serving the accounts API.
package webapi

import (
	"github.com/fintechlab/accounts/pkg/config"
	accountsvc "github.com/fintechlab/accounts/pkg/service/account"
	"github.com/fintechlab/accounts/webapi/account"
	"github.com/fintechlab/accounts/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
)

// New builds the Fiber app with middleware and all account routes.
func New(svc *accountsvc.Service, cfg *config.App) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ProblemJSON(c, status, utils.StatusMessage(status), err.Error())
		},
	})

	if cfg.RateLimit.MaxRequests > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit.MaxRequests,
			Expiration: cfg.RateLimit.Window,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return common.ProblemJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
			},
		}))
	}
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	account.Routes(app, svc)

	return app
}
