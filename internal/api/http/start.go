package http

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"

	"github.com/vrushti/clinic_backend/config"
	"github.com/vrushti/clinic_backend/internal/api/http/router"
	"github.com/vrushti/clinic_backend/internal/app"
)

// Start builds the fx graph and runs the HTTP server until interrupted.
func Start(cfg *config.Config, timeout time.Duration) {
	fx.New(
		fx.Supply(cfg),
		app.InfraModule,
		app.ServiceModule,
		router.Module,
		Module,

		// Invoking *fiber.App forces NewServer, which registers the
		// Listen/Shutdown lifecycle hooks.
		fx.Invoke(func(*fiber.App) {}),

		fx.StopTimeout(timeout),
	).Run()
}
