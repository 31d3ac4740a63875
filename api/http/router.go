package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/taskboard/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, auth *handlers.AuthHandler, health *handlers.HealthHandler, tasks *handlers.TaskHandler, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)

	// Task CRUD, owner-scoped; identity comes from the JWT middleware
	tg := v1.Group("/tasks", authMW)
	tg.Get("/", tasks.List)
	tg.Post("/", tasks.Create)
	tg.Get("/:id", tasks.GetByID)
	tg.Patch("/:id/status", tasks.UpdateStatus)
	tg.Delete("/:id", tasks.Delete)
}
