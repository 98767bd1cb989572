package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-planner/internal/api/http/handlers"
	"github.com/spec-kit/shift-planner/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Staff          *handlers.StaffHandler
	Catalog        *handlers.CatalogHandler
	Schedule       *handlers.ScheduleHandler
	Stats          *handlers.StatsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Everything except health probes and
// login requires an authenticated manager.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	api := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireManager())
	api.Post("/auth/password/change", cfg.Auth.ChangePassword)

	api.Post("/staff", cfg.Staff.Register)
	api.Get("/staff", cfg.Staff.List)
	api.Get("/staff/summary", cfg.Staff.Summary)
	api.Get("/staff/:id", cfg.Staff.Get)
	api.Put("/staff/:id", cfg.Staff.Update)
	api.Delete("/staff/:id", cfg.Staff.Remove)

	api.Get("/departments", cfg.Catalog.ListDepartments)
	api.Get("/departments/:id/shifts", cfg.Catalog.ListShifts)
	api.Put("/departments/:id/shifts/:shift", cfg.Catalog.UpdateShift)
	api.Put("/departments/:id/shifts/:shift/headcount", cfg.Catalog.SetHeadcount)

	api.Post("/schedule/generate", cfg.Schedule.Generate)
	api.Get("/schedule/week", cfg.Schedule.Week)
	api.Get("/schedule/week/export", cfg.Schedule.Export)
	api.Get("/schedule/days/:date/slots", cfg.Schedule.DaySlots)
	api.Get("/schedule/assignments/:date/:department/:shift/:index", cfg.Schedule.GetAssignment)
	api.Put("/schedule/assignments/:date/:department/:shift/:index", cfg.Schedule.SetAssignment)
	api.Delete("/schedule/assignments/:date/:department/:shift/:index", cfg.Schedule.ClearAssignment)
	api.Get("/schedule/assignments/:date/:department/:shift/:index/candidates", cfg.Schedule.Candidates)

	api.Get("/stats/generation", cfg.Stats.Generation)
	api.Get("/stats/activity", cfg.Stats.Activity)
}
