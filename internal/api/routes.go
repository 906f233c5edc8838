package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	days := api.Group("/days", handler.AuthRequired)
	days.Get("", handler.GetDays)
	days.Get("/:date", handler.GetDay)
	days.Patch("/:date", handler.PatchDay)

	cycles := api.Group("/cycles", handler.AuthRequired)
	cycles.Get("", handler.ListCycles)
	cycles.Post("", handler.StartCycle)

	stats := api.Group("/stats", handler.AuthRequired)
	stats.Get("/averages", handler.GetAverages)

	api.Get("/predictions", handler.AuthRequired, handler.GetPredictions)
	api.Get("/catalog", handler.GetSymptomCatalog)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Post("/clear-data", handler.ClearAllData)
}
