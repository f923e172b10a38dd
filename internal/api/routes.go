package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api", handler.LanguageMiddleware)

	auth := api.Group("/auth")
	auth.Get("/setup-status", handler.SetupStatus)
	auth.Post("/setup", handler.Setup)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	days := api.Group("/days", handler.AuthRequired)
	days.Get("", handler.GetDays)
	days.Get("/:date", handler.GetDay)
	days.Put("/:date", handler.UpsertDay)
	days.Delete("/:date", handler.DeleteDay)

	api.Get("/stats", handler.AuthRequired, handler.GetStats)
	api.Get("/calendar", handler.AuthRequired, handler.GetCalendar)
	api.Get("/symptoms/stats", handler.AuthRequired, handler.GetSymptomStats)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Get("", handler.GetSettings)
	settings.Put("", handler.UpdateSettings)

	backup := api.Group("/backup", handler.AuthRequired)
	backup.Get("/export", handler.ExportBackup)
	backup.Post("/import", handler.ImportBackup)
	backup.Get("/status", handler.BackupStatus)

	api.Use(handler.NotFound)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
