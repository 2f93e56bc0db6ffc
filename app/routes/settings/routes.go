package settings

import (
	"github.com/gofiber/fiber/v2"

	"school-gate/app/config"
	"school-gate/app/database"
	"school-gate/app/routes/auth"
)

// Keys the settings screen may read or write. Everything else in the table
// (the admin credential above all) stays out of reach of this API.
var editableKeys = []string{
	"school_country",
	"school_ministry",
	"school_directorate",
	"school_name",
	"sms_api_key",
	"sms_sender_name",
	"enable_otp",
}

func SetupSettingsRoutes(app *fiber.App) {
	admin := app.Group("/admin")
	admin.Use(auth.AuthMiddleware)
	admin.Get("/settings", SettingsPage)

	api := app.Group("/api/settings")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetSettingsAPI)
	api.Post("/", UpdateSettingsAPI)
}

func SettingsPage(c *fiber.Ctx) error {
	values, err := database.GetSettings(config.GetDB(), editableKeys...)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load settings")
	}

	return c.Render("admin/settings", fiber.Map{
		"Title":       "الإعدادات",
		"CurrentPage": "settings",
		"Settings":    values,
	})
}
