package visitors

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"school-gate/app/config"
	"school-gate/app/database"
	"school-gate/app/routes/auth"
	"school-gate/app/services"
)

var verifier *services.OTPVerifier

// SetupVisitorsRoutes wires the kiosk surface and the visitor log. The OTP
// endpoints are public since the kiosk runs unauthenticated.
func SetupVisitorsRoutes(app *fiber.App, v *services.OTPVerifier) {
	verifier = v

	app.Get("/", KioskPage)

	api := app.Group("/api")
	api.Post("/otp/send", SendOTPAPI)
	api.Post("/otp/verify", VerifyOTPAPI)
	api.Post("/visitors", SubmitVisitorAPI)

	// The visitor register is admin-only.
	app.Get("/reports", auth.AuthMiddleware, VisitorReportPage)
	api.Get("/visitors", auth.AuthMiddleware, GetVisitorsAPI)
}

func KioskPage(c *fiber.Ctx) error {
	info, err := database.GetSettings(config.GetDB(),
		"school_country", "school_ministry", "school_directorate", "school_name", "enable_otp")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load school info")
	}

	return c.Render("kiosk", fiber.Map{
		"Title":       "تسجيل الزوار",
		"CurrentPage": "kiosk",
		"SchoolInfo":  info,
		"EnableOTP":   info["enable_otp"] != "false",
	})
}

func VisitorReportPage(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	visitorList, err := database.GetVisitorsByDate(config.GetDB(), date)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load visitors")
	}

	return c.Render("reports/visitors", fiber.Map{
		"Title":       "سجل الزوار اليومي",
		"CurrentPage": "reports",
		"Date":        date,
		"Visitors":    visitorList,
	})
}
