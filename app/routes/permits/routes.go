package permits

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"school-gate/app/config"
	"school-gate/app/database"
	"school-gate/app/models"
	"school-gate/app/routes/auth"
)

// SetupPermitsRoutes wires the exit-permit workflow: the admin issuing page,
// the guard's pending queue and the daily report.
func SetupPermitsRoutes(app *fiber.App) {
	// The guard station is a fixed unattended screen; like the kiosk it is
	// not behind the admin login.
	app.Get("/guard", GuardPage)

	admin := app.Group("/admin")
	admin.Use(auth.AuthMiddleware)
	admin.Get("/exit-permit", ExitPermitPage)
	admin.Get("/exit-report", ExitReportPage)

	api := app.Group("/api/permits")
	api.Get("/", GetPermitsAPI)
	api.Post("/:id/confirm", ConfirmExitAPI)

	api.Use(auth.AuthMiddleware)
	api.Post("/", CreatePermitAPI)
	api.Get("/report", ExitReportAPI)
}

func GuardPage(c *fiber.Ctx) error {
	return c.Render("guard", fiber.Map{
		"Title":       "بوابة الأمن - أذونات الخروج",
		"CurrentPage": "guard",
	})
}

func ExitPermitPage(c *fiber.Ctx) error {
	students, err := database.GetAllStudents(config.GetDB())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load students")
	}

	return c.Render("admin/exit_permit", fiber.Map{
		"Title":       "أذونات خروج الطلاب",
		"CurrentPage": "exit-permit",
		"Students":    students,
	})
}

func ExitReportPage(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	report, err := database.GetExitReport(config.GetDB(), date)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load exit report")
	}

	return c.Render("reports/exits", fiber.Map{
		"Title":       "تقرير خروج الطلاب",
		"CurrentPage": "exit-report",
		"Date":        date,
		"Report":      report,
	})
}

func defaultStatus(status string) string {
	if status == "" {
		return models.ExitStatusPending
	}
	return status
}
