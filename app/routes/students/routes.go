package students

import (
	"github.com/gofiber/fiber/v2"

	"school-gate/app/config"
	"school-gate/app/database"
	"school-gate/app/routes/auth"
)

func SetupStudentsRoutes(app *fiber.App) {
	admin := app.Group("/admin")
	admin.Use(auth.AuthMiddleware)
	admin.Get("/students", StudentsPage)

	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetStudentsAPI)
	api.Get("/search", SearchStudentsAPI)
	api.Post("/", CreateStudentAPI)
	api.Post("/import", ImportStudentsAPI)
}

func StudentsPage(c *fiber.Ctx) error {
	studentList, err := database.GetAllStudents(config.GetDB())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load students")
	}

	return c.Render("admin/students", fiber.Map{
		"Title":       "قائمة الطلاب",
		"CurrentPage": "students",
		"Students":    studentList,
	})
}
