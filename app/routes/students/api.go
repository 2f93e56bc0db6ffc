package students

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"school-gate/app/config"
	"school-gate/app/database"
	"school-gate/app/models"
)

var validate = validator.New()

func GetStudentsAPI(c *fiber.Ctx) error {
	studentList, err := database.GetAllStudents(config.GetDB())
	if err != nil {
		log.Printf("Failed to get students: %v", err)
		return c.Status(500).JSON(fiber.Map{"success": false, "error": models.LocalizedMessage(models.ErrPersistence)})
	}
	return c.JSON(fiber.Map{"success": true, "data": studentList})
}

func SearchStudentsAPI(c *fiber.Ctx) error {
	filters := models.StudentFilters{
		Name:         c.Query("name"),
		Grade:        c.Query("grade"),
		ClassName:    c.Query("class_name"),
		IDNumber:     c.Query("id_number"),
		MobileNumber: c.Query("mobile_number"),
	}

	studentList, err := database.SearchStudents(config.GetDB(), filters)
	if err != nil {
		log.Printf("Failed to search students: %v", err)
		return c.Status(500).JSON(fiber.Map{"success": false, "error": models.LocalizedMessage(models.ErrPersistence)})
	}
	return c.JSON(fiber.Map{"success": true, "data": studentList})
}

func CreateStudentAPI(c *fiber.Ctx) error {
	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "طلب غير صالح"})
	}
	if err := validate.Struct(student); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": models.LocalizedMessage(models.ErrValidation)})
	}

	if err := database.CreateStudent(config.GetDB(), &student); err != nil {
		log.Printf("Failed to create student: %v", err)
		return c.Status(500).JSON(fiber.Map{"success": false, "error": models.LocalizedMessage(models.ErrPersistence)})
	}
	return c.JSON(fiber.Map{"success": true, "data": student})
}

// ImportStudentsAPI accepts parsed roster rows. The spreadsheet itself is
// parsed client-side; this endpoint only enforces the import contract: name
// and id_number must be non-empty, duplicate id_numbers are skipped.
func ImportStudentsAPI(c *fiber.Ctx) error {
	type ImportRequest struct {
		Students []*models.Student `json:"students" validate:"required,min=1"`
	}

	var req ImportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "طلب غير صالح"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": models.LocalizedMessage(models.ErrValidation)})
	}

	result, err := database.ImportStudents(config.GetDB(), req.Students)
	if err != nil {
		log.Printf("Failed to import students: %v", err)
		return c.Status(500).JSON(fiber.Map{"success": false, "error": models.LocalizedMessage(models.ErrPersistence)})
	}
	return c.JSON(fiber.Map{"success": true, "data": result})
}
