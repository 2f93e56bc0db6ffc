package permits

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"school-gate/app/config"
	"school-gate/app/database"
	"school-gate/app/models"
	"school-gate/app/services"
)

var validate = validator.New()

func CreatePermitAPI(c *fiber.Ctx) error {
	type CreateRequest struct {
		StudentID  int64  `json:"student_id" validate:"required"`
		Reason     string `json:"reason" validate:"required"`
		Authorizer string `json:"authorizer" validate:"required"`
	}

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "طلب غير صالح"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": models.LocalizedMessage(models.ErrValidation)})
	}

	permitID, err := database.CreateExitPermit(config.GetDB(), req.StudentID, req.Reason, req.Authorizer)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "الطالب غير موجود"})
		}
		log.Printf("Failed to create exit permit: %v", err)
		return c.Status(500).JSON(fiber.Map{"success": false, "error": models.LocalizedMessage(models.ErrPersistence)})
	}

	services.CountPermitCreated()
	return c.JSON(fiber.Map{"success": true, "permit_id": permitID})
}

// GetPermitsAPI lists permits by status, PENDING by default. The guard page
// polls this every ten seconds.
func GetPermitsAPI(c *fiber.Ctx) error {
	status := defaultStatus(c.Query("status"))

	permits, err := database.GetExitPermits(config.GetDB(), status)
	if err != nil {
		log.Printf("Failed to list exit permits: %v", err)
		return c.Status(500).JSON(fiber.Map{"success": false, "error": models.LocalizedMessage(models.ErrPersistence)})
	}
	return c.JSON(fiber.Map{"success": true, "data": permits})
}

func ConfirmExitAPI(c *fiber.Ctx) error {
	permitID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "طلب غير صالح"})
	}

	if err := database.ConfirmExit(config.GetDB(), int64(permitID)); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// Already confirmed or never existed; the guard must see the
			// failure rather than a silent success.
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "الإذن غير موجود أو تم تأكيده مسبقاً"})
		}
		log.Printf("Failed to confirm exit %d: %v", permitID, err)
		return c.Status(500).JSON(fiber.Map{"success": false, "error": models.LocalizedMessage(models.ErrPersistence)})
	}

	services.CountPermitConfirmed()
	return c.JSON(fiber.Map{"success": true})
}

func ExitReportAPI(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	report, err := database.GetExitReport(config.GetDB(), date)
	if err != nil {
		log.Printf("Failed to build exit report: %v", err)
		return c.Status(500).JSON(fiber.Map{"success": false, "error": models.LocalizedMessage(models.ErrPersistence)})
	}
	return c.JSON(fiber.Map{"success": true, "data": report})
}
