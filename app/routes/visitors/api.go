package visitors

import (
	"database/sql"
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

func SendOTPAPI(c *fiber.Ctx) error {
	type SendRequest struct {
		MobileNumber string `json:"mobile_number" validate:"required"`
	}

	var req SendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "طلب غير صالح"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": models.LocalizedMessage(models.ErrValidation)})
	}

	if err := verifier.IssueChallenge(req.MobileNumber); err != nil {
		log.Printf("OTP issue failed for %s: %v", req.MobileNumber, err)
		return c.JSON(fiber.Map{"success": false, "error": models.LocalizedMessage(err)})
	}
	return c.JSON(fiber.Map{"success": true})
}

func VerifyOTPAPI(c *fiber.Ctx) error {
	type VerifyRequest struct {
		MobileNumber string `json:"mobile_number" validate:"required"`
		Code         string `json:"code" validate:"required"`
	}

	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "طلب غير صالح"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": models.LocalizedMessage(models.ErrValidation)})
	}

	if err := verifier.VerifyChallenge(req.MobileNumber, req.Code); err != nil {
		return c.JSON(fiber.Map{"success": false, "error": models.LocalizedMessage(err)})
	}
	return c.JSON(fiber.Map{"success": true})
}

func SubmitVisitorAPI(c *fiber.Ctx) error {
	type SubmitRequest struct {
		Name         string `json:"name" validate:"required"`
		IDNumber     string `json:"id_number" validate:"required"`
		MobileNumber string `json:"mobile_number" validate:"required"`
		Purpose      string `json:"purpose" validate:"required"`
		Signature    string `json:"signature"`
		OTPCode      string `json:"otp_code"`
	}

	var req SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "طلب غير صالح"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": models.LocalizedMessage(models.ErrValidation)})
	}

	// The OTP gate is enforced here, not in the verifier: when the flag is
	// on, the submitted code is verified (and consumed) before the row is
	// written, so a client cannot skip the kiosk's verification step. Only
	// an explicit "false" disables the gate; a missing row counts as on.
	enabled, err := database.GetSetting(config.GetDB(), "enable_otp")
	if err != nil && err != sql.ErrNoRows {
		log.Printf("Failed to read enable_otp: %v", err)
		return c.JSON(fiber.Map{"success": false, "error": models.LocalizedMessage(models.ErrPersistence)})
	}
	if enabled != "false" {
		if err := verifier.VerifyChallenge(req.MobileNumber, req.OTPCode); err != nil {
			return c.JSON(fiber.Map{"success": false, "error": models.LocalizedMessage(err)})
		}
	}

	visitor := &models.Visitor{
		Name:         req.Name,
		IDNumber:     req.IDNumber,
		MobileNumber: req.MobileNumber,
		Purpose:      req.Purpose,
		Signature:    req.Signature,
	}
	if err := database.CreateVisitor(config.GetDB(), visitor); err != nil {
		log.Printf("Failed to save visitor: %v", err)
		return c.JSON(fiber.Map{"success": false, "error": models.LocalizedMessage(models.ErrPersistence)})
	}

	services.CountVisitorCheckin()
	return c.JSON(fiber.Map{"success": true, "id": visitor.ID})
}

func GetVisitorsAPI(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	visitorList, err := database.GetVisitorsByDate(config.GetDB(), date)
	if err != nil {
		log.Printf("Failed to get visitors: %v", err)
		return c.Status(500).JSON(fiber.Map{"success": false, "error": models.LocalizedMessage(models.ErrPersistence)})
	}
	return c.JSON(fiber.Map{"success": true, "data": visitorList})
}
