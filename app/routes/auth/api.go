package auth

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"school-gate/app/config"
	"school-gate/app/database"
)

func LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "طلب غير صالح"})
	}

	stored, err := database.GetSetting(config.GetDB(), "admin_password")
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(401).JSON(fiber.Map{"success": false, "error": "كلمة المرور غير صحيحة"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "حدث خطأ في الخادم"})
	}

	if !CheckPasswordHash(req.Password, stored) {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "كلمة المرور غير صحيحة"})
	}

	token, err := GenerateAdminToken()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "حدث خطأ في الخادم"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "admin_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		Secure:   false, // behind TLS termination in production
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{"success": true})
}

func LogoutAPI(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "admin_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.Redirect("/login")
}

func ChangePasswordAPI(c *fiber.Ctx) error {
	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "طلب غير صالح"})
	}
	if req.NewPassword == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "كلمة المرور الجديدة مطلوبة"})
	}

	stored, err := database.GetSetting(config.GetDB(), "admin_password")
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "حدث خطأ في الخادم"})
	}

	if !CheckPasswordHash(req.CurrentPassword, stored) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "كلمة المرور الحالية غير صحيحة"})
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "حدث خطأ في الخادم"})
	}

	if err := database.SetSetting(config.GetDB(), "admin_password", hashed); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "حدث خطأ في التحديث"})
	}

	return c.JSON(fiber.Map{"success": true})
}
