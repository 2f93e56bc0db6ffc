package settings

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"school-gate/app/config"
	"school-gate/app/database"
)

func GetSettingsAPI(c *fiber.Ctx) error {
	values, err := database.GetSettings(config.GetDB(), editableKeys...)
	if err != nil {
		log.Printf("Failed to get settings: %v", err)
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "حدث خطأ في الخادم"})
	}
	return c.JSON(fiber.Map{"success": true, "data": values})
}

func UpdateSettingsAPI(c *fiber.Ctx) error {
	var req map[string]string
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "طلب غير صالح"})
	}

	values := make(map[string]string)
	for _, key := range editableKeys {
		if v, ok := req[key]; ok {
			values[key] = v
		}
	}
	if len(values) == 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "لا توجد إعدادات للتحديث"})
	}

	if err := database.SetSettings(config.GetDB(), values); err != nil {
		log.Printf("Failed to update settings: %v", err)
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "حدث خطأ في التحديث"})
	}
	return c.JSON(fiber.Map{"success": true})
}
