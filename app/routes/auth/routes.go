package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	app.Get("/login", ShowLoginPage)

	auth := app.Group("/auth")
	auth.Post("/login", LoginAPI)
	auth.Post("/logout", LogoutAPI)

	auth.Use(AuthMiddleware)
	auth.Post("/change-password", ChangePasswordAPI)
}

func ShowLoginPage(c *fiber.Ctx) error {
	// Already authenticated admins go straight to the permit page.
	if tokenString := c.Cookies("admin_token"); tokenString != "" {
		if _, err := ValidateToken(tokenString); err == nil {
			return c.Redirect("/admin/exit-permit")
		}
	}

	return c.Render("auth/login", fiber.Map{
		"Title": "تسجيل الدخول",
	})
}

// AuthMiddleware gates the admin surface. API requests get a 401 JSON
// response; page requests are redirected to the login form.
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := c.Cookies("admin_token")
	if tokenString == "" {
		return reject(c)
	}

	claims, err := ValidateToken(tokenString)
	if err != nil {
		return reject(c)
	}

	c.Locals("admin_role", claims.Role)
	return c.Next()
}

func reject(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Path(), "/api") || strings.HasPrefix(c.Path(), "/auth") || strings.HasPrefix(c.Path(), "/metrics") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "غير مصرح",
		})
	}
	return c.Redirect("/login")
}
