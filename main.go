package main

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"school-gate/app/config"
	"school-gate/app/database"
	"school-gate/app/routes/auth"
	"school-gate/app/routes/permits"
	"school-gate/app/routes/settings"
	"school-gate/app/routes/students"
	"school-gate/app/routes/visitors"
	"school-gate/app/services"
)

// customErrorHandler renders error pages for web requests and a uniform
// {success:false, error} body for API requests.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if len(c.Path()) >= 4 && c.Path()[:4] == "/api" {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"code":    code,
		})
	}

	switch code {
	case 404:
		return c.Status(404).Render("error", fiber.Map{
			"Title":        "الصفحة غير موجودة",
			"ErrorCode":    "404",
			"ErrorMessage": "الصفحة المطلوبة غير موجودة",
		})
	default:
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "خطأ",
			"ErrorCode":    code,
			"ErrorMessage": "حدث خطأ، الرجاء المحاولة لاحقاً",
		})
	}
}

func main() {
	// All date stamping (visit_date, report days) uses server-local time.
	loc, err := time.LoadLocation("Asia/Riyadh")
	if err != nil {
		log.Printf("Warning: failed to load Asia/Riyadh location, falling back to UTC+3: %v", err)
		time.Local = time.FixedZone("AST", 3*60*60)
	} else {
		time.Local = loc
	}
	log.Printf("Application time zone set to: %s", time.Local.String())

	// Initialize configuration and database
	cfg := config.Load()
	defer cfg.DB.Close()

	// Run database migrations
	if err := database.RunMigrations(cfg.DB); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Start background scheduler
	services.StartScheduler(cfg.DB)

	// Outbound SMS and the OTP verifier on top of it
	smsClient := services.NewSMSClient(cfg.DB)
	otpVerifier := services.NewOTPVerifier(cfg.DB, smsClient)

	// Initialize template engine
	engine := html.New("./app/templates", ".html")
	engine.AddFunc("json", func(v interface{}) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	})

	// Create Fiber app
	app := fiber.New(fiber.Config{
		Views:             engine,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
		ErrorHandler:      customErrorHandler,
		BodyLimit:         10 * 1024 * 1024, // signature images arrive as data URLs
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// Static files
	app.Static("/static", "./static")

	// Routes
	auth.SetupAuthRoutes(app)
	visitors.SetupVisitorsRoutes(app, otpVerifier)
	students.SetupStudentsRoutes(app)
	permits.SetupPermitsRoutes(app)
	settings.SetupSettingsRoutes(app)

	// Prometheus metrics, admin-only
	app.Get("/metrics", auth.AuthMiddleware, adaptor.HTTPHandler(promhttp.Handler()))

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
