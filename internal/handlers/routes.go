package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"

	"alfredoptarigan/product-sheet-extractor/internal/views"
)

func RegisterRoutes(app *fiber.App, wf *WorkflowHandler, theme *ThemeHandler) {
	api := app.Group("/api/v1")
	api.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	app.Use("/static", filesystem.New(filesystem.Config{
		Root: http.FS(views.Static()),
	}))

	app.Get("/", wf.Session, wf.HandlePage)
	app.Post("/select", wf.Session, wf.HandleSelect)
	app.Post("/submit", wf.Session, wf.HandleSubmit)
	app.Get("/export", wf.Session, wf.HandleExport)
	app.Post("/reset", wf.Session, wf.HandleReset)
	app.Post("/retry", wf.Session, wf.HandleRetry)
	app.Post("/theme", theme.HandleTheme)
}

// ErrorHandler renders handler errors as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
