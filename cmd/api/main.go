package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/product-sheet-extractor/internal/config"
	"alfredoptarigan/product-sheet-extractor/internal/handlers"
	"alfredoptarigan/product-sheet-extractor/internal/repositories"
	"alfredoptarigan/product-sheet-extractor/internal/services"
	"alfredoptarigan/product-sheet-extractor/internal/views"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	sessionRepo := repositories.NewSessionRepository()

	// Initialize services
	extractorService := services.NewExtractorService(
		cfg.Extractor.URL,
		cfg.Extractor.Timeout,
		cfg.Extractor.MaxResponseSize,
	)
	csvExporter := services.NewCSVExporter()
	log.Printf("✅ Extractor backend: %s%s\n", cfg.Extractor.URL, services.ProcessPath)

	renderer, err := views.NewRenderer()
	if err != nil {
		log.Fatalf("❌ Failed to parse templates: %v", err)
	}

	sweeper := services.NewSessionSweeper(sessionRepo, cfg.Session.TTL, cfg.Session.SweepInterval)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)

	// Initialize Handlers
	workflowHandler := handlers.NewWorkflowHandler(
		sessionRepo,
		extractorService,
		csvExporter,
		renderer,
		cfg.Storage.MaxFileSize,
		cfg.Extractor.Timeout,
	)
	themeHandler := handlers.NewThemeHandler()
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Product Sheet Extractor",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 64*1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	handlers.RegisterRoutes(app, workflowHandler, themeHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		sweeper.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
