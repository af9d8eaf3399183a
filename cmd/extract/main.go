package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	"alfredoptarigan/product-sheet-extractor/internal/config"
	"alfredoptarigan/product-sheet-extractor/internal/models"
	"alfredoptarigan/product-sheet-extractor/internal/services"
	"alfredoptarigan/product-sheet-extractor/internal/workflow"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, config.Load(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("extract", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	backend := flags.String("backend", cfg.Extractor.URL, "Extraction backend base URL")
	outDir := flags.String("out", cfg.Storage.ExportPath, "Directory for exported CSV files")
	writeCSV := flags.Bool("csv", true, "Write the extracted attributes as CSV")
	theme := flags.String("theme", "", "Set and remember the colour theme (light or dark)")
	prefsPath := flags.String("prefs", cfg.Preferences.Path, "Preferences file")
	timeout := flags.Duration("timeout", cfg.Extractor.Timeout, "Request timeout (0 disables)")
	colorMode := flags.String("color", "auto", "Colour the results table: auto, always or never")

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: extract [flags] <file.pdf>\n\n")
		fmt.Fprintf(stderr, "Uploads a product sheet PDF, prints the extracted attributes and exports them as CSV.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return 2
	}

	logger := log.New(stderr, "", 0)

	color, err := useColor(*colorMode, stdout)
	if err != nil {
		logger.Printf("❌ %v", err)
		return 2
	}

	themeService := services.NewThemeService(services.NewFilePreferenceStore(*prefsPath))
	if *theme != "" {
		parsed, err := models.ParseTheme(*theme)
		if err != nil {
			logger.Printf("❌ %v", err)
			return 2
		}
		if err := themeService.SetTheme(parsed); err != nil {
			logger.Printf("⚠️  %v", err)
		}
	} else {
		themeService.LoadTheme()
	}

	file, err := readSelectedFile(flags.Arg(0))
	if err != nil {
		logger.Printf("❌ %v", err)
		return 1
	}

	controller := workflow.NewController(
		services.NewExtractorService(*backend, *timeout, cfg.Extractor.MaxResponseSize),
		services.NewCSVExporter(),
	)

	if err := controller.SelectFile(file); err != nil {
		logger.Printf("❌ %v", err)
		return 1
	}

	logger.Printf("📤 Uploading %s to %s%s", file.Name, *backend, services.ProcessPath)
	if _, err := controller.Submit(ctx); err != nil {
		logger.Printf("❌ %s", controller.Snapshot().Message)
		return 1
	}

	if err := renderTable(stdout, controller.Rows(), themeService.Current(), color); err != nil {
		logger.Printf("❌ Failed to print results: %v", err)
		return 1
	}

	if !*writeCSV {
		return 0
	}

	filename, data, err := controller.ExportCSV()
	if err != nil {
		logger.Printf("❌ %v", err)
		return 1
	}
	path, err := services.NewStorageService(*outDir).SaveExport(filename, data)
	if err != nil {
		logger.Printf("❌ %v", err)
		return 1
	}
	logger.Printf("✅ Exported %s", path)

	return 0
}

// readSelectedFile loads a local file, taking its content type from the
// extension and falling back to content sniffing.
func readSelectedFile(path string) (models.SelectedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.SelectedFile{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return models.SelectedFile{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	}, nil
}
