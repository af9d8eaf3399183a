package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/product-sheet-extractor/internal/models"
	"alfredoptarigan/product-sheet-extractor/internal/repositories"
	"alfredoptarigan/product-sheet-extractor/internal/services"
	"alfredoptarigan/product-sheet-extractor/internal/views"
	"alfredoptarigan/product-sheet-extractor/internal/workflow"
)

const (
	SessionCookie = "session_id"
	sessionKey    = "session"
	pageTitle     = "Product Sheet Extractor"

	noFileMessage = "No file selected"
)

type WorkflowHandler struct {
	sessions    repositories.SessionRepository
	extractor   services.ExtractorService
	exporter    services.CSVExporter
	renderer      *views.Renderer
	maxFileSize   int64
	submitTimeout time.Duration
}

func NewWorkflowHandler(
	sessions repositories.SessionRepository,
	extractor services.ExtractorService,
	exporter services.CSVExporter,
	renderer *views.Renderer,
	maxFileSize int64,
	submitTimeout time.Duration,
) *WorkflowHandler {
	return &WorkflowHandler{
		sessions:      sessions,
		extractor:     extractor,
		exporter:      exporter,
		renderer:      renderer,
		maxFileSize:   maxFileSize,
		submitTimeout: submitTimeout,
	}
}

// Session attaches the caller's workflow session, creating one when the
// cookie is missing or has expired.
func (h *WorkflowHandler) Session(c *fiber.Ctx) error {
	if id, err := uuid.Parse(c.Cookies(SessionCookie)); err == nil {
		if session, ok := h.sessions.FindByID(id); ok {
			h.sessions.Touch(id)
			c.Locals(sessionKey, session)
			return c.Next()
		}
	}

	session := h.sessions.Create(workflow.NewController(h.extractor, h.exporter))
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    session.ID.String(),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Locals(sessionKey, session)
	return c.Next()
}

func controller(c *fiber.Ctx) *workflow.Controller {
	return c.Locals(sessionKey).(*repositories.Session).Controller
}

// HandlePage handles GET /
func (h *WorkflowHandler) HandlePage(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK)
}

// HandleSelect handles POST /select
func (h *WorkflowHandler) HandleSelect(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return h.rejectSelection(c, noFileMessage)
	}

	if fileHeader.Size > h.maxFileSize {
		return h.rejectSelection(c, fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("failed to open uploaded file: %v", err))
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("failed to read uploaded file: %v", err))
	}

	err = controller(c).SelectFile(models.SelectedFile{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Data:        data,
	})

	var typeErr *workflow.InvalidFileTypeError
	switch {
	case errors.As(err, &typeErr):
		log.Printf("⚠️  Rejected %s (%s)\n", typeErr.Name, typeErr.ContentType)
		return h.render(c, fiber.StatusBadRequest)
	case errors.Is(err, workflow.ErrInvalidTransition):
		return h.render(c, fiber.StatusConflict)
	case err != nil:
		return err
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleSubmit handles POST /submit. The extraction runs in the background
// so the browser is redirected straight to the Loading page.
func (h *WorkflowHandler) HandleSubmit(c *fiber.Ctx) error {
	ctrl := controller(c)

	ctx, cancel := context.Background(), context.CancelFunc(func() {})
	if h.submitTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, h.submitTimeout)
	}

	done, err := ctrl.Start(ctx)
	if err != nil {
		cancel()
		if errors.Is(err, workflow.ErrNoFileSelected) || errors.Is(err, workflow.ErrInvalidTransition) {
			return h.render(c, fiber.StatusConflict)
		}
		return err
	}

	go func() {
		defer cancel()
		if err := <-done; err != nil {
			log.Printf("❌ Extraction failed: %v\n", err)
			return
		}
		log.Println("✅ Extraction completed")
	}()

	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleExport handles GET /export
func (h *WorkflowHandler) HandleExport(c *fiber.Ctx) error {
	filename, data, err := controller(c).ExportCSV()
	if errors.Is(err, workflow.ErrNoResult) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "No extraction result to export",
		})
	}
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{
		"filename": services.SafeFilename(filename),
	}))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(data)
}

// HandleReset handles POST /reset
func (h *WorkflowHandler) HandleReset(c *fiber.Ctx) error {
	if err := controller(c).Reset(); err != nil {
		return h.transitionFailed(c, err)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleRetry handles POST /retry
func (h *WorkflowHandler) HandleRetry(c *fiber.Ctx) error {
	if err := controller(c).Retry(); err != nil {
		return h.transitionFailed(c, err)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *WorkflowHandler) rejectSelection(c *fiber.Ctx, message string) error {
	if err := controller(c).RejectSelection(message); err != nil {
		return h.transitionFailed(c, err)
	}
	return h.render(c, fiber.StatusBadRequest)
}

func (h *WorkflowHandler) transitionFailed(c *fiber.Ctx, err error) error {
	if errors.Is(err, workflow.ErrInvalidTransition) {
		return h.render(c, fiber.StatusConflict)
	}
	return err
}

func (h *WorkflowHandler) render(c *fiber.Ctx, status int) error {
	theme := services.NewThemeService(newCookieStore(c))
	theme.LoadTheme()

	var buf bytes.Buffer
	err := h.renderer.Render(&buf, views.Page{
		Title:      pageTitle,
		Theme:      string(theme.Current()),
		ThemeClass: theme.Class(),
		Snapshot:   controller(c).Snapshot(),
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("failed to render page: %v", err))
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
