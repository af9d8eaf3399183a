package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/product-sheet-extractor/internal/models"
	"alfredoptarigan/product-sheet-extractor/internal/services"
)

const themeCookieMaxAge = 365 * 24 * time.Hour

// cookieStore persists preferences as browser cookies, one cookie per key.
type cookieStore struct {
	c *fiber.Ctx
}

func newCookieStore(c *fiber.Ctx) *cookieStore {
	return &cookieStore{c: c}
}

func (s *cookieStore) Get(key string) (string, bool, error) {
	value := s.c.Cookies(key)
	return value, value != "", nil
}

func (s *cookieStore) Set(key, value string) error {
	s.c.Cookie(&fiber.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(themeCookieMaxAge),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

type ThemeHandler struct{}

func NewThemeHandler() *ThemeHandler {
	return &ThemeHandler{}
}

// HandleTheme handles POST /theme
func (h *ThemeHandler) HandleTheme(c *fiber.Ctx) error {
	theme, err := models.ParseTheme(c.FormValue("theme"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := services.NewThemeService(newCookieStore(c)).SetTheme(theme); err != nil {
		return err
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}
