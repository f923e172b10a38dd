package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	if err := handler.authenticateRequest(c); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.Next()
}

// LanguageMiddleware picks the response language from ?lang= first and
// Accept-Language second.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	language := handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
	if requested := strings.TrimSpace(c.Query("lang")); requested != "" {
		language = handler.i18n.NormalizeLanguage(requested)
	}
	c.Locals(contextLanguageKey, language)
	c.Set(fiber.HeaderContentLanguage, language)
	return c.Next()
}

func (handler *Handler) currentLanguage(c *fiber.Ctx) string {
	if language, ok := c.Locals(contextLanguageKey).(string); ok && language != "" {
		return language
	}
	return handler.i18n.DefaultLanguage()
}

func (handler *Handler) translate(c *fiber.Ctx, key string) string {
	return handler.i18n.Translate(handler.currentLanguage(c), key)
}
