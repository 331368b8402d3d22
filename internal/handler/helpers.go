package handler

import (
	"errors"
	"time"

	"go-shop-pos/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// User info helpers reading the JWT context set by RequireAuth.
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "Unknown"
	}
	return userName.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// parseDateQuery reads an optional YYYY-MM-DD query param.
func parseDateQuery(c *fiber.Ctx, key string) *time.Time {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}

// fail maps the error taxonomy onto HTTP statuses.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case apperr.IsInsufficientStock(err):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, apperr.ErrEmptySale),
		errors.Is(err, apperr.ErrNoValidItems),
		errors.Is(err, apperr.ErrSKUExists),
		errors.Is(err, apperr.ErrNameExists),
		apperr.IsValidation(err):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
}
