package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/kyujizt/Storage-Konstruksi/internal/domain"
)

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return id, nil
}

// pathID lee :id como entero positivo.
func pathID(c *fiber.Ctx) (int64, error) {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return 0, domain.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}
