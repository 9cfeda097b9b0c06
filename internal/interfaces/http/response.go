package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kyujizt/Storage-Konstruksi/internal/application/dto"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain"
)

// Códigos de error del sobre de respuesta.
const (
	CodeValidation        = "validation_error"
	CodeInvalidDate       = "invalid_date"
	CodeInvalidBody       = "invalid_body"
	CodeUnauthorized      = "unauthorized"
	CodeForbidden         = "forbidden"
	CodeNotFound          = "not_found"
	CodeInsufficientStock = "insufficient_stock"
	CodeConflict          = "conflict"
	CodeDuplicate         = "duplicate"
	CodeInternal          = "internal"
)

const internalMessage = "An unexpected error occurred. Please try again later."

func success(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.SuccessResponse{
		Status:  dto.StatusSuccess,
		Message: message,
		Data:    data,
	})
}

func successPage(c *fiber.Ctx, data any, p dto.Pagination) error {
	return c.Status(fiber.StatusOK).JSON(dto.SuccessResponse{
		Status:     dto.StatusSuccess,
		Data:       data,
		Pagination: &p,
	})
}

func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.NewError(code, message))
}

// writeError traduce la taxonomía de dominio a HTTP. Los fallos internos se registran con su
// causa y la respuesta queda genérica.
func writeError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	var invalid *domain.ValidationError

	switch {
	case errors.As(err, &insufficient):
		return fail(c, fiber.StatusConflict, CodeInsufficientStock, insufficient.Error())
	case errors.As(err, &invalid):
		return fail(c, fiber.StatusBadRequest, CodeValidation, invalid.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, CodeValidation, "Invalid input")
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, CodeNotFound, "Resource not found")
	case errors.Is(err, domain.ErrDuplicate):
		return fail(c, fiber.StatusConflict, CodeDuplicate, "Resource already exists")
	case errors.Is(err, domain.ErrConflict):
		return fail(c, fiber.StatusConflict, CodeConflict, "Operation conflicts with the current state")
	case errors.Is(err, domain.ErrInsufficientStock):
		return fail(c, fiber.StatusConflict, CodeInsufficientStock, "Not enough stock")
	case errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, CodeUnauthorized, "Authentication required")
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, CodeForbidden, "Permission denied")
	}

	requestLogger(c).Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")
	return fail(c, fiber.StatusInternalServerError, CodeInternal, internalMessage)
}
