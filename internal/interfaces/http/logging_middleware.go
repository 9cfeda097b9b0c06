package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/kyujizt/Storage-Konstruksi/pkg/logger"
)

const localLogger = "logger"

// RequestID asigna un X-Request-ID (uuid v4) cuando el cliente no envía uno.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	})
}

// RequestLogger registra cada petición: método, ruta, status, latencia, request id y actor.
func RequestLogger(log *logger.Logger) fiber.Handler {
	httpLog := log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		c.Locals(localLogger, httpLog)

		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler de Fiber escriba la respuesta antes de leer el status.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := httpLog.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = httpLog.Error()
		case status >= fiber.StatusBadRequest:
			ev = httpLog.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", requestIDOf(c)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return nil
	}
}

func requestIDOf(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}

func requestLogger(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(localLogger).(*logger.Logger); ok {
		return l
	}
	return logger.Nop()
}
