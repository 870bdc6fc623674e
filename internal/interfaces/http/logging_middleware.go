package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/pedidos-api/pkg/logger"
)

const (
	localLogger     = "logger"
	headerRequestID = "X-Request-ID"
)

// RequestLogger registra cada petición (método, ruta, status, latencia, usuario) y deja en
// c.Locals un sublogger con el request_id para los handlers.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(headerRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(headerRequestID, reqID)

		c.Locals(localLogger, log.Component("http").WithStr("request_id", reqID))

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		ev := requestLogger(c).Info()
		if status >= fiber.StatusInternalServerError {
			ev = requestLogger(c).Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return err
	}
}

// requestLogger devuelve el logger de la petición o uno mudo si RequestLogger no está montado.
func requestLogger(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(localLogger).(*logger.Logger); ok && l != nil {
		return l
	}
	return logger.Nop()
}
