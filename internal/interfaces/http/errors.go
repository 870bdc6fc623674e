package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
)

// statusByCode traduce el código estable de dominio a status HTTP.
var statusByCode = map[string]int{
	domain.CodeNotFound:           fiber.StatusNotFound,
	domain.CodeAlreadyExists:      fiber.StatusConflict,
	domain.CodeValidation:         fiber.StatusBadRequest,
	domain.CodeUnauthorized:       fiber.StatusUnauthorized,
	domain.CodeForbidden:          fiber.StatusForbidden,
	domain.CodeInvalidCredentials: fiber.StatusUnauthorized,
	domain.CodeInsufficientStock:  fiber.StatusConflict,
	domain.CodeInvalidToken:       fiber.StatusUnauthorized,
}

// respondError escribe el ErrorResponse que corresponde al error de dominio.
// Los errores internos se registran y salen con un mensaje genérico.
func respondError(c *fiber.Ctx, err error) error {
	code := domain.Code(err)
	status, ok := statusByCode[code]
	if !ok {
		requestLogger(c).Error().Err(err).Str("path", c.Path()).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: domain.CodeInternal, Message: "error interno del servidor"})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: domain.CodeValidation, Message: "cuerpo inválido"})
}

// ErrorHandler para fiber.Config: rutas inexistentes, métodos no permitidos y panics recuperados.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		code := domain.CodeInternal
		switch fe.Code {
		case fiber.StatusNotFound:
			code = domain.CodeNotFound
		case fiber.StatusBadRequest, fiber.StatusMethodNotAllowed, fiber.StatusRequestEntityTooLarge:
			code = domain.CodeValidation
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return respondError(c, err)
}
