package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
)

// Locals keys que dejan los middlewares en Fiber.
const (
	LocalUserID     = "user_id"
	LocalTokenError = "token_error"
)

// Authenticator resuelve el userID de un token (auth.AuthUseCase).
type Authenticator interface {
	Authenticate(token string) (string, error)
}

// IdentityMiddleware lee el Bearer Token si viene y deja el UserID en c.Locals.
// Nunca corta la petición: sin token (o con token inválido) la petición sigue como anónima
// y cada ruta decide si exige identidad con RequireAuth.
func IdentityMiddleware(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return c.Next()
		}
		userID, err := authn.Authenticate(token)
		if err != nil {
			c.Locals(LocalTokenError, true)
			requestLogger(c).Debug().Err(err).Msg("token descartado")
			return c.Next()
		}
		c.Locals(LocalUserID, userID)
		return c.Next()
	}
}

// RequireAuth responde 401 si IdentityMiddleware no resolvió un usuario.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetUserID(c) != "" {
			return c.Next()
		}
		if bad, _ := c.Locals(LocalTokenError).(bool); bad {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: domain.CodeInvalidToken, Message: "token inválido o expirado"})
		}
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: domain.CodeUnauthorized, Message: "Authorization header requerido"})
	}
}

// GetUserID devuelve el UserID del contexto ("" si la petición es anónima).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// bearerToken extrae el token de "Authorization: Bearer <token>".
func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
