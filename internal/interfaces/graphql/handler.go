package graphql

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	apphttp "github.com/jhoicas/pedidos-api/internal/interfaces/http"
)

// Request cuerpo estándar de una petición GraphQL sobre HTTP.
type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// Handler ejecuta la operación en POST /graphql. El usuario lo resuelve IdentityMiddleware;
// un token inválido deja la petición como anónima.
func Handler(schema graphql.Schema) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req Request
		if err := c.BodyParser(&req); err != nil || req.Query == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: domain.CodeValidation, Message: "query requerido"})
		}
		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        WithCaller(c.UserContext(), apphttp.GetUserID(c)),
		})
		return c.JSON(result)
	}
}
