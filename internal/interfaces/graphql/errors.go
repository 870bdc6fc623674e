package graphql

import (
	"errors"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// apiError error con código estable en extensions.code (gqlerrors.ExtendedError).
type apiError struct {
	code       string
	message    string
	extensions map[string]interface{}
}

func (e *apiError) Error() string { return e.message }

func (e *apiError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.code}
	for k, v := range e.extensions {
		ext[k] = v
	}
	return ext
}

// toAPIError traduce un error de dominio. Los internos se registran y salen con mensaje genérico.
func toAPIError(log *logger.Logger, op string, err error) error {
	code := domain.Code(err)
	if code == domain.CodeInternal {
		log.Error().Err(err).Str("operation", op).Msg("error interno")
		return &apiError{code: code, message: "error interno del servidor"}
	}
	out := &apiError{code: code, message: err.Error()}
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		out.extensions = map[string]interface{}{
			"productId": stockErr.ProductID,
			"requested": stockErr.Requested,
			"available": stockErr.Available,
		}
	}
	return out
}
