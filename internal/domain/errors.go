package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrAlreadyExists      = errors.New("el recurso ya existe")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidToken       = errors.New("token inválido o expirado")
)

// Códigos estables expuestos a los clientes de la API.
const (
	CodeNotFound           = "NOT_FOUND"
	CodeAlreadyExists      = "ALREADY_EXISTS"
	CodeValidation         = "VALIDATION"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInsufficientStock  = "INSUFFICIENT_STOCK"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeInternal           = "INTERNAL"
)

// InsufficientStockError lo produce el ledger cuando una línea pide más unidades de las disponibles.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s excede la cantidad disponible", e.ProductName)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// Code traduce un error a su código estable. Los errores desconocidos son CodeInternal.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrAlreadyExists):
		return CodeAlreadyExists
	case errors.Is(err, ErrInvalidInput):
		return CodeValidation
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrInsufficientStock):
		return CodeInsufficientStock
	case errors.Is(err, ErrInvalidToken):
		return CodeInvalidToken
	default:
		return CodeInternal
	}
}

// IsInternal indica si el error no pertenece a la taxonomía de dominio.
func IsInternal(err error) bool {
	return err != nil && Code(err) == CodeInternal
}
