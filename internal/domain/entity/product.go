package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario. Los productos no tienen dueño.
// Stock nunca es negativo: el ledger y la BD (CHECK stock >= 0) lo garantizan.
type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal // precio de venta unitario
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
