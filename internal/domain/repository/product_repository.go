package repository

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si no existe; Update, SetStock y Delete devuelven domain.ErrNotFound.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	SearchByName(ctx context.Context, text string, limit int) ([]*entity.Product, error)
	// Update modifica nombre y precio. El stock solo cambia con SetStock o los métodos del ledger.
	Update(ctx context.Context, product *entity.Product) error
	// SetStock fija el stock en un valor absoluto (ajuste manual de inventario).
	SetStock(ctx context.Context, id string, stock int) error
	Delete(ctx context.Context, id string) error

	// DecrementStock descuenta qty solo si stock >= qty. Devuelve false si no alcanzó
	// (incluye el caso de una reserva concurrente que ganó la carrera).
	DecrementStock(ctx context.Context, id string, qty int) (bool, error)
	// IncrementStock devuelve unidades al inventario. domain.ErrNotFound si el producto no existe.
	IncrementStock(ctx context.Context, id string, qty int) error
}
