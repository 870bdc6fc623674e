package inventory

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// StockStore lo mínimo que el ledger necesita del almacenamiento de productos.
// repository.ProductRepository lo satisface.
type StockStore interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	DecrementStock(ctx context.Context, id string, qty int) (bool, error)
	IncrementStock(ctx context.Context, id string, qty int) error
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// Recorder recibe los eventos del ledger (métricas). Puede ser nil.
type Recorder interface {
	UnitsReserved(n int)
	ReservationRejected()
	UnitsReleased(n int)
}

type nopRecorder struct{}

func (nopRecorder) UnitsReserved(int)    {}
func (nopRecorder) ReservationRejected() {}
func (nopRecorder) UnitsReleased(int)    {}
