package repository

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// OrderFilter filtros opcionales para listar pedidos. Campos vacíos no filtran.
type OrderFilter struct {
	SalesPersonID string
	ClientID      string
	Status        entity.OrderStatus
}

// OrderRepository define el puerto de persistencia para Order (cabecera + líneas).
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetByIDForUpdate lee el pedido bloqueándolo hasta el fin de la transacción en curso,
	// de modo que dos ediciones concurrentes no acrediten el mismo stock retenido.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	// Update reemplaza cabecera y líneas.
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id string) error
}
