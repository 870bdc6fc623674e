package repository

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// ClientFilter filtros opcionales para listar clientes. Campos vacíos no filtran.
type ClientFilter struct {
	SellerID string
}

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	// Create devuelve domain.ErrAlreadyExists si el email ya está registrado.
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetByEmail(ctx context.Context, email string) (*entity.Client, error)
	List(ctx context.Context, filter ClientFilter) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id string) error
}
