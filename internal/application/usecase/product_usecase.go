package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/access"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/pkg/validation"
)

// ProductUseCase casos de uso CRUD para productos. Las lecturas son públicas;
// las escrituras requieren un usuario autenticado (los productos no tienen dueño).
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, callerID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := access.RequireCaller(callerID); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Price:     in.Price,
		Stock:     in.Stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID. ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// List devuelve todos los productos.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.ToProductResponse(p))
	}
	return items, nil
}

// Update actualiza nombre, precio o stock de un producto.
// El stock solo se escribe si viene en la entrada; así una edición de nombre o precio no pisa
// las reservas confirmadas entre la lectura y la escritura.
func (uc *ProductUseCase) Update(ctx context.Context, callerID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := access.RequireCaller(callerID); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	}
	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil || in.Price != nil {
		if in.Name != nil {
			product.Name = strings.TrimSpace(*in.Name)
		}
		if in.Price != nil {
			product.Price = *in.Price
		}
		product.UpdatedAt = time.Now()
		if err := uc.repo.Update(ctx, product); err != nil {
			return nil, err
		}
	}
	if in.Stock != nil {
		if err := uc.repo.SetStock(ctx, id, *in.Stock); err != nil {
			return nil, err
		}
	}
	// Releer: el stock devuelto es el vigente, no el leído al principio.
	product, err = uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, callerID, id string) error {
	if err := access.RequireCaller(callerID); err != nil {
		return err
	}
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) load(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return product, nil
}
