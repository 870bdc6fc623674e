package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/inventory"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/access"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/pkg/validation"
)

// OrderConfig comportamiento transaccional de los pedidos.
type OrderConfig struct {
	// Atomic: reserva de stock y escritura del pedido en una sola transacción.
	Atomic bool
}

// OrderUseCase casos de uso de pedidos. Crear o editar líneas pasa por el ledger de inventario.
type OrderUseCase struct {
	orders   repository.OrderRepository
	clients  repository.ClientRepository
	products repository.ProductRepository
	txRunner inventory.TxRunner
	ledger   *inventory.Ledger
	cfg      OrderConfig
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	orders repository.OrderRepository,
	clients repository.ClientRepository,
	products repository.ProductRepository,
	txRunner inventory.TxRunner,
	ledger *inventory.Ledger,
	cfg OrderConfig,
) *OrderUseCase {
	return &OrderUseCase{
		orders:   orders,
		clients:  clients,
		products: products,
		txRunner: txRunner,
		ledger:   ledger,
		cfg:      cfg,
	}
}

// withStock ejecuta fn dentro de una transacción si el modo es atómico; si no, con los
// repositorios normales (cada descuento se confirma por separado).
func (uc *OrderUseCase) withStock(ctx context.Context, fn func(repository.ProductRepository, repository.OrderRepository) error) error {
	if uc.cfg.Atomic && uc.txRunner != nil {
		return uc.txRunner.Run(ctx, fn)
	}
	return fn(uc.products, uc.orders)
}

// Create registra un pedido para un cliente de callerID y reserva su stock.
// El total se calcula con los precios actuales; el estado por defecto es PENDING.
func (uc *OrderUseCase) Create(ctx context.Context, callerID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := access.RequireCaller(callerID); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if _, err := uc.loadOwnedClient(ctx, callerID, in.ClientID); err != nil {
		return nil, err
	}
	status := entity.OrderStatusPending
	if in.Status != "" {
		status = entity.OrderStatus(in.Status)
	}
	now := time.Now()
	order := &entity.Order{
		ID:            uuid.New().String(),
		ClientID:      in.ClientID,
		Items:         dto.ToOrderItems(in.Items),
		Status:        status,
		SalesPersonID: callerID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err := uc.withStock(ctx, func(products repository.ProductRepository, orders repository.OrderRepository) error {
		var err error
		if status.HoldsStock() {
			order.Total, err = uc.ledger.Reserve(ctx, products, order.Items)
		} else {
			// Un pedido creado ya cancelado no retiene stock; solo se calcula el total.
			order.Total, err = uc.ledger.Quote(ctx, products, order.Items)
		}
		if err != nil {
			return err
		}
		return orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToOrderResponse(order), nil
}

// GetByID devuelve el pedido si callerID es su vendedor.
func (uc *OrderUseCase) GetByID(ctx context.Context, callerID, id string) (*dto.OrderResponse, error) {
	order, err := uc.loadOwned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	return dto.ToOrderResponse(order), nil
}

// ListBySeller devuelve los pedidos de callerID.
func (uc *OrderUseCase) ListBySeller(ctx context.Context, callerID string) ([]dto.OrderResponse, error) {
	return uc.list(ctx, callerID, "")
}

// ListByStatus devuelve los pedidos de callerID con el estado indicado.
func (uc *OrderUseCase) ListByStatus(ctx context.Context, callerID, status string) ([]dto.OrderResponse, error) {
	st := entity.OrderStatus(status)
	if !st.Valid() {
		return nil, fmt.Errorf("%w: status %q no válido", domain.ErrInvalidInput, status)
	}
	return uc.list(ctx, callerID, st)
}

func (uc *OrderUseCase) list(ctx context.Context, callerID string, status entity.OrderStatus) ([]dto.OrderResponse, error) {
	if err := access.RequireCaller(callerID); err != nil {
		return nil, err
	}
	list, err := uc.orders.List(ctx, repository.OrderFilter{SalesPersonID: callerID, Status: status})
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *dto.ToOrderResponse(o))
	}
	return out, nil
}

// Update edita cliente, líneas o estado de un pedido de callerID.
//
// Con un ledger que reconcilia, las líneas y los cambios de estado hacia o desde CANCELED
// ajustan el stock por diferencia. Sin reconciliación solo un cambio de líneas toca el
// stock, descontando de nuevo las líneas completas.
//
// Lo retenido se calcula sobre el pedido releído con bloqueo dentro de la transacción:
// dos ediciones concurrentes se aplican una detrás de otra y no liberan dos veces lo mismo.
func (uc *OrderUseCase) Update(ctx context.Context, callerID, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if err := access.RequireCaller(callerID); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	order, err := uc.loadOwned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	// El cliente (nuevo o actual) debe existir y pertenecer a quien edita.
	clientID := order.ClientID
	if in.ClientID != nil {
		clientID = *in.ClientID
	}
	if _, err := uc.loadOwnedClient(ctx, callerID, clientID); err != nil {
		return nil, err
	}

	var updated entity.Order
	err = uc.withStock(ctx, func(products repository.ProductRepository, orders repository.OrderRepository) error {
		cur, err := orders.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if cur == nil {
			return fmt.Errorf("pedido %s: %w", id, domain.ErrNotFound)
		}
		updated = *cur
		if in.ClientID != nil {
			updated.ClientID = *in.ClientID
		}
		if in.Items != nil {
			updated.Items = dto.ToOrderItems(in.Items)
		}
		if in.Status != nil {
			updated.Status = entity.OrderStatus(*in.Status)
		}
		updated.UpdatedAt = time.Now()

		itemsChanged := in.Items != nil
		holdChanged := cur.Status.HoldsStock() != updated.Status.HoldsStock()
		touchStock := itemsChanged
		if uc.ledger.Reconciles() {
			touchStock = itemsChanged || holdChanged
		}
		if touchStock {
			total, err := uc.ledger.Amend(ctx, products, inventory.Amendment{
				Held:  cur.HeldItems(),
				Lines: updated.Items,
				Hold:  updated.Status.HoldsStock(),
			})
			if err != nil {
				return err
			}
			updated.Total = total
		}
		return orders.Update(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToOrderResponse(&updated), nil
}

// Delete elimina un pedido de callerID. No devuelve stock: para liberarlo hay que cancelarlo antes.
func (uc *OrderUseCase) Delete(ctx context.Context, callerID, id string) error {
	if _, err := uc.loadOwned(ctx, callerID, id); err != nil {
		return err
	}
	return uc.orders.Delete(ctx, id)
}

// Load devuelve la entidad del pedido aplicando la regla de propiedad. Lo usa el PDF.
func (uc *OrderUseCase) Load(ctx context.Context, callerID, id string) (*entity.Order, *entity.Client, error) {
	order, err := uc.loadOwned(ctx, callerID, id)
	if err != nil {
		return nil, nil, err
	}
	client, err := uc.clients.GetByID(ctx, order.ClientID)
	if err != nil {
		return nil, nil, err
	}
	return order, client, nil
}

func (uc *OrderUseCase) loadOwned(ctx context.Context, callerID, id string) (*entity.Order, error) {
	if err := access.RequireCaller(callerID); err != nil {
		return nil, err
	}
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("pedido %s: %w", id, domain.ErrNotFound)
	}
	if err := access.CheckOwnership(callerID, order.SalesPersonID); err != nil {
		return nil, err
	}
	return order, nil
}

func (uc *OrderUseCase) loadOwnedClient(ctx context.Context, callerID, clientID string) (*entity.Client, error) {
	client, err := uc.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("cliente %s: %w", clientID, domain.ErrNotFound)
	}
	if err := access.CheckOwnership(callerID, client.SellerID); err != nil {
		return nil, err
	}
	return client, nil
}
