package memory

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación en memoria de OrderRepository.
type OrderRepo struct {
	s  *Store
	tx *journal
}

// NewOrderRepository construye el repositorio.
func NewOrderRepository(s *Store) *OrderRepo {
	return &OrderRepo{s: s}
}

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders.get(o.ID); ok {
		return domain.ErrAlreadyExists
	}
	r.s.orders.insert(o.ID, copyOrder(o))
	r.tx.record(func() { r.s.orders.remove(o.ID) })
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders.get(id)
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

// GetByIDForUpdate dentro de un TxRunner la lectura ocurre con txMu tomado, así que ninguna
// otra transacción puede modificar el pedido hasta que esta termine.
func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*entity.Order{}
	r.s.orders.each(func(o *entity.Order) bool {
		if matchOrder(o, f) {
			out = append(out, copyOrder(o))
		}
		return true
	})
	return out, nil
}

func matchOrder(o *entity.Order, f repository.OrderFilter) bool {
	if f.SalesPersonID != "" && o.SalesPersonID != f.SalesPersonID {
		return false
	}
	if f.ClientID != "" && o.ClientID != f.ClientID {
		return false
	}
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	return true
}

func (r *OrderRepo) Update(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.orders.get(o.ID)
	if !ok {
		return domain.ErrNotFound
	}
	r.s.orders.insert(o.ID, copyOrder(o))
	r.tx.record(func() {
		if _, ok := r.s.orders.get(prev.ID); ok {
			r.s.orders.insert(prev.ID, prev)
		}
	})
	return nil
}

func (r *OrderRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.orders.get(id)
	if !ok {
		return domain.ErrNotFound
	}
	r.s.orders.remove(id)
	r.tx.record(func() { r.s.orders.insert(id, prev) })
	return nil
}
