package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

var orderColumns = []string{
	"id", "client_id", "total", "status", "sales_person_id", "created_at", "updated_at",
}

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (orders + order_items).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta cabecera y líneas en una misma transacción (savepoint si q ya es una tx).
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	return pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		query, args, err := psql.Insert("orders").
			Columns(orderColumns...).
			Values(o.ID, o.ClientID, o.Total, string(o.Status), o.SalesPersonID, o.CreatedAt, o.UpdatedAt).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrAlreadyExists
			}
			return fmt.Errorf("insert order: %w", err)
		}
		return insertItems(ctx, tx, o)
	})
}

// GetByID obtiene un pedido con sus líneas. (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.one(ctx, id, false)
}

// GetByIDForUpdate como GetByID pero con SELECT ... FOR UPDATE sobre la cabecera.
// Solo bloquea si r.q es una transacción.
func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.one(ctx, id, true)
}

func (r *OrderRepo) one(ctx context.Context, id string, lock bool) (*entity.Order, error) {
	list, err := r.find(ctx, sq.Eq{"id": id}, lock)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// List devuelve los pedidos en orden de alta aplicando los filtros no vacíos.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	where := sq.Eq{}
	if f.SalesPersonID != "" {
		where["sales_person_id"] = f.SalesPersonID
	}
	if f.ClientID != "" {
		where["client_id"] = f.ClientID
	}
	if f.Status != "" {
		where["status"] = string(f.Status)
	}
	return r.find(ctx, where, false)
}

// Update reemplaza cabecera y líneas.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	return pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		query, args, err := psql.Update("orders").
			Set("client_id", o.ClientID).
			Set("total", o.Total).
			Set("status", string(o.Status)).
			Set("updated_at", o.UpdatedAt).
			Where(sq.Eq{"id": o.ID}).
			ToSql()
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, o.ID); err != nil {
			return fmt.Errorf("delete order items: %w", err)
		}
		return insertItems(ctx, tx, o)
	})
}

// Delete elimina el pedido; las líneas caen por ON DELETE CASCADE.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func insertItems(ctx context.Context, tx pgx.Tx, o *entity.Order) error {
	if len(o.Items) == 0 {
		return nil
	}
	stmt := psql.Insert("order_items").Columns("order_id", "position", "product_id", "quantity")
	for i, it := range o.Items {
		stmt = stmt.Values(o.ID, i, it.ProductID, it.Quantity)
	}
	query, args, err := stmt.ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}
	return nil
}

// find carga cabeceras y luego todas sus líneas en una segunda consulta.
// Con lock las cabeceras quedan bloqueadas (FOR UPDATE).
func (r *OrderRepo) find(ctx context.Context, where sq.Sqlizer, lock bool) ([]*entity.Order, error) {
	stmt := psql.Select(orderColumns...).From("orders").Where(where).OrderBy("seq")
	if lock {
		stmt = stmt.Suffix("FOR UPDATE")
	}
	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	orders := []*entity.Order{}
	byID := make(map[string]*entity.Order)
	ids := []string{}
	for rows.Next() {
		var o entity.Order
		var status string
		if err := rows.Scan(&o.ID, &o.ClientID, &o.Total, &status, &o.SalesPersonID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Status = entity.OrderStatus(status)
		o.Items = []entity.OrderItem{}
		orders = append(orders, &o)
		byID[o.ID] = &o
		ids = append(ids, o.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return orders, nil
	}

	itemRows, err := r.q.Query(ctx, `
		SELECT order_id, product_id, quantity FROM order_items
		WHERE order_id = ANY($1) ORDER BY order_id, position`, ids)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var orderID string
		var it entity.OrderItem
		if err := itemRows.Scan(&orderID, &it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if o := byID[orderID]; o != nil {
			o.Items = append(o.Items, it)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
