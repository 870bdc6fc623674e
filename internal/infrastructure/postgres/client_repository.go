package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

var clientColumns = []string{
	"id", "name", "last_name", "company", "email", "phone", "seller_id", "created_at", "updated_at",
}

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador de persistencia para clientes.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un cliente. ErrAlreadyExists si el email ya existe.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query, args, err := psql.Insert("clients").
		Columns(clientColumns...).
		Values(c.ID, c.Name, c.LastName, c.Company, c.Email, c.Phone, c.SellerID, c.CreatedAt, c.UpdatedAt).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("cliente %s: %w", c.Email, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *ClientRepo) GetByEmail(ctx context.Context, email string) (*entity.Client, error) {
	return r.findOne(ctx, sq.Expr("lower(email) = lower(?)", email))
}

// List devuelve los clientes en orden de alta aplicando los filtros no vacíos.
func (r *ClientRepo) List(ctx context.Context, f repository.ClientFilter) ([]*entity.Client, error) {
	stmt := psql.Select(clientColumns...).From("clients").OrderBy("seq")
	if f.SellerID != "" {
		stmt = stmt.Where(sq.Eq{"seller_id": f.SellerID})
	}
	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	out := []*entity.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query, args, err := psql.Update("clients").
		Set("name", c.Name).
		Set("last_name", c.LastName).
		Set("company", c.Company).
		Set("email", c.Email).
		Set("phone", c.Phone).
		Set("updated_at", c.UpdatedAt).
		Where(sq.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("cliente %s: %w", c.Email, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClientRepo) findOne(ctx context.Context, where sq.Sqlizer) (*entity.Client, error) {
	query, args, err := psql.Select(clientColumns...).From("clients").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}
	c, err := scanClient(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(&c.ID, &c.Name, &c.LastName, &c.Company, &c.Email, &c.Phone, &c.SellerID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
