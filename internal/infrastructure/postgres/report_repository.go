package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de agregación sobre pedidos COMPLETED.
// Ordena por total y recién después limita; los empates respetan el primer pedido de cada grupo.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el repositorio de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

func (r *ReportRepo) TopClients(ctx context.Context, limit int) ([]entity.ClientSales, error) {
	query := `
		SELECT o.client_id, SUM(o.total) AS total,
		       c.id, c.name, c.last_name, c.company, c.email, c.phone, c.seller_id, c.created_at, c.updated_at
		FROM orders o
		LEFT JOIN clients c ON c.id = o.client_id
		WHERE o.status = 'COMPLETED'
		GROUP BY o.client_id, c.id
		ORDER BY total DESC, MIN(o.seq)
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top clients: %w", err)
	}
	defer rows.Close()

	out := []entity.ClientSales{}
	for rows.Next() {
		var row entity.ClientSales
		var id, name, lastName, company, email, phone, sellerID *string
		var createdAt, updatedAt *time.Time
		if err := rows.Scan(&row.ClientID, &row.Total,
			&id, &name, &lastName, &company, &email, &phone, &sellerID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan top client: %w", err)
		}
		if id != nil {
			row.Client = &entity.Client{
				ID:        *id,
				Name:      deref(name),
				LastName:  deref(lastName),
				Company:   deref(company),
				Email:     deref(email),
				Phone:     deref(phone),
				SellerID:  deref(sellerID),
				CreatedAt: derefTime(createdAt),
				UpdatedAt: derefTime(updatedAt),
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *ReportRepo) TopSalesPersons(ctx context.Context, limit int) ([]entity.SalesPersonSales, error) {
	query := `
		SELECT o.sales_person_id, SUM(o.total) AS total,
		       u.id, u.email, u.name, u.last_name, u.created_at
		FROM orders o
		LEFT JOIN users u ON u.id = o.sales_person_id
		WHERE o.status = 'COMPLETED'
		GROUP BY o.sales_person_id, u.id
		ORDER BY total DESC, MIN(o.seq)
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top sales persons: %w", err)
	}
	defer rows.Close()

	out := []entity.SalesPersonSales{}
	for rows.Next() {
		var (
			row                       entity.SalesPersonSales
			id, email, name, lastName *string
			createdAt                 *time.Time
		)
		if err := rows.Scan(&row.SalesPersonID, &row.Total, &id, &email, &name, &lastName, &createdAt); err != nil {
			return nil, fmt.Errorf("scan top sales person: %w", err)
		}
		if id != nil {
			row.SalesPerson = &entity.User{
				ID:        *id,
				Email:     deref(email),
				Name:      deref(name),
				LastName:  deref(lastName),
				CreatedAt: derefTime(createdAt),
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
