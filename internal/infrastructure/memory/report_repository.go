package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agrega pedidos COMPLETED en memoria.
type ReportRepo struct {
	s *Store
}

// NewReportRepository construye el repositorio.
func NewReportRepository(s *Store) *ReportRepo {
	return &ReportRepo{s: s}
}

type bucket struct {
	key   string
	total decimal.Decimal
}

// sumCompleted agrupa por key en orden de primera aparición, ordena desc y luego limita.
func (r *ReportRepo) sumCompleted(key func(*entity.Order) string, limit int) []bucket {
	idx := make(map[string]int)
	var buckets []bucket
	r.s.orders.each(func(o *entity.Order) bool {
		if o.Status != entity.OrderStatusCompleted {
			return true
		}
		k := key(o)
		i, ok := idx[k]
		if !ok {
			i = len(buckets)
			idx[k] = i
			buckets = append(buckets, bucket{key: k, total: decimal.Zero})
		}
		buckets[i].total = buckets[i].total.Add(o.Total)
		return true
	})
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].total.GreaterThan(buckets[j].total)
	})
	if limit > 0 && len(buckets) > limit {
		buckets = buckets[:limit]
	}
	return buckets
}

func (r *ReportRepo) TopClients(_ context.Context, limit int) ([]entity.ClientSales, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	buckets := r.sumCompleted(func(o *entity.Order) string { return o.ClientID }, limit)
	out := make([]entity.ClientSales, 0, len(buckets))
	for _, b := range buckets {
		row := entity.ClientSales{ClientID: b.key, Total: b.total}
		if c, ok := r.s.clients.get(b.key); ok {
			row.Client = copyClient(c)
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *ReportRepo) TopSalesPersons(_ context.Context, limit int) ([]entity.SalesPersonSales, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	buckets := r.sumCompleted(func(o *entity.Order) string { return o.SalesPersonID }, limit)
	out := make([]entity.SalesPersonSales, 0, len(buckets))
	for _, b := range buckets {
		row := entity.SalesPersonSales{SalesPersonID: b.key, Total: b.total}
		if u, ok := r.s.users.get(b.key); ok {
			row.SalesPerson = copyUser(u)
		}
		out = append(out, row)
	}
	return out, nil
}
