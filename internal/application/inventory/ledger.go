package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// Ledger reserva unidades de inventario para las líneas de un pedido y calcula su total.
//
// Cada descuento es condicional (stock >= cantidad) en el almacenamiento, así que el stock
// nunca queda negativo aunque dos reservas compitan. La atomicidad de un pedido completo
// depende del StockStore recibido: si está atado a una transacción, un error revierte
// todas las líneas; si no, las líneas anteriores a la que falla quedan descontadas.
type Ledger struct {
	reconcile bool
	rec       Recorder
}

// NewLedger construye el ledger. Con reconcile=false las ediciones vuelven a descontar
// las líneas completas sin devolver lo ya reservado.
func NewLedger(reconcile bool, rec Recorder) *Ledger {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Ledger{reconcile: reconcile, rec: rec}
}

// Reconciles indica si las ediciones se calculan por diferencia.
func (l *Ledger) Reconciles() bool { return l.reconcile }

// Reserve valida y descuenta cada línea en el orden recibido y devuelve Σ cantidad × precio.
// La primera línea sin stock suficiente corta el proceso con *domain.InsufficientStockError.
func (l *Ledger) Reserve(ctx context.Context, store StockStore, items []entity.OrderItem) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, it := range items {
		p, err := l.load(ctx, store, it)
		if err != nil {
			return decimal.Zero, err
		}
		if err := l.take(ctx, store, p, it.Quantity, it.Quantity, p.Stock); err != nil {
			return decimal.Zero, err
		}
		total = total.Add(lineTotal(p, it.Quantity))
	}
	return total, nil
}

// Quote calcula Σ cantidad × precio sin tocar el stock.
func (l *Ledger) Quote(ctx context.Context, store StockStore, items []entity.OrderItem) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, it := range items {
		p, err := l.load(ctx, store, it)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(lineTotal(p, it.Quantity))
	}
	return total, nil
}

// Amendment describe la edición de las líneas de un pedido existente.
type Amendment struct {
	Held  []entity.OrderItem // líneas que hoy retienen stock (vacío si el pedido estaba cancelado)
	Lines []entity.OrderItem // líneas resultantes
	Hold  bool               // si el pedido resultante retiene stock (no cancelado)
}

// Amend aplica una edición y devuelve el nuevo total.
//
// En modo reconciliación lo retenido se acredita por producto, solo los incrementos se
// validan y descuentan, y lo sobrante vuelve al inventario. Con Hold=false todo lo retenido
// se libera. Sin reconciliación equivale a Reserve(Lines).
func (l *Ledger) Amend(ctx context.Context, store StockStore, a Amendment) (decimal.Decimal, error) {
	if !l.reconcile {
		return l.Reserve(ctx, store, a.Lines)
	}

	credit := make(map[string]int, len(a.Held))
	for _, it := range a.Held {
		credit[it.ProductID] += it.Quantity
	}

	total := decimal.Zero
	for _, it := range a.Lines {
		p, err := l.load(ctx, store, it)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(lineTotal(p, it.Quantity))
		if !a.Hold {
			continue
		}
		need := it.Quantity
		used := min(credit[it.ProductID], need)
		credit[it.ProductID] -= used
		need -= used
		if need == 0 {
			continue
		}
		if err := l.take(ctx, store, p, need, it.Quantity, p.Stock+used); err != nil {
			return decimal.Zero, err
		}
	}

	// Devolver lo acreditado que no se volvió a usar, en el orden de las líneas retenidas.
	for _, it := range a.Held {
		left := credit[it.ProductID]
		if left <= 0 {
			continue
		}
		credit[it.ProductID] = 0
		if err := store.IncrementStock(ctx, it.ProductID, left); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// El producto fue eliminado; no hay a dónde devolver.
				continue
			}
			return decimal.Zero, fmt.Errorf("ledger: liberar %s: %w", it.ProductID, err)
		}
		l.rec.UnitsReleased(left)
	}
	return total, nil
}

// Release devuelve al inventario las unidades retenidas por un pedido.
func (l *Ledger) Release(ctx context.Context, store StockStore, held []entity.OrderItem) error {
	_, err := l.Amend(ctx, store, Amendment{Held: held})
	return err
}

func (l *Ledger) load(ctx context.Context, store StockStore, it entity.OrderItem) (*entity.Product, error) {
	if it.Quantity <= 0 {
		return nil, fmt.Errorf("%w: cantidad debe ser positiva para %s", domain.ErrInvalidInput, it.ProductID)
	}
	p, err := store.GetByID(ctx, it.ProductID)
	if err != nil {
		return nil, fmt.Errorf("ledger: producto %s: %w", it.ProductID, err)
	}
	if p == nil {
		return nil, fmt.Errorf("producto %s: %w", it.ProductID, domain.ErrNotFound)
	}
	return p, nil
}

// take descuenta qty de p. requested y available solo alimentan el error.
func (l *Ledger) take(ctx context.Context, store StockStore, p *entity.Product, qty, requested, available int) error {
	insufficient := &domain.InsufficientStockError{
		ProductID:   p.ID,
		ProductName: p.Name,
		Requested:   requested,
		Available:   available,
	}
	if qty > p.Stock {
		l.rec.ReservationRejected()
		return insufficient
	}
	ok, err := store.DecrementStock(ctx, p.ID, qty)
	if err != nil {
		return fmt.Errorf("ledger: descontar %s: %w", p.ID, err)
	}
	if !ok {
		// Otra reserva ganó la carrera entre la lectura y el descuento.
		l.rec.ReservationRejected()
		return insufficient
	}
	l.rec.UnitsReserved(qty)
	return nil
}

func lineTotal(p *entity.Product, qty int) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(qty)))
}
