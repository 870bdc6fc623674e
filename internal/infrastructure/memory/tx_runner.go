package memory

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// journal acumula cómo deshacer cada escritura hecha por los repositorios de una transacción.
// Las escrituras ajenas a la transacción no pasan por aquí y sobreviven al rollback.
type journal struct {
	undo []func()
}

// record no hace nada fuera de una transacción (j nil).
func (j *journal) record(fn func()) {
	if j != nil {
		j.undo = append(j.undo, fn)
	}
}

// rollback deshace en orden inverso. Requiere s.mu tomado.
func (j *journal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

// TxRunner simula transacciones sobre el Store: serializa los callbacks y, si fn falla,
// deshace solo lo que escribieron los repositorios de esa transacción.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repositorios sobre el mismo Store y hace rollback si devuelve error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	j := &journal{}
	err := fn(&ProductRepo{s: r.s, tx: j}, &OrderRepo{s: r.s, tx: j})
	if err != nil {
		r.s.mu.Lock()
		j.rollback()
		r.s.mu.Unlock()
		return err
	}
	return nil
}
