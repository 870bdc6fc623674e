package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/inventory"
	"github.com/jhoicas/pedidos-api/internal/application/usecase"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/memory"
)

// beforeFirstTx ejecuta hook una sola vez, justo antes de abrir la primera transacción.
// Simula otra petición que se cuela entre la lectura previa y la transacción.
type beforeFirstTx struct {
	inner inventory.TxRunner
	hook  func()
}

func (r *beforeFirstTx) Run(ctx context.Context, fn func(repository.ProductRepository, repository.OrderRepository) error) error {
	if h := r.hook; h != nil {
		r.hook = nil
		h()
	}
	return r.inner.Run(ctx, fn)
}

// afterFirstGet ejecuta hook una sola vez, después de la primera lectura de un producto.
type afterFirstGet struct {
	*memory.ProductRepo
	hook func()
}

func (r *afterFirstGet) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := r.ProductRepo.GetByID(ctx, id)
	if h := r.hook; h != nil {
		r.hook = nil
		h()
	}
	return p, err
}

// hookedOrders devuelve un caso de uso de pedidos sobre el Store de e que ejecuta hook
// antes de su primera transacción.
func (e *env) hookedOrders(hook func()) *usecase.OrderUseCase {
	return usecase.NewOrderUseCase(
		e.orders, e.clients, e.products,
		&beforeFirstTx{inner: memory.NewTxRunner(e.store), hook: hook},
		inventory.NewLedger(true, nil),
		usecase.OrderConfig{Atomic: true},
	)
}

func (e *env) order(t *testing.T, clientID string, lines []dto.OrderItemRequest) string {
	t.Helper()
	out, err := e.orderUC.Create(context.Background(), seller, dto.CreateOrderRequest{ClientID: clientID, Items: lines})
	require.NoError(t, err)
	return out.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Ediciones de pedido intercaladas
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderUpdate_DosCancelacionesIntercaladas_LiberaUnaVez(t *testing.T) {
	e := defaultEnv(t)
	e.product(t, "p1", "P", "10", 5)
	e.client(t, "c1", seller)
	ctx := context.Background()
	id := e.order(t, "c1", items("p1", 3))
	require.Equal(t, 2, e.stock(t, "p1"))

	uc := e.hookedOrders(func() {
		_, err := e.orderUC.Update(ctx, seller, id, dto.UpdateOrderRequest{Status: ptr("CANCELED")})
		require.NoError(t, err)
	})
	out, err := uc.Update(ctx, seller, id, dto.UpdateOrderRequest{Status: ptr("CANCELED")})
	require.NoError(t, err)

	assert.Equal(t, "CANCELED", out.Status)
	assert.Equal(t, 5, e.stock(t, "p1"), "las 3 unidades vuelven una sola vez")
}

func TestOrderUpdate_DosEdicionesDeLineasIntercaladas_UsaLoRetenidoVigente(t *testing.T) {
	e := defaultEnv(t)
	e.product(t, "p1", "P", "10", 5)
	e.client(t, "c1", seller)
	ctx := context.Background()
	id := e.order(t, "c1", items("p1", 3))

	// Otra edición baja el pedido a 1 (stock 4) antes de que esta lo suba a 4.
	uc := e.hookedOrders(func() {
		_, err := e.orderUC.Update(ctx, seller, id, dto.UpdateOrderRequest{Items: items("p1", 1)})
		require.NoError(t, err)
	})
	out, err := uc.Update(ctx, seller, id, dto.UpdateOrderRequest{Items: items("p1", 4)})
	require.NoError(t, err)

	assert.Equal(t, 4, out.Items[0].Quantity)
	assert.Equal(t, 1, e.stock(t, "p1"), "5 iniciales menos las 4 retenidas")
}

func TestOrderUpdate_PedidoEliminadoAntesDeLaTransaccion_RetornaNotFound(t *testing.T) {
	e := defaultEnv(t)
	e.product(t, "p1", "P", "10", 5)
	e.client(t, "c1", seller)
	ctx := context.Background()
	id := e.order(t, "c1", items("p1", 3))

	uc := e.hookedOrders(func() {
		require.NoError(t, e.orderUC.Delete(ctx, seller, id))
	})
	_, err := uc.Update(ctx, seller, id, dto.UpdateOrderRequest{Status: ptr("CANCELED")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 2, e.stock(t, "p1"), "nada que liberar de un pedido eliminado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición de producto contra reservas
// ──────────────────────────────────────────────────────────────────────────────

func TestProductUpdate_SoloNombre_ConservaReservaIntercalada(t *testing.T) {
	e := defaultEnv(t)
	e.product(t, "p1", "Laptop", "100", 5)
	e.client(t, "c1", seller)
	ctx := context.Background()

	repo := &afterFirstGet{ProductRepo: e.products, hook: func() {
		e.order(t, "c1", items("p1", 3))
	}}
	out, err := usecase.NewProductUseCase(repo).Update(ctx, seller, "p1", dto.UpdateProductRequest{Name: ptr("Laptop Pro")})
	require.NoError(t, err)

	assert.Equal(t, "Laptop Pro", out.Name)
	assert.Equal(t, 2, out.Stock)
	assert.Equal(t, 2, e.stock(t, "p1"))
}

func TestProductUpdate_SoloPrecio_ConservaLiberacionIntercalada(t *testing.T) {
	e := defaultEnv(t)
	e.product(t, "p1", "Laptop", "100", 5)
	e.client(t, "c1", seller)
	ctx := context.Background()
	id := e.order(t, "c1", items("p1", 3))

	repo := &afterFirstGet{ProductRepo: e.products, hook: func() {
		_, err := e.orderUC.Update(ctx, seller, id, dto.UpdateOrderRequest{Status: ptr("CANCELED")})
		require.NoError(t, err)
	}}
	_, err := usecase.NewProductUseCase(repo).Update(ctx, seller, "p1", dto.UpdateProductRequest{Price: ptr(decimal.NewFromInt(120))})
	require.NoError(t, err)
	assert.Equal(t, 5, e.stock(t, "p1"))
}

func TestProductUpdate_StockExplicito_FijaValor(t *testing.T) {
	e := defaultEnv(t)
	e.product(t, "p1", "Laptop", "100", 5)
	e.client(t, "c1", seller)
	e.order(t, "c1", items("p1", 3))

	out, err := e.productUC.Update(context.Background(), seller, "p1", dto.UpdateProductRequest{Stock: ptr(10)})
	require.NoError(t, err)
	assert.Equal(t, 10, out.Stock)
	assert.Equal(t, "Laptop", out.Name)
}
