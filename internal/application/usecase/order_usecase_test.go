package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderCreate_ReservaYCalculaTotal(t *testing.T) {
	e := defaultEnv(t)
	e.product(t, "p1", "Laptop", "1000.50", 5)
	e.client(t, "c1", seller)

	out, err := e.orderUC.Create(context.Background(), seller, dto.CreateOrderRequest{
		ClientID: "c1", Items: items("p1", 2),
	})
	require.NoError(t, err)

	assert.Equal(t, "PENDING", out.Status)
	assert.Equal(t, seller, out.SalesPersonID)
	assert.True(t, out.Total.Equal(decimal.RequireFromString("2001")), "total=%s", out.Total)
	assert.Equal(t, 3, e.stock(t, "p1"))
}

func TestOrderCreate_StockCinco_SegundoFallaConNombre(t *testing.T) {
	e := defaultEnv(t)
	e.product(t, "p1", "P", "10", 5)
	e.client(t, "c1", seller)
	ctx := context.Background()

	_, err := e.orderUC.Create(ctx, seller, dto.CreateOrderRequest{ClientID: "c1", Items: items("p1", 3)})
	require.NoError(t, err)
	assert.Equal(t, 2, e.stock(t, "p1"))

	_, err = e.orderUC.Create(ctx, seller, dto.CreateOrderRequest{ClientID: "c1", Items: items("p1", 3)})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "P excede")
	assert.Equal(t, 2, e.stock(t, "p1"))

	list, err := e.orderUC.ListBySeller(ctx, seller)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestOrderCreate_Atomico_RevierteLineasPrevias(t *testing.T) {
	e := newEnv(t, envOpts{atomic: true, reconcile: true})
	e.product(t, "p1", "Uno", "1", 5)
	e.product(t, "p2", "Dos", "1", 1)
	e.client(t, "c1", seller)

	_, err := e.orderUC.Create(context.Background(), seller, dto.CreateOrderRequest{
		ClientID: "c1", Items: items("p1", 2, "p2", 4),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, e.stock(t, "p1"))
}

func TestOrderCreate_NoAtomico_LineasPreviasQuedanDescontadas(t *testing.T) {
	e := newEnv(t, envOpts{atomic: false, reconcile: false})
	e.product(t, "p1", "Uno", "1", 5)
	e.product(t, "p2", "Dos", "1", 1)
	e.client(t, "c1", seller)

	_, err := e.orderUC.Create(context.Background(), seller, dto.CreateOrderRequest{
		ClientID: "c1", Items: items("p1", 2, "p2", 4),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, e.stock(t, "p1"))
	assert.Equal(t, 1, e.stock(t, "p2"))
}

func TestOrderCreate_ClienteAjeno_RetornaForbidden(t *testing.T) {
	e := defaultEnv(t)
	e.product(t, "p1", "P", "10", 5)
	e.client(t, "c1", other)

	_, err := e.orderUC.Create(context.Background(), seller, dto.CreateOrderRequest{ClientID: "c1", Items: items("p1", 1)})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 5, e.stock(t, "p1"))
}

func TestOrderCreate_Errores(t *testing.T) {
	e := defaultEnv(t)
	e.product(t, "p1", "P", "10", 5)
	e.client(t, "c1", seller)
	ctx := context.Background()

	cases := []struct {
		name   string
		caller string
		in     dto.CreateOrderRequest
		want   error
	}{
		{"anonimo", "", dto.CreateOrderRequest{ClientID: "c1", Items: items("p1", 1)}, domain.ErrUnauthorized},
		{"sin lineas", seller, dto.CreateOrderRequest{ClientID: "c1"}, domain.ErrInvalidInput},
		{"cantidad cero", seller, dto.CreateOrderRequest{ClientID: "c1", Items: items("p1", 0)}, domain.ErrInvalidInput},
		{"estado invalido", seller, dto.CreateOrderRequest{ClientID: "c1", Items: items("p1", 1), Status: "X"}, domain.ErrInvalidInput},
		{"cliente inexistente", seller, dto.CreateOrderRequest{ClientID: "c9", Items: items("p1", 1)}, domain.ErrNotFound},
		{"producto inexistente", seller, dto.CreateOrderRequest{ClientID: "c1", Items: items("p9", 1)}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.orderUC.Create(ctx, tc.caller, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, 5, e.stock(t, "p1"))
}

func TestOrderCreate_Cancelado_NoReservaStock(t *testing.T) {
	e := defaultEnv(t)
	e.product(t, "p1", "P", "10", 1)
	e.client(t, "c1", seller)

	out, err := e.orderUC.Create(context.Background(), seller, dto.CreateOrderRequest{
		ClientID: "c1", Items: items("p1", 3), Status: "CANCELED",
	})
	require.NoError(t, err)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 1, e.stock(t, "p1"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas y propiedad
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderGetByID_Propiedad(t *testing.T) {
	e := defaultEnv(t)
	e.product(t, "p1", "P", "10", 5)
	e.client(t, "c1", seller)
	ctx := context.Background()
	created, err := e.orderUC.Create(ctx, seller, dto.CreateOrderRequest{ClientID: "c1", Items: items("p1", 1)})
	require.NoError(t, err)

	got, err := e.orderUC.GetByID(ctx, seller, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = e.orderUC.GetByID(ctx, other, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = e.orderUC.GetByID(ctx, "", created.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = e.orderUC.GetByID(ctx, seller, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderList_PorVendedorYEstado(t *testing.T) {
	e := defaultEnv(t)
	e.product(t, "p1", "P", "10", 50)
	e.client(t, "c1", seller)
	e.client(t, "c2", other)
	ctx := context.Background()

	_, err := e.orderUC.Create(ctx, seller, dto.CreateOrderRequest{ClientID: "c1", Items: items("p1", 1)})
	require.NoError(t, err)
	_, err = e.orderUC.Create(ctx, seller, dto.CreateOrderRequest{ClientID: "c1", Items: items("p1", 1), Status: "COMPLETED"})
	require.NoError(t, err)
	_, err = e.orderUC.Create(ctx, other, dto.CreateOrderRequest{ClientID: "c2", Items: items("p1", 1)})
	require.NoError(t, err)

	mine, err := e.orderUC.ListBySeller(ctx, seller)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	done, err := e.orderUC.ListByStatus(ctx, seller, "COMPLETED")
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "COMPLETED", done[0].Status)

	_, err = e.orderUC.ListByStatus(ctx, seller, "SHIPPED")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.orderUC.ListBySeller(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderUpdate_Reconciliacion_AjustaPorDiferencia(t *testing.T) {
	e := defaultEnv(t)
	e.product(t, "p1", "P", "10", 5)
	e.client(t, "c1", seller)
	ctx := context.Background()
	created, err := e.orderUC.Create(ctx, seller, dto.CreateOrderRequest{ClientID: "c1", Items: items("p1", 3)})
	require.NoError(t, err)
	require.Equal(t, 2, e.stock(t, "p1"))

	// 3 → 5: solo se descuentan 2 más.
	out, err := e.orderUC.Update(ctx, seller, created.ID, dto.UpdateOrderRequest{Items: items("p1", 5)})
	require.NoError(t, err)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 0, e.stock(t, "p1"))

	// 5 → 1: vuelven 4.
	_, err = e.orderUC.Update(ctx, seller, created.ID, dto.UpdateOrderRequest{Items: items("p1", 1)})
	require.NoError(t, err)
	assert.Equal(t, 4, e.stock(t, "p1"))
}

func TestOrderUpdate_CancelarLiberaYReactivarReserva(t *testing.T) {
	e := defaultEnv(t)
	e.product(t, "p1", "P", "10", 5)
	e.client(t, "c1", seller)
	ctx := context.Background()
	created, err := e.orderUC.Create(ctx, seller, dto.CreateOrderRequest{ClientID: "c1", Items: items("p1", 3)})
	require.NoError(t, err)

	out, err := e.orderUC.Update(ctx, seller, created.ID, dto.UpdateOrderRequest{Status: ptr("CANCELED")})
	require.NoError(t, err)
	assert.Equal(t, "CANCELED", out.Status)
	assert.Equal(t, 5, e.stock(t, "p1"))

	_, err = e.orderUC.Update(ctx, seller, created.ID, dto.UpdateOrderRequest{Status: ptr("PENDING")})
	require.NoError(t, err)
	assert.Equal(t, 2, e.stock(t, "p1"))
}

func TestOrderUpdate_SoloEstado_ConservaTotal(t *testing.T) {
	e := defaultEnv(t)
	e.product(t, "p1", "P", "10", 5)
	e.client(t, "c1", seller)
	ctx := context.Background()
	created, err := e.orderUC.Create(ctx, seller, dto.CreateOrderRequest{ClientID: "c1", Items: items("p1", 3)})
	require.NoError(t, err)

	// Cambiar el precio no altera pedidos ya creados salvo que se editen sus líneas.
	_, err = e.productUC.Update(ctx, seller, "p1", dto.UpdateProductRequest{Price: ptr(decimal.NewFromInt(99))})
	require.NoError(t, err)

	out, err := e.orderUC.Update(ctx, seller, created.ID, dto.UpdateOrderRequest{Status: ptr("COMPLETED")})
	require.NoError(t, err)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 2, e.stock(t, "p1"))
}

func TestOrderUpdate_Legacy_VuelveADescontarLineasCompletas(t *testing.T) {
	e := newEnv(t, envOpts{atomic: true, reconcile: false})
	e.product(t, "p1", "P", "10", 10)
	e.client(t, "c1", seller)
	ctx := context.Background()
	created, err := e.orderUC.Create(ctx, seller, dto.CreateOrderRequest{ClientID: "c1", Items: items("p1", 3)})
	require.NoError(t, err)

	_, err = e.orderUC.Update(ctx, seller, created.ID, dto.UpdateOrderRequest{Items: items("p1", 3)})
	require.NoError(t, err)
	assert.Equal(t, 4, e.stock(t, "p1"))

	// Sin líneas no se toca el stock, ni siquiera al cancelar.
	_, err = e.orderUC.Update(ctx, seller, created.ID, dto.UpdateOrderRequest{Status: ptr("CANCELED")})
	require.NoError(t, err)
	assert.Equal(t, 4, e.stock(t, "p1"))
}

func TestOrderUpdate_StockInsuficiente_NoModificaPedido(t *testing.T) {
	e := defaultEnv(t)
	e.product(t, "p1", "P", "10", 5)
	e.client(t, "c1", seller)
	ctx := context.Background()
	created, err := e.orderUC.Create(ctx, seller, dto.CreateOrderRequest{ClientID: "c1", Items: items("p1", 3)})
	require.NoError(t, err)

	_, err = e.orderUC.Update(ctx, seller, created.ID, dto.UpdateOrderRequest{Items: items("p1", 9)})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := e.orderUC.GetByID(ctx, seller, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Items[0].Quantity)
	assert.Equal(t, 2, e.stock(t, "p1"))
}

func TestOrderUpdate_Propiedad(t *testing.T) {
	e := defaultEnv(t)
	e.product(t, "p1", "P", "10", 5)
	e.client(t, "c1", seller)
	e.client(t, "c2", other)
	ctx := context.Background()
	created, err := e.orderUC.Create(ctx, seller, dto.CreateOrderRequest{ClientID: "c1", Items: items("p1", 1)})
	require.NoError(t, err)

	_, err = e.orderUC.Update(ctx, other, created.ID, dto.UpdateOrderRequest{Status: ptr("COMPLETED")})
	assert.ErrorIs(t, err, domain.ErrForbidden, "pedido ajeno")

	_, err = e.orderUC.Update(ctx, seller, created.ID, dto.UpdateOrderRequest{ClientID: ptr("c2")})
	assert.ErrorIs(t, err, domain.ErrForbidden, "cliente nuevo ajeno")

	_, err = e.orderUC.Update(ctx, seller, created.ID, dto.UpdateOrderRequest{ClientID: ptr("c9")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderDelete_NoDevuelveStock(t *testing.T) {
	e := defaultEnv(t)
	e.product(t, "p1", "P", "10", 5)
	e.client(t, "c1", seller)
	ctx := context.Background()
	created, err := e.orderUC.Create(ctx, seller, dto.CreateOrderRequest{ClientID: "c1", Items: items("p1", 3)})
	require.NoError(t, err)

	assert.ErrorIs(t, e.orderUC.Delete(ctx, other, created.ID), domain.ErrForbidden)
	require.NoError(t, e.orderUC.Delete(ctx, seller, created.ID))
	assert.Equal(t, 2, e.stock(t, "p1"))

	_, err = e.orderUC.GetByID(ctx, seller, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderLoad_DevuelveCliente(t *testing.T) {
	e := defaultEnv(t)
	e.product(t, "p1", "P", "10", 5)
	e.client(t, "c1", seller)
	ctx := context.Background()
	created, err := e.orderUC.Create(ctx, seller, dto.CreateOrderRequest{ClientID: "c1", Items: items("p1", 1)})
	require.NoError(t, err)

	order, client, err := e.orderUC.Load(ctx, seller, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	require.NotNil(t, client)
	assert.Equal(t, "c1", client.ID)
}

func TestOrderUpdate_AnonimoConEntradaInvalida_RetornaUnauthorized(t *testing.T) {
	e := defaultEnv(t)
	_, err := e.orderUC.Update(context.Background(), "", "o1", dto.UpdateOrderRequest{Items: items("p1", 0)})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
