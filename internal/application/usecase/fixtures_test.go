package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/inventory"
	"github.com/jhoicas/pedidos-api/internal/application/usecase"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/memory"
)

const (
	seller = "seller-1"
	other  = "seller-2"
)

// env arma los casos de uso sobre el driver en memoria.
type env struct {
	store    *memory.Store
	users    *memory.UserRepo
	products *memory.ProductRepo
	clients  *memory.ClientRepo
	orders   *memory.OrderRepo

	productUC *usecase.ProductUseCase
	clientUC  *usecase.ClientUseCase
	orderUC   *usecase.OrderUseCase
	reportUC  *usecase.ReportUseCase
}

type envOpts struct {
	atomic    bool
	reconcile bool
}

func newEnv(t *testing.T, opts envOpts) *env {
	t.Helper()
	s := memory.NewStore()
	e := &env{
		store:    s,
		users:    memory.NewUserRepository(s),
		products: memory.NewProductRepository(s),
		clients:  memory.NewClientRepository(s),
		orders:   memory.NewOrderRepository(s),
	}
	e.productUC = usecase.NewProductUseCase(e.products)
	e.clientUC = usecase.NewClientUseCase(e.clients)
	e.orderUC = usecase.NewOrderUseCase(
		e.orders, e.clients, e.products,
		memory.NewTxRunner(s),
		inventory.NewLedger(opts.reconcile, nil),
		usecase.OrderConfig{Atomic: opts.atomic},
	)
	e.reportUC = usecase.NewReportUseCase(memory.NewReportRepository(s), e.products)
	return e
}

func defaultEnv(t *testing.T) *env {
	return newEnv(t, envOpts{atomic: true, reconcile: true})
}

func (e *env) product(t *testing.T, id, name, price string, stock int) {
	t.Helper()
	now := time.Now()
	require.NoError(t, e.products.Create(context.Background(), &entity.Product{
		ID: id, Name: name, Price: decimal.RequireFromString(price), Stock: stock, CreatedAt: now, UpdatedAt: now,
	}))
}

func (e *env) client(t *testing.T, id, sellerID string) {
	t.Helper()
	require.NoError(t, e.clients.Create(context.Background(), &entity.Client{
		ID: id, Name: "Cliente", LastName: id, Company: "ACME", Email: id + "@example.com", SellerID: sellerID,
	}))
}

func (e *env) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := e.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func items(pairs ...any) []dto.OrderItemRequest {
	out := make([]dto.OrderItemRequest, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, dto.OrderItemRequest{ProductID: pairs[i].(string), Quantity: pairs[i+1].(int)})
	}
	return out
}

func ptr[T any](v T) *T { return &v }
