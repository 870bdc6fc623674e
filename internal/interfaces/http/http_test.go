package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pedidos-api/internal/application/auth"
	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/inventory"
	"github.com/jhoicas/pedidos-api/internal/application/usecase"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/memory"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/pedidos-api/internal/interfaces/http"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testJWTSecret = "test-secret-key-for-unit-tests"

type testServer struct {
	app      *fiber.App
	products *memory.ProductRepo
}

// newTestServer arma la API completa sobre el driver en memoria.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := memory.NewStore()
	users := memory.NewUserRepository(s)
	products := memory.NewProductRepository(s)
	clients := memory.NewClientRepository(s)
	orders := memory.NewOrderRepository(s)

	authUC := auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, TTL: time.Hour, Issuer: "pedidos-test"}).
		WithBcryptCost(bcrypt.MinCost)
	orderUC := usecase.NewOrderUseCase(orders, clients, products, memory.NewTxRunner(s),
		inventory.NewLedger(true, nil), usecase.OrderConfig{Atomic: true})

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(apphttp.RequestLogger(logger.Nop()))
	app.Use(apphttp.IdentityMiddleware(authUC))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  usecase.NewProductUseCase(products),
		ClientUC:   usecase.NewClientUseCase(clients),
		OrderUC:    orderUC,
		OrderPDFUC: usecase.NewOrderPDFUseCase(orderUC, products, users, pdf.NewMarotoPDFGenerator("Pedidos")),
		ReportUC:   usecase.NewReportUseCase(memory.NewReportRepository(s), products),
	})
	return &testServer{app: app, products: products}
}

// do lanza una petición JSON y devuelve status y cuerpo.
func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

// seller registra un vendedor y devuelve su token.
func (ts *testServer) seller(t *testing.T, email string) string {
	t.Helper()
	status, _ := ts.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name: "Ana", LastName: "Pérez", Email: email, Password: "secreto1",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := ts.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "secreto1"})
	require.Equal(t, http.StatusOK, status)
	var tok dto.TokenResponse
	require.NoError(t, json.Unmarshal(body, &tok))
	return tok.Token
}

func (ts *testServer) product(t *testing.T, id, name string, price int64, stock int) {
	t.Helper()
	now := time.Now()
	require.NoError(t, ts.products.Create(context.Background(), &entity.Product{
		ID: id, Name: name, Price: decimal.NewFromInt(price), Stock: stock, CreatedAt: now, UpdatedAt: now,
	}))
}

func (ts *testServer) client(t *testing.T, token, email string) dto.ClientResponse {
	t.Helper()
	status, body := ts.do(t, http.MethodPost, "/api/clients", token, dto.CreateClientRequest{
		Name: "Luis", LastName: "Gómez", Company: "ACME", Email: email,
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var c dto.ClientResponse
	require.NoError(t, json.Unmarshal(body, &c))
	return c
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	return e.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_RegistroLoginYMe(t *testing.T) {
	ts := newTestServer(t)
	token := ts.seller(t, "ana@example.com")

	status, body := ts.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	var info dto.TokenInfoResponse
	require.NoError(t, json.Unmarshal(body, &info))
	assert.NotEmpty(t, info.ID)
	assert.True(t, info.ExpiresAt.After(time.Now()))
}

func TestAuth_EmailDuplicado_409(t *testing.T) {
	ts := newTestServer(t)
	ts.seller(t, "ana@example.com")

	status, body := ts.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name: "Otra", LastName: "Ana", Email: "ANA@example.com", Password: "secreto1",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ALREADY_EXISTS", errorCode(t, body))
}

func TestAuth_PasswordIncorrecto_401(t *testing.T) {
	ts := newTestServer(t)
	ts.seller(t, "ana@example.com")

	status, body := ts.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ana@example.com", Password: "otra-cosa"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, body))
}

func TestAuth_RegistroInvalido_400(t *testing.T) {
	ts := newTestServer(t)
	status, body := ts.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "no-es-email", Password: "123"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorCode(t, body))
}

func TestMiddleware_TokenInvalidoEnRutaProtegida_401InvalidToken(t *testing.T) {
	ts := newTestServer(t)
	status, body := ts.do(t, http.MethodGet, "/api/clients", "no.es.un.jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, body))

	status, body = ts.do(t, http.MethodGet, "/api/clients", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, body))
}

func TestMiddleware_TokenInvalidoEnRutaPublica_SigueAnonimo(t *testing.T) {
	ts := newTestServer(t)
	status, _ := ts.do(t, http.MethodGet, "/api/products", "no.es.un.jwt", nil)
	assert.Equal(t, http.StatusOK, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_CrearRequiereAuth(t *testing.T) {
	ts := newTestServer(t)
	in := dto.CreateProductRequest{Name: "Laptop", Stock: 3, Price: decimal.NewFromInt(300)}

	status, _ := ts.do(t, http.MethodPost, "/api/products", "", in)
	assert.Equal(t, http.StatusUnauthorized, status)

	token := ts.seller(t, "ana@example.com")
	status, body := ts.do(t, http.MethodPost, "/api/products", token, in)
	require.Equal(t, http.StatusCreated, status, string(body))
	var p dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &p))

	status, _ = ts.do(t, http.MethodGet, "/api/products/"+p.ID, "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = ts.do(t, http.MethodDelete, "/api/products/"+p.ID, token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = ts.do(t, http.MethodGet, "/api/products/"+p.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))
}

func TestProducts_Search(t *testing.T) {
	ts := newTestServer(t)
	ts.product(t, "p1", "Monitor Curvo", 200, 1)
	ts.product(t, "p2", "Teclado", 20, 1)

	status, body := ts.do(t, http.MethodGet, "/api/products/search?text=monitor", "", nil)
	require.Equal(t, http.StatusOK, status)
	var found []dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &found))
	require.Len(t, found, 1)
	assert.Equal(t, "p1", found[0].ID)

	status, _ = ts.do(t, http.MethodGet, "/api/products/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes y pedidos
// ──────────────────────────────────────────────────────────────────────────────

func TestClients_OtroVendedor_403(t *testing.T) {
	ts := newTestServer(t)
	ana := ts.seller(t, "ana@example.com")
	bob := ts.seller(t, "bob@example.com")
	c := ts.client(t, ana, "cliente@example.com")

	status, body := ts.do(t, http.MethodGet, "/api/clients/"+c.ID, bob, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errorCode(t, body))

	status, _ = ts.do(t, http.MethodPut, "/api/clients/"+c.ID, bob, dto.UpdateClientRequest{Company: ptr("Otra")})
	assert.Equal(t, http.StatusForbidden, status)

	status, body = ts.do(t, http.MethodGet, "/api/clients", bob, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))
}

func TestOrders_StockInsuficiente_409ConNombre(t *testing.T) {
	ts := newTestServer(t)
	token := ts.seller(t, "ana@example.com")
	c := ts.client(t, token, "cliente@example.com")
	ts.product(t, "p1", "Laptop", 100, 5)

	in := dto.CreateOrderRequest{ClientID: c.ID, Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 3}}}
	status, body := ts.do(t, http.MethodPost, "/api/orders", token, in)
	require.Equal(t, http.StatusCreated, status, string(body))
	var o dto.OrderResponse
	require.NoError(t, json.Unmarshal(body, &o))
	assert.True(t, decimal.NewFromInt(300).Equal(o.Total))

	status, body = ts.do(t, http.MethodPost, "/api/orders", token, in)
	assert.Equal(t, http.StatusConflict, status)
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)
	assert.Contains(t, e.Message, "Laptop")
}

func TestOrders_FiltroPorEstadoYCancelacion(t *testing.T) {
	ts := newTestServer(t)
	token := ts.seller(t, "ana@example.com")
	c := ts.client(t, token, "cliente@example.com")
	ts.product(t, "p1", "Laptop", 100, 5)

	status, body := ts.do(t, http.MethodPost, "/api/orders", token, dto.CreateOrderRequest{
		ClientID: c.ID, Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 2}},
	})
	require.Equal(t, http.StatusCreated, status)
	var o dto.OrderResponse
	require.NoError(t, json.Unmarshal(body, &o))

	status, _ = ts.do(t, http.MethodPut, "/api/orders/"+o.ID, token, dto.UpdateOrderRequest{Status: ptr("CANCELED")})
	require.Equal(t, http.StatusOK, status)

	p, err := ts.products.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock, "cancelar devuelve el stock")

	status, body = ts.do(t, http.MethodGet, "/api/orders?status=CANCELED", token, nil)
	require.Equal(t, http.StatusOK, status)
	var list []dto.OrderResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 1)

	status, _ = ts.do(t, http.MethodGet, "/api/orders?status=LOST", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestOrders_PDF(t *testing.T) {
	ts := newTestServer(t)
	token := ts.seller(t, "ana@example.com")
	c := ts.client(t, token, "cliente@example.com")
	ts.product(t, "p1", "Laptop", 100, 5)

	status, body := ts.do(t, http.MethodPost, "/api/orders", token, dto.CreateOrderRequest{
		ClientID: c.ID, Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.Equal(t, http.StatusCreated, status)
	var o dto.OrderResponse
	require.NoError(t, json.Unmarshal(body, &o))

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+o.ID+"/pdf", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestReports_TopClientsPublico(t *testing.T) {
	ts := newTestServer(t)
	token := ts.seller(t, "ana@example.com")
	c := ts.client(t, token, "cliente@example.com")
	ts.product(t, "p1", "Laptop", 100, 5)

	status, _ := ts.do(t, http.MethodPost, "/api/orders", token, dto.CreateOrderRequest{
		ClientID: c.ID, Status: "COMPLETED", Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 2}},
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := ts.do(t, http.MethodGet, "/api/reports/top-clients", "", nil)
	require.Equal(t, http.StatusOK, status)
	var top []dto.TopClientResponse
	require.NoError(t, json.Unmarshal(body, &top))
	require.Len(t, top, 1)
	assert.Equal(t, c.ID, top[0].ClientID)
	assert.True(t, decimal.NewFromInt(200).Equal(top[0].Total))
	require.NotNil(t, top[0].Client)

	status, body = ts.do(t, http.MethodGet, "/api/reports/top-sales-persons", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, string(body), "password")
}

func TestRutaInexistente_404ConCodigo(t *testing.T) {
	ts := newTestServer(t)
	status, body := ts.do(t, http.MethodGet, "/api/nada", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))
}

func ptr[T any](v T) *T { return &v }
