package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pedidos-api/internal/application/auth"
	"github.com/jhoicas/pedidos-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	ClientUC   *usecase.ClientUseCase
	OrderUC    *usecase.OrderUseCase
	OrderPDFUC *usecase.OrderPDFUseCase
	ReportUC   *usecase.ReportUseCase
}

// Router registra las rutas de la API. IdentityMiddleware debe estar montado antes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := RequireAuth()

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authHandler.Me)

	// Products (lectura pública, escritura protegida)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.ReportUC)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", requireAuth, productHandler.Create)
	products.Put("/:id", requireAuth, productHandler.Update)
	products.Delete("/:id", requireAuth, productHandler.Delete)

	// Clients (protegido, solo los del vendedor)
	clients := api.Group("/clients", requireAuth)
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Orders (protegido)
	orders := api.Group("/orders", requireAuth)
	orderHandler := NewOrderHandler(deps.OrderUC, deps.OrderPDFUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)
	if deps.OrderPDFUC != nil {
		orders.Get("/:id/pdf", orderHandler.DownloadPDF)
	}

	// Reports (público)
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/top-clients", reportHandler.TopClients)
	reports.Get("/top-sales-persons", reportHandler.TopSalesPersons)
}
