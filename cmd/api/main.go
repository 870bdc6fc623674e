package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"

	"github.com/jhoicas/pedidos-api/docs"
	"github.com/jhoicas/pedidos-api/internal/application/auth"
	"github.com/jhoicas/pedidos-api/internal/application/inventory"
	"github.com/jhoicas/pedidos-api/internal/application/usecase"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/cache"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/pedidos-api/internal/infrastructure/pdf"
	appgql "github.com/jhoicas/pedidos-api/internal/interfaces/graphql"
	httpRouter "github.com/jhoicas/pedidos-api/internal/interfaces/http"
	"github.com/jhoicas/pedidos-api/pkg/config"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	m := metrics.New()

	var reports repository.ReportRepository = store.reports
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			// sin caché los reportes se calculan siempre contra la BD
			log.Warn().Err(err).Msg("redis no disponible, reportes sin caché")
		} else {
			defer rdb.Close()
			reports = cache.NewCachedReportRepository(store.reports, rdb, cfg.Redis.ReportCacheTTL, m, log.Component("cache"))
		}
	}

	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.TTL(),
		Issuer: cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(store.products)
	clientUC := usecase.NewClientUseCase(store.clients)
	ledger := inventory.NewLedger(cfg.Ledger.Reconcile, m)
	orderUC := usecase.NewOrderUseCase(
		store.orders, store.clients, store.products,
		store.txRunner, ledger,
		usecase.OrderConfig{Atomic: cfg.Ledger.Atomic},
	)
	reportUC := usecase.NewReportUseCase(reports, store.products)
	orderPDFUC := usecase.NewOrderPDFUseCase(orderUC, store.products, store.users, infrapdf.NewMarotoPDFGenerator(cfg.App.Name))

	schema, err := appgql.NewSchema(appgql.Deps{
		Auth:     authUC,
		Products: productUC,
		Clients:  clientUC,
		Orders:   orderUC,
		Reports:  reportUC,
		Log:      log.Component("graphql"),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("schema GraphQL")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(m.Middleware())
	app.Use(httpRouter.IdentityMiddleware(authUC))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    docs.SwaggerInfo.Title,
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return err
		}
		c.Type("json")
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})
	app.Get("/metrics", m.Handler())
	app.Post("/graphql", appgql.Handler(schema))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		ClientUC:   clientUC,
		OrderUC:    orderUC,
		OrderPDFUC: orderPDFUC,
		ReportUC:   reportUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
