package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/pedidos-api/internal/application/inventory"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/memory"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pedidos-api/pkg/config"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// storage repositorios del driver elegido por STORAGE_DRIVER.
type storage struct {
	users    repository.UserRepository
	products repository.ProductRepository
	clients  repository.ClientRepository
	orders   repository.OrderRepository
	reports  repository.ReportRepository
	txRunner inventory.TxRunner
	close    func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		log.Warn().Msg("driver en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			users:    memory.NewUserRepository(s),
			products: memory.NewProductRepository(s),
			clients:  memory.NewClientRepository(s),
			orders:   memory.NewOrderRepository(s),
			reports:  memory.NewReportRepository(s),
			txRunner: memory.NewTxRunner(s),
			close:    s.Close,
		}, nil

	case config.StorageDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.DB.Migrate {
			if err := postgres.Migrate(ctx, pool, postgres.MigrateUp, nil); err != nil {
				pool.Close()
				return nil, err
			}
			log.Info().Msg("migraciones aplicadas")
		}
		return &storage{
			users:    postgres.NewUserRepository(pool),
			products: postgres.NewProductRepository(pool),
			clients:  postgres.NewClientRepository(pool),
			orders:   postgres.NewOrderRepository(pool),
			reports:  postgres.NewReportRepository(pool),
			txRunner: postgres.NewTxRunner(pool),
			close:    pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("driver de almacenamiento desconocido: %q", cfg.Storage.Driver)
}
