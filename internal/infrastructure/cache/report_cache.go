package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

var _ repository.ReportRepository = (*CachedReportRepository)(nil)

const keyPrefix = "pedidos:reports:"

// Recorder recibe aciertos y fallos de caché (métricas). Puede ser nil.
type Recorder interface {
	CacheHit(report string)
	CacheMiss(report string)
}

// CachedReportRepository decora un ReportRepository guardando cada resultado en Redis durante ttl.
// Si Redis falla se consulta el repositorio real; la caché nunca rompe un reporte.
type CachedReportRepository struct {
	next  repository.ReportRepository
	redis *redis.Client
	ttl   time.Duration
	rec   Recorder
	log   *logger.Logger
}

// NewCachedReportRepository construye el decorador.
func NewCachedReportRepository(next repository.ReportRepository, client *redis.Client, ttl time.Duration, rec Recorder, log *logger.Logger) *CachedReportRepository {
	if log == nil {
		log = logger.Nop()
	}
	return &CachedReportRepository{next: next, redis: client, ttl: ttl, rec: rec, log: log}
}

func (c *CachedReportRepository) TopClients(ctx context.Context, limit int) ([]entity.ClientSales, error) {
	key := fmt.Sprintf("%stop_clients:%d", keyPrefix, limit)
	return cached(ctx, c, "top_clients", key, func() ([]entity.ClientSales, error) {
		return c.next.TopClients(ctx, limit)
	})
}

func (c *CachedReportRepository) TopSalesPersons(ctx context.Context, limit int) ([]entity.SalesPersonSales, error) {
	key := fmt.Sprintf("%stop_sales_persons:%d", keyPrefix, limit)
	return cached(ctx, c, "top_sales_persons", key, func() ([]entity.SalesPersonSales, error) {
		rows, err := c.next.TopSalesPersons(ctx, limit)
		if err != nil {
			return nil, err
		}
		// el hash nunca sale del repositorio hacia Redis
		for i := range rows {
			if rows[i].SalesPerson != nil {
				u := *rows[i].SalesPerson
				u.PasswordHash = ""
				rows[i].SalesPerson = &u
			}
		}
		return rows, nil
	})
}

// Invalidate borra todos los reportes guardados.
func (c *CachedReportRepository) Invalidate(ctx context.Context) error {
	iter := c.redis.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.redis.Del(ctx, keys...).Err()
}

func cached[T any](ctx context.Context, c *CachedReportRepository, report, key string, load func() ([]T, error)) ([]T, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var rows []T
		if err := json.Unmarshal(data, &rows); err == nil {
			c.hit(report)
			return rows, nil
		}
		c.log.Warn().Err(err).Str("key", key).Msg("reporte en caché ilegible, se consulta el repositorio")
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn().Err(err).Str("key", key).Msg("redis no disponible, se consulta el repositorio")
	}
	c.miss(report)

	rows, err := load()
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		c.log.Warn().Err(err).Msg("no se pudo serializar el reporte")
		return rows, nil
	}
	if err := c.redis.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("no se pudo guardar el reporte en caché")
	}
	return rows, nil
}

func (c *CachedReportRepository) hit(report string) {
	if c.rec != nil {
		c.rec.CacheHit(report)
	}
}

func (c *CachedReportRepository) miss(report string) {
	if c.rec != nil {
		c.rec.CacheMiss(report)
	}
}

// NewClient abre el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
