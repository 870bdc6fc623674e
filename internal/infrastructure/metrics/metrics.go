// Package metrics instrumentación Prometheus de la API: HTTP, ledger de inventario y caché.
//
// Cada Metrics tiene su propio registry; main lo monta en GET /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/pedidos-api/internal/application/inventory"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/cache"
)

const namespace = "pedidos"

var (
	_ inventory.Recorder = (*Metrics)(nil)
	_ cache.Recorder     = (*Metrics)(nil)
)

// Metrics agrupa los colectores de la aplicación.
type Metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	inFlight        prometheus.Gauge

	unitsReserved prometheus.Counter
	unitsReleased prometheus.Counter
	rejected      prometheus.Counter

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
}

// New crea los colectores y los registra junto con los de runtime y proceso.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duración de las peticiones HTTP en segundos.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total de peticiones HTTP.",
		}, []string{"method", "route", "status"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Peticiones HTTP en curso.",
		}),
		unitsReserved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "units_reserved_total",
			Help:      "Unidades descontadas del stock por pedidos.",
		}),
		unitsReleased: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "units_released_total",
			Help:      "Unidades devueltas al stock por ediciones o cancelaciones.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "reservations_rejected_total",
			Help:      "Líneas rechazadas por stock insuficiente.",
		}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Reportes servidos desde la caché.",
		}, []string{"report"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Reportes calculados por no estar en caché.",
		}, []string{"report"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestDuration,
		m.requestTotal,
		m.inFlight,
		m.unitsReserved,
		m.unitsReleased,
		m.rejected,
		m.cacheHits,
		m.cacheMisses,
	)
	return m
}

// Registry expone el registry (tests y colectores extra).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Middleware registra duración y conteo por ruta. Usa el patrón de la ruta, no el path crudo,
// para no disparar la cardinalidad con IDs.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		labels := []string{c.Method(), route, strconv.Itoa(status)}
		m.requestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		m.requestTotal.WithLabelValues(labels...).Inc()
		return err
	}
}

// Handler expone la página de métricas para GET /metrics.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true}))
}

func (m *Metrics) UnitsReserved(n int)  { m.unitsReserved.Add(float64(n)) }
func (m *Metrics) ReservationRejected() { m.rejected.Inc() }
func (m *Metrics) UnitsReleased(n int)  { m.unitsReleased.Add(float64(n)) }

func (m *Metrics) CacheHit(report string)  { m.cacheHits.WithLabelValues(report).Inc() }
func (m *Metrics) CacheMiss(report string) { m.cacheMisses.WithLabelValues(report).Inc() }
