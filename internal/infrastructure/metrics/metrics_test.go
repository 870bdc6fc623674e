package metrics_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/infrastructure/metrics"
)

func TestMetrics_LedgerYCache(t *testing.T) {
	m := metrics.New()
	m.UnitsReserved(3)
	m.UnitsReserved(2)
	m.UnitsReleased(1)
	m.ReservationRejected()
	m.CacheHit("top_clients")
	m.CacheMiss("top_clients")
	m.CacheMiss("top_clients")

	expected := `
# HELP pedidos_inventory_units_reserved_total Unidades descontadas del stock por pedidos.
# TYPE pedidos_inventory_units_reserved_total counter
pedidos_inventory_units_reserved_total 5
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "pedidos_inventory_units_reserved_total"))

	n, err := testutil.GatherAndCount(m.Registry(), "pedidos_cache_misses_total", "pedidos_inventory_reservations_rejected_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMetrics_MiddlewareYHandler(t *testing.T) {
	m := metrics.New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/orders/:id", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/orders/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `route="/orders/:id"`)
	assert.NotContains(t, string(body), "/orders/abc")
}
