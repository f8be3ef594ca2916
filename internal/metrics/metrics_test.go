package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.OrderPlaced(20)
	m.OrderPlaced(5.5)
	m.CartOperation("add")
	m.CartOperation("add")
	m.InsightRequest("description", false)
	m.PublishFailed()

	body := scrape(t, m)
	assert.Contains(t, body, "storefront_orders_placed_total 2")
	assert.Contains(t, body, "storefront_order_revenue_total 25.5")
	assert.Contains(t, body, `storefront_cart_operations_total{operation="add"} 2`)
	assert.Contains(t, body, `storefront_insight_requests_total{operation="description",outcome="fallback"} 1`)
	assert.Contains(t, body, "storefront_event_publish_failures_total 1")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.OrderPlaced(1)
		m.CartOperation("add")
		m.InsightRequest("image", true)
		m.PublishFailed()
	})
}

func TestMetrics_HandlerIncludesRuntimeCollectors(t *testing.T) {
	body := scrape(t, New())
	assert.True(t, strings.Contains(body, "go_goroutines"))
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}
