package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.ListQueries.WithLabelValues("appointments").Inc()
	r.ListQueries.WithLabelValues("appointments").Inc()
	r.OrdersSubmitted.WithLabelValues("opd").Inc()
	r.OrderGrandTotal.Observe(1449)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.ListQueries.WithLabelValues("appointments")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.OrdersSubmitted.WithLabelValues("opd")))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hmis_list_queries_total{list="appointments"} 2`)
	assert.Contains(t, rec.Body.String(), "hmis_order_grand_total_count 1")
}
