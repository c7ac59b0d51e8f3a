package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg                *prometheus.Registry
	ListQueries        *prometheus.CounterVec
	OrdersSubmitted    *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	OrderGrandTotal    prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	listQueries := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "hmis_list_queries_total"}, []string{"list"})
	ordersSubmitted := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "hmis_orders_submitted_total"}, []string{"kind"})
	validationFailures := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "hmis_validation_failures_total"}, []string{"field"})
	grandTotal := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "hmis_order_grand_total",
		Buckets: prometheus.ExponentialBuckets(100, 2, 10),
	})

	r.MustRegister(listQueries, ordersSubmitted, validationFailures, grandTotal)
	return &Registry{
		reg:                r,
		ListQueries:        listQueries,
		OrdersSubmitted:    ordersSubmitted,
		ValidationFailures: validationFailures,
		OrderGrandTotal:    grandTotal,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
