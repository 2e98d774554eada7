// Package metrics exposes counters for the checkout counter.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry         *prometheus.Registry
	SalesCommitted   prometheus.Counter
	ItemsSold        prometheus.Counter
	CheckoutFailures prometheus.Counter
	PrintFailures    prometheus.Counter
	BarcodeMisses    prometheus.Counter
	InventoryEdits   *prometheus.CounterVec
}

// New registers the shop counters on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		SalesCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pos", Name: "sales_committed_total", Help: "Sales written to the store.",
		}),
		ItemsSold: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pos", Name: "sale_items_total", Help: "Sale items written to the store.",
		}),
		CheckoutFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pos", Name: "checkout_failures_total", Help: "Checkouts that failed on storage.",
		}),
		PrintFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pos", Name: "receipt_print_failures_total", Help: "Receipts written but not printed.",
		}),
		BarcodeMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pos", Name: "barcode_misses_total", Help: "Scans with no matching product.",
		}),
		InventoryEdits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos", Name: "inventory_edits_total", Help: "Inventory edits by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.SalesCommitted, m.ItemsSold, m.CheckoutFailures, m.PrintFailures, m.BarcodeMisses, m.InventoryEdits)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
