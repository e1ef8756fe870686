// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DocumentsRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sheetsmith_documents_rendered_total",
			Help: "Total number of spreadsheets rendered",
		},
		[]string{"task_type"},
	)

	DocumentsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sheetsmith_documents_failed_total",
			Help: "Total number of requests that did not produce a spreadsheet",
		},
		[]string{"task_type", "error_code"},
	)

	RenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sheetsmith_render_duration_seconds",
			Help:    "Duration of spreadsheet rendering in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"task_type"},
	)

	RequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sheetsmith_requests_in_flight",
			Help: "Number of requests currently being rendered",
		},
		[]string{"task_type"},
	)

	InvoiceLineItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sheetsmith_invoice_line_items",
			Help:    "Number of line items per rendered invoice",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 79, 100, 250},
		},
	)

	HTMLTableRows = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sheetsmith_html_table_rows",
			Help:    "Number of rows written per converted HTML table",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
)
