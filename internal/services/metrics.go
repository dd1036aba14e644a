// Prometheus collectors for catalogue activity. HTTP-level metrics live in
// the middleware package; these cover domain events so dashboards can track
// lending volume and persistence health independently of traffic.
package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// catalogBooks gauges the number of books in the catalogue.
	catalogBooks = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "library_catalog_books",
			Help: "Number of books in the catalogue.",
		},
	)

	// borrowsTotal counts successful borrow operations.
	borrowsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "library_borrows_total",
			Help: "Total number of successful borrows.",
		},
	)

	// returnsTotal counts successful return operations.
	returnsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "library_returns_total",
			Help: "Total number of successful returns.",
		},
	)

	// borrowRejections counts refused borrows by reason (not_found, unavailable).
	borrowRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_borrow_rejections_total",
			Help: "Total number of refused borrow attempts.",
		},
		[]string{"reason"},
	)

	// catalogSaveFailures counts swallowed catalogue write failures. A nonzero
	// value means the in-memory and on-disk state may have diverged.
	catalogSaveFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "library_catalog_save_failures_total",
			Help: "Total number of failed catalogue file writes.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		catalogBooks,
		borrowsTotal,
		returnsTotal,
		borrowRejections,
		catalogSaveFailures,
	)
}
