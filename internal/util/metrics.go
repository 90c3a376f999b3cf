package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ActionsExecutedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "actions_executed_total",
		Help: "Total number of action handler runs",
	}, []string{"action"})

	ActionsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "actions_failed_total",
		Help: "Total number of action handler runs that degraded to an error message",
	}, []string{"action"})

	PagesServedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_pages_served_total",
		Help: "Total number of catalog pages rendered",
	}, []string{"view_type"})

	CartAddsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_adds_total",
		Help: "Total number of products added to carts",
	})

	CartUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_updates_total",
		Help: "Total number of cart line updates",
	}, []string{"operation"})

	CheckoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkouts_total",
		Help: "Total number of simulated checkouts",
	})

	CheckoutAmount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_amount",
		Help:    "Final totals of simulated checkouts",
		Buckets: prometheus.ExponentialBuckets(100, 4, 8),
	})

	OrdersTrackedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_tracked_total",
		Help: "Total number of order-status records served",
	})

	StylistRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stylist_requests_total",
		Help: "Total number of styling-advice upstream calls",
	})

	StylistCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stylist_cache_hits_total",
		Help: "Total number of styling-advice answers served from cache",
	})

	StylistFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stylist_failures_total",
		Help: "Total number of failed styling-advice upstream calls",
	})

	AnalyticsEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_events_total",
		Help: "Total number of analytics events consumed",
	}, []string{"type"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
