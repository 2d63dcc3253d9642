// Package metrics defines and registers all custom Prometheus metrics for
// the farm management API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "farm"

// InventoryUploadsTotal counts new inventory entries.
var InventoryUploadsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inventory_uploads_total",
		Help:      "Total number of inventory entries uploaded.",
	},
)

// InventoryUpdatesTotal counts reconciliation updates, labelled by the
// selector that matched.
// Label:
//   - selector: "id" or "farm"
var InventoryUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inventory_updates_total",
		Help:      "Total number of inventory entry updates, by lookup selector.",
	},
	[]string{"selector"},
)

// CalendarRequestsTotal counts calendar month aggregations.
var CalendarRequestsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calendar_requests_total",
		Help:      "Total number of inventory calendar aggregations served.",
	},
)

// ExportsTotal counts xlsx report downloads.
var ExportsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inventory_exports_total",
		Help:      "Total number of inventory spreadsheet exports generated.",
	},
)

// WeatherCacheTotal counts weather cache lookups.
// Label:
//   - result: "hit" (served from cache) or "miss" (upstream fetch)
var WeatherCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "weather_cache_total",
		Help:      "Total number of weather cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)

// PasswordResetsTotal counts password-reset phases completed.
// Label:
//   - phase: "requested", "verified", or "reset"
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password-reset flow phases completed.",
	},
	[]string{"phase"},
)
