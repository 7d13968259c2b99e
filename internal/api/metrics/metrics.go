// Package metrics defines and registers all custom Prometheus metrics for the
// applitrack API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry via promauto at package
// load; the /metrics endpoint is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "applitrack"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts account sign-ups that succeeded.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created.",
	},
)

// CompaniesCreatedTotal counts companies registered by users.
var CompaniesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "companies_created_total",
		Help:      "Total number of companies registered.",
	},
)

// CompaniesDeletedTotal counts companies removed, including cascaded bulk
// deletes.
var CompaniesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "companies_deleted_total",
		Help:      "Total number of companies deleted.",
	},
)

// SchedulesCreatedTotal counts schedule events added under companies.
var SchedulesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "schedules_created_total",
		Help:      "Total number of schedule events created.",
	},
)
