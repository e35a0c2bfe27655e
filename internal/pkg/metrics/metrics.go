// Package metrics holds the Prometheus instruments for the attendance engine.
// Exposed on /metrics by the HTTP router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EventsRecorded counts persisted attendance events by type.
var EventsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "attendance",
	Subsystem: "events",
	Name:      "recorded_total",
	Help:      "Total attendance events recorded, by event type.",
}, []string{"type"})

// SweepRuns counts completed overtime sweeps by outcome.
var SweepRuns = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "attendance",
	Subsystem: "sweep",
	Name:      "runs_total",
	Help:      "Total overtime sweep executions, by outcome (ok, error, skipped).",
}, []string{"outcome"})

// SweepDuration tracks how long a company sweep takes.
var SweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "attendance",
	Subsystem: "sweep",
	Name:      "duration_seconds",
	Help:      "Duration of a single company overtime sweep.",
	Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
})

// EmployeesInOvertime tracks the latest sweep's overtime headcount per company.
var EmployeesInOvertime = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "attendance",
	Subsystem: "sweep",
	Name:      "employees_in_overtime",
	Help:      "Employees currently past the daily overtime threshold, per company.",
}, []string{"company_id"})

// OvertimeAlerts counts overtime alerts raised by the sweep.
var OvertimeAlerts = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "attendance",
	Subsystem: "sweep",
	Name:      "overtime_alerts_total",
	Help:      "Total overtime alerts raised.",
})

// ComputationFailures counts per-employee fold failures isolated by a sweep.
var ComputationFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "attendance",
	Subsystem: "engine",
	Name:      "computation_failures_total",
	Help:      "Per-employee computations that failed and were excluded from batch results.",
})
