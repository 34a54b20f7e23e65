package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Submissions counts evaluator submissions by role and outcome
	// (accepted, invalid, schema, error).
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "thesisgrade_submissions_total",
		Help: "Evaluator submissions by role and outcome",
	}, []string{"role", "outcome"})

	// Reports counts aggregate report builds by format.
	Reports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "thesisgrade_reports_total",
		Help: "Aggregate reports built, by output format",
	}, []string{"format"})

	ReportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "thesisgrade_report_duration_seconds",
		Help:    "Time to read the log and aggregate every student",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	})

	// LogRecords is the number of records seen by the last report build.
	LogRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "thesisgrade_log_records",
		Help: "Evaluation records in the last snapshot read",
	})
)

const (
	OutcomeAccepted = "accepted"
	OutcomeInvalid  = "invalid"
	OutcomeSchema   = "schema"
	OutcomeError    = "error"
)
