package scheduler

import (
	"github.com/ledgerly/backend/pkg/jobs"
	"github.com/prometheus/client_golang/prometheus"
)

// Collectors are the Prometheus metrics of sweeps and their work items.
var Collectors = []prometheus.Collector{
	sweepCount,
	jobCount,
	alertCount,
}

var sweepCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sweeps_total",
		Help: "How many sweeps ran, partitioned by kind and result.",
	},
	[]string{"kind", "result"},
)

var jobCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "recurring_jobs_total",
		Help: "How many recurring transaction jobs finished, partitioned by final status.",
	},
	[]string{"status"},
)

var alertCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "budget_alerts_total",
		Help: "How many budgets were evaluated, partitioned by outcome.",
	},
	[]string{"result"},
)

// ObserveJob counts a finished job. It is meant to be used as
// jobs.Queue.OnFinish.
func ObserveJob(job jobs.RecurringJob) {
	jobCount.WithLabelValues(string(job.Status)).Inc()
}

func observeSweep(kind Kind, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	sweepCount.WithLabelValues(string(kind), result).Inc()
}
