package tracking

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reportsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "busmitra_position_reports_ingested_total",
		Help: "Number of position reports appended to the tracking log",
	})

	etaRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "busmitra_eta_requests_total",
		Help: "ETA projections by outcome",
	}, []string{"result"})

	nearestSearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "busmitra_nearest_search_duration_seconds",
		Help:    "Time spent resolving nearest-bus searches",
		Buckets: prometheus.DefBuckets,
	})
)
