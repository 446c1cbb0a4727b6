package dataset

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	fetchResultSuccess = "success"
	fetchResultFailure = "failure"
)

var (
	fetchCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coviddash_dataset_fetches_total",
		Help: "Dataset fetches, by result.",
	}, []string{"result"})

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "coviddash_dataset_fetch_duration_seconds",
		Help:    "Time spent fetching and parsing a dataset.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	loadedRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "coviddash_dataset_rows",
		Help: "Observations in the most recently loaded dataset.",
	})
)
