package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DataMetrics struct {
	RowsLoaded    *prometheus.CounterVec
	RowsMerged    prometheus.Counter
	NoServiceFill *prometheus.CounterVec
}

type FeatureMetrics struct {
	UnknownCategories *prometheus.CounterVec
}

type PipelineMetrics struct {
	StageDuration *prometheus.HistogramVec
	SubsetSize    *prometheus.GaugeVec
}

var (
	Data = DataMetrics{
		RowsLoaded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "churn_engine_rows_loaded_total",
				Help: "Total number of rows loaded per data source.",
			},
			[]string{"source"},
		),
		RowsMerged: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "churn_engine_rows_merged_total",
				Help: "Total number of unified customer records produced by the merge.",
			},
		),
		NoServiceFill: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "churn_engine_no_service_fill_total",
				Help: "Total number of merged records filled with the NoService sentinel.",
			},
			[]string{"source"},
		),
	}

	Feature = FeatureMetrics{
		UnknownCategories: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "churn_engine_unknown_categories_total",
				Help: "Total number of categorical values routed to the other bucket.",
			},
			[]string{"attribute"},
		),
	}

	Pipeline = PipelineMetrics{
		StageDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "churn_engine_stage_duration_seconds",
				Help:    "Histogram of pipeline stage durations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		SubsetSize: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "churn_engine_subset_size",
				Help: "Row count of the training and evaluation subsets.",
			},
			[]string{"subset"},
		),
	}
)

func RecordRowsLoaded(source string, count int) {
	Data.RowsLoaded.WithLabelValues(source).Add(float64(count))
}

func RecordRowsMerged(count int) {
	Data.RowsMerged.Add(float64(count))
}

func RecordNoServiceFill(source string) {
	Data.NoServiceFill.WithLabelValues(source).Inc()
}

func RecordUnknownCategory(attribute string) {
	Feature.UnknownCategories.WithLabelValues(attribute).Inc()
}

func RecordStage(stage string, duration time.Duration) {
	Pipeline.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

func RecordSubsetSize(subset string, count int) {
	Pipeline.SubsetSize.WithLabelValues(subset).Set(float64(count))
}
