// Package metrics exposes Prometheus collectors for the generator service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chaitu-2303/Q-A/internal/model"
)

var (
	GenerateRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teluguqa_generate_requests_total",
			Help: "Generate requests by outcome",
		},
		[]string{"status"},
	)

	GenerateDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "teluguqa_generate_duration_seconds",
			Help:    "Pipeline run time in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"difficulty"},
	)

	QuestionsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teluguqa_questions_generated_total",
			Help: "Generated questions by level and type",
		},
		[]string{"level", "type"},
	)

	ConfidenceScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "teluguqa_confidence_score",
			Help:    "Level confidence of generated questions",
			Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		},
	)

	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "teluguqa_cache_hits_total",
			Help: "Generate responses served from cache",
		},
	)

	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "teluguqa_cache_misses_total",
			Help: "Generate requests that ran the pipeline",
		},
	)

	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "teluguqa_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	BatchJobs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teluguqa_batch_jobs_total",
			Help: "Batch generation jobs by outcome",
		},
		[]string{"status"},
	)
)

var initOnce sync.Once

// Init registers all collectors with the default registry. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(GenerateRequests)
		prometheus.MustRegister(GenerateDuration)
		prometheus.MustRegister(QuestionsGenerated)
		prometheus.MustRegister(ConfidenceScore)
		prometheus.MustRegister(CacheHits)
		prometheus.MustRegister(CacheMisses)
		prometheus.MustRegister(RateLimited)
		prometheus.MustRegister(BatchJobs)
	})
}

// ObservePairs records level, type and confidence of each generated pair.
func ObservePairs(pairs []model.ScoredQA) {
	for _, p := range pairs {
		QuestionsGenerated.WithLabelValues(string(p.Level), string(p.Type)).Inc()
		ConfidenceScore.Observe(p.Confidence)
	}
}

// Handler serves the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
