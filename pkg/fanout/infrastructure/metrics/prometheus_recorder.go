package metrics

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	metrics "github.com/tigerroll/fanout/pkg/fanout/core/metrics"
	logger "github.com/tigerroll/fanout/pkg/fanout/support/util/logger"
)

// PrometheusRecorder is a BatchMetricRecorder backed by a dedicated
// Prometheus registry.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	evaluationCounter *prometheus.CounterVec
	skipCounter       *prometheus.CounterVec
	createdCounter    *prometheus.CounterVec
	submissionCounter *prometheus.CounterVec
	batchItems        *prometheus.HistogramVec
	batchChunks       *prometheus.HistogramVec
}

// NewPrometheusRecorder creates a PrometheusRecorder with its own registry,
// including the standard Go and process collectors.
func NewPrometheusRecorder() *PrometheusRecorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &PrometheusRecorder{
		registry: registry,
		evaluationCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fanout_evaluations_total",
			Help: "Total number of batching evaluations by outcome.",
		}, []string{"job_name", "batched"}),
		skipCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fanout_skips_total",
			Help: "Total number of evaluations skipped by reason.",
		}, []string{"job_name", "reason"}),
		createdCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fanout_batches_created_total",
			Help: "Total number of batches assembled.",
		}, []string{"job_name"}),
		submissionCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fanout_submissions_total",
			Help: "Total number of batch submissions by result.",
		}, []string{"job_name", "result"}),
		batchItems: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fanout_batch_items",
			Help:    "Number of items split per batch.",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		}, []string{"job_name"}),
		batchChunks: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fanout_batch_chunks",
			Help:    "Number of child jobs produced per batch.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"job_name"}),
	}

	registry.MustRegister(r.evaluationCounter)
	registry.MustRegister(r.skipCounter)
	registry.MustRegister(r.createdCounter)
	registry.MustRegister(r.submissionCounter)
	registry.MustRegister(r.batchItems)
	registry.MustRegister(r.batchChunks)

	return r
}

// GetRegistry returns the Prometheus registry for exposition.
func (r *PrometheusRecorder) GetRegistry() *prometheus.Registry {
	return r.registry
}

// RecordEvaluation records the outcome of one evaluate call.
func (r *PrometheusRecorder) RecordEvaluation(ctx context.Context, jobLabel string, batched bool) {
	r.evaluationCounter.WithLabelValues(jobLabel, strconv.FormatBool(batched)).Inc()
}

// RecordSkip records a skipped evaluation.
func (r *PrometheusRecorder) RecordSkip(ctx context.Context, jobLabel string, reason string) {
	r.skipCounter.WithLabelValues(jobLabel, reason).Inc()
	logger.Debugf("Metrics: evaluation for '%s' skipped (%s).", jobLabel, reason)
}

// RecordBatchCreated records the shape of an assembled batch.
func (r *PrometheusRecorder) RecordBatchCreated(ctx context.Context, jobLabel string, itemCount, chunkCount, chunkSize int) {
	r.createdCounter.WithLabelValues(jobLabel).Inc()
	r.batchItems.WithLabelValues(jobLabel).Observe(float64(itemCount))
	r.batchChunks.WithLabelValues(jobLabel).Observe(float64(chunkCount))
	logger.Debugf("Metrics: batch created for '%s' (%d items, %d chunks).", jobLabel, itemCount, chunkCount)
}

// RecordSubmission records the result of a batch submission.
func (r *PrometheusRecorder) RecordSubmission(ctx context.Context, jobLabel string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.submissionCounter.WithLabelValues(jobLabel, result).Inc()
}

var _ metrics.BatchMetricRecorder = (*PrometheusRecorder)(nil)
