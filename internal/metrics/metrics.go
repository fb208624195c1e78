// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cerinote"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	PipelineRuns     *prometheus.CounterVec
	PipelineDuration prometheus.Histogram
	StageFailures    *prometheus.CounterVec

	TranscriptionBytes prometheus.Counter

	RiskFindings *prometheus.CounterVec

	SessionsPurged prometheus.Counter
	AudioDeleted   prometheus.Counter
}

// NewMetrics creates and registers all metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PipelineRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Total number of pipeline runs by outcome",
		}, []string{"outcome"}),
		PipelineDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "End-to-end pipeline duration in seconds",
			Buckets:   []float64{1, 2, 5, 10, 30, 60, 120, 300, 600},
		}),
		StageFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_failures_total",
			Help:      "Total number of pipeline stage failures",
		}, []string{"stage"}),
		TranscriptionBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcription_audio_bytes_total",
			Help:      "Total audio bytes submitted for transcription",
		}),
		RiskFindings: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "risk_findings_total",
			Help:      "Total risk findings by severity",
		}, []string{"severity"}),
		SessionsPurged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_purged_total",
			Help:      "Total sessions removed by the retention sweep",
		}),
		AudioDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_deleted_total",
			Help:      "Total session audio files deleted",
		}),
	}
}

func (m *Metrics) RecordPipelineRun(outcome string, durationSeconds float64) {
	m.PipelineRuns.WithLabelValues(outcome).Inc()
	m.PipelineDuration.Observe(durationSeconds)
}

func (m *Metrics) RecordStageFailure(stage string) {
	m.StageFailures.WithLabelValues(stage).Inc()
}

func (m *Metrics) RecordRiskFinding(severity string) {
	m.RiskFindings.WithLabelValues(severity).Inc()
}
