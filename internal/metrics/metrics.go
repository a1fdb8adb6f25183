// Package metrics exposes Prometheus collectors describing an encoding run.
// Runs are batch jobs, so the registry is written to a node-exporter
// textfile rather than served.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/inodb/vibe-splice/internal/pipeline"
	"github.com/inodb/vibe-splice/internal/splice"
)

const namespace = "vibe_splice"

// Recorder holds the collectors for a single run on a private registry.
type Recorder struct {
	registry    *prometheus.Registry
	transcripts *prometheus.CounterVec
	flags       *prometheus.CounterVec
	fraction    prometheus.Histogram
	duration    prometheus.Gauge
	cacheHits   prometheus.Counter
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		transcripts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcripts_total",
			Help:      "Transcripts by outcome (encoded, not_found, length_mismatch, skipped).",
		}, []string{"outcome"}),
		flags: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flagged_transcripts_total",
			Help:      "Encoded transcripts carrying each anomaly flag.",
		}, []string{"flag"}),
		fraction: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "spliced_fraction",
			Help:      "Share of exon positions per encoded transcript.",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of the last encoding run.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "memo_hits_total",
			Help:      "Results served from the memo.",
		}),
	}
	r.registry.MustRegister(r.transcripts, r.flags, r.fraction, r.duration, r.cacheHits)
	return r
}

// Registry returns the recorder's registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe records a finished run.
func (r *Recorder) Observe(report *pipeline.Report) {
	r.transcripts.WithLabelValues("encoded").Add(float64(len(report.Results)))
	r.transcripts.WithLabelValues(string(splice.ReasonNotFound)).Add(float64(len(report.Exclusions.NotFound)))
	r.transcripts.WithLabelValues(string(splice.ReasonLengthMismatch)).Add(float64(len(report.Exclusions.LengthMismatch)))
	r.transcripts.WithLabelValues("skipped").Add(float64(report.Skipped))

	counts := report.FlagCounts()
	for _, f := range splice.AllFlags() {
		r.flags.WithLabelValues(f.String()).Add(float64(counts[f]))
	}
	for _, res := range report.Results {
		r.fraction.Observe(res.SplicedFraction)
	}
	r.duration.Set(report.Elapsed.Seconds())
	r.cacheHits.Add(float64(report.CacheHits))
}

// WriteTextfile writes the registry in the text exposition format, for the
// node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
