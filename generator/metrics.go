// SPDX-License-Identifier: MIT

package generator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/geogen/picture"
)

// Candidate outcomes used as the "outcome" label.
const (
	outcomeAccepted     = "accepted"
	outcomeFailed       = "failed"
	outcomeEqual        = "equal"
	outcomeDuplicate    = "duplicate"
	outcomeSymmetric    = "symmetric"
	outcomeInconsistent = "inconsistent"
)

var (
	// candidatesTotal counts evaluated candidate objects by outcome.
	//
	// Labels:
	//   - outcome: accepted, failed, equal, duplicate, symmetric, inconsistent
	candidatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geogen",
			Subsystem: "generator",
			Name:      "candidates_total",
			Help:      "Candidate objects by outcome",
		},
		[]string{"outcome"},
	)

	// layersTotal counts expanded layers.
	layersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "geogen",
			Subsystem: "generator",
			Name:      "layers_total",
			Help:      "Expanded layers",
		},
	)

	// layerDurationSeconds measures the expansion time of one layer.
	layerDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "geogen",
			Subsystem: "generator",
			Name:      "layer_duration_seconds",
			Help:      "Layer expansion duration in seconds",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
		},
	)

	// inconsistenciesTotal counts disagreeing picture rounds.
	inconsistenciesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "geogen",
			Subsystem: "pictures",
			Name:      "inconsistencies_total",
			Help:      "RunConsistently rounds in which pictures disagreed",
		},
	)

	// reconstructionsTotal counts successful picture reconstructions.
	reconstructionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "geogen",
			Subsystem: "pictures",
			Name:      "reconstructions_total",
			Help:      "Pictures rebuilt after an inconsistency",
		},
	)

	// runsTotal counts finished runs.
	//
	// Labels:
	//   - status: done, canceled, error
	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geogen",
			Subsystem: "generator",
			Name:      "runs_total",
			Help:      "Finished generation runs by status",
		},
		[]string{"status"},
	)
)

func recordCandidate(outcome string) {
	candidatesTotal.WithLabelValues(outcome).Inc()
}

func recordLayer(d time.Duration) {
	layersTotal.Inc()
	layerDurationSeconds.Observe(d.Seconds())
}

func recordPictures(s picture.Stats) {
	inconsistenciesTotal.Add(float64(s.Inconsistencies))
	reconstructionsTotal.Add(float64(s.Reconstructions))
}

func recordRun(status string) {
	runsTotal.WithLabelValues(status).Inc()
}
