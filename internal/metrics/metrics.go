package metrics

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

const (
	namespace = "signin"
)

// Sign-in outcomes used as the "outcome" label.
const (
	OutcomeSuccess   = "success"
	OutcomeNoSession = "no_session"
	OutcomeFault     = "fault"
)

var (
	SignInAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attempts_total",
		Help:      "Count of sign-in attempts by provider and outcome.",
	}, []string{"provider", "outcome"})

	SignInDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "duration_seconds",
		Help:      "Time taken by the identity backend to answer a sign-in.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"provider"})
)

// WriteText writes the sign-in metric families from gatherer to w in the
// Prometheus text exposition format. Families from other namespaces are skipped.
func WriteText(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("metrics.WriteText: %w", err)
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), namespace+"_") {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metrics.WriteText: %w", err)
		}
	}
	return nil
}
