package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the matching metrics. It registers on its own registry so
// tests can build as many as they like.
type Collector struct {
	Registry *prometheus.Registry

	matchRequests       *prometheus.CounterVec
	opportunitiesScored prometheus.Counter
	rankDuration        prometheus.Histogram
	matchScores         prometheus.Histogram
}

func New() *Collector {
	c := &Collector{
		Registry: prometheus.NewRegistry(),
		matchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "craftlab",
			Name:      "match_requests_total",
			Help:      "Match requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		opportunitiesScored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "craftlab",
			Name:      "opportunities_scored_total",
			Help:      "Opportunities passed through the scorer.",
		}),
		rankDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "craftlab",
			Name:      "rank_duration_seconds",
			Help:      "Time spent ranking opportunities for one profile.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		matchScores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "craftlab",
			Name:      "match_score",
			Help:      "Distribution of computed match scores.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
	}

	c.Registry.MustRegister(
		c.matchRequests,
		c.opportunitiesScored,
		c.rankDuration,
		c.matchScores,
	)
	return c
}

func (c *Collector) ObserveRequest(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.matchRequests.WithLabelValues(operation, outcome).Inc()
}

func (c *Collector) ObserveRank(scores []int, took time.Duration) {
	c.rankDuration.Observe(took.Seconds())
	for _, s := range scores {
		c.ObserveScore(s)
	}
}

// ObserveScore records a single scored pair. It leaves rank_duration_seconds
// alone, which only times whole rankings.
func (c *Collector) ObserveScore(score int) {
	c.opportunitiesScored.Inc()
	c.matchScores.Observe(float64(score))
}
