package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CutStatistics holds the counters of one search.
type CutStatistics struct {
	Nodes       uint64
	TTCutoffs   uint64
	BetaCutoffs uint64
}

func (c *CutStatistics) add(o CutStatistics) {
	c.Nodes += o.Nodes
	c.TTCutoffs += o.TTCutoffs
	c.BetaCutoffs += o.BetaCutoffs
}

// SearchStats exports search counters to Prometheus. Collectors are safe for
// concurrent use, so parallel workers publish into the same instance.
type SearchStats struct {
	nodes       prometheus.Counter
	ttCutoffs   prometheus.Counter
	betaCutoffs prometheus.Counter
	searches    *prometheus.CounterVec
	lastDepth   prometheus.Gauge
	duration    prometheus.Histogram
}

// NewSearchStats creates the collectors and registers them on reg. A nil reg
// leaves them unregistered, which tests and embedded engines use.
func NewSearchStats(reg prometheus.Registerer) *SearchStats {
	f := promauto.With(reg)
	return &SearchStats{
		nodes: f.NewCounter(prometheus.CounterOpts{
			Namespace: "othello",
			Subsystem: "search",
			Name:      "nodes_total",
			Help:      "Negamax nodes visited.",
		}),
		ttCutoffs: f.NewCounter(prometheus.CounterOpts{
			Namespace: "othello",
			Subsystem: "search",
			Name:      "tt_cutoffs_total",
			Help:      "Subtrees answered by the transposition table.",
		}),
		betaCutoffs: f.NewCounter(prometheus.CounterOpts{
			Namespace: "othello",
			Subsystem: "search",
			Name:      "beta_cutoffs_total",
			Help:      "Move loops cut short by alpha-beta.",
		}),
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "othello",
			Subsystem: "search",
			Name:      "searches_total",
			Help:      "Completed searches by kind.",
		}, []string{"kind"}),
		lastDepth: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "othello",
			Subsystem: "search",
			Name:      "last_depth",
			Help:      "Deepest fully completed iteration of the last root search.",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "othello",
			Subsystem: "search",
			Name:      "duration_seconds",
			Help:      "Wall time of root searches.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
	}
}

func (s *SearchStats) record(c CutStatistics) {
	s.nodes.Add(float64(c.Nodes))
	s.ttCutoffs.Add(float64(c.TTCutoffs))
	s.betaCutoffs.Add(float64(c.BetaCutoffs))
}

func (s *SearchStats) finish(kind string, depth int, elapsed time.Duration) {
	s.searches.WithLabelValues(kind).Inc()
	s.lastDepth.Set(float64(depth))
	s.duration.Observe(elapsed.Seconds())
}
