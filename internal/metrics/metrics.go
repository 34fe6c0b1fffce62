// Package metrics exposes prometheus instruments for betting and settlement.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what services report to.
type Recorder interface {
	BetPlaced(kind string, stake int64)
	BetRejected(reason string)
	BetSettled(result string)
	GameSettled(bets int)
	CacheLookup(hit bool)
}

type Metrics struct {
	registry     *prometheus.Registry
	betsPlaced   *prometheus.CounterVec
	stakeTotal   *prometheus.CounterVec
	rejections   *prometheus.CounterVec
	betsSettled  *prometheus.CounterVec
	gamesSettled prometheus.Counter
	settleBatch  prometheus.Histogram
	cacheLookups *prometheus.CounterVec
}

var _ Recorder = (*Metrics)(nil)

// New registers every instrument on a fresh registry.
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		betsPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "bets_placed_total", Help: "bets accepted by kind",
		}, []string{"kind"}),
		stakeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "stake_minor_units_total", Help: "stake accepted in minor units",
		}, []string{"kind"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "bet_rejections_total", Help: "placements refused by reason",
		}, []string{"reason"}),
		betsSettled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "bets_settled_total", Help: "bets resolved by result",
		}, []string{"result"}),
		gamesSettled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "games_settled_total", Help: "games moved to completed",
		}),
		settleBatch: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "settlement_batch_size", Help: "bets touched per settled game",
			Buckets: prometheus.ExponentialBuckets(1, 4, 6),
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "stats_cache_lookups_total", Help: "stats cache lookups by outcome",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		m.betsPlaced, m.stakeTotal, m.rejections, m.betsSettled,
		m.gamesSettled, m.settleBatch, m.cacheLookups,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) BetPlaced(kind string, stake int64) {
	m.betsPlaced.WithLabelValues(kind).Inc()
	m.stakeTotal.WithLabelValues(kind).Add(float64(stake))
}

func (m *Metrics) BetRejected(reason string) {
	m.rejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) BetSettled(result string) {
	m.betsSettled.WithLabelValues(result).Inc()
}

func (m *Metrics) GameSettled(bets int) {
	m.gamesSettled.Inc()
	m.settleBatch.Observe(float64(bets))
}

func (m *Metrics) CacheLookup(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.cacheLookups.WithLabelValues(outcome).Inc()
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Nop discards every observation.
type Nop struct{}

var _ Recorder = Nop{}

func (Nop) BetPlaced(string, int64) {}
func (Nop) BetRejected(string)      {}
func (Nop) BetSettled(string)       {}
func (Nop) GameSettled(int)         {}
func (Nop) CacheLookup(bool)        {}
