// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes prometheus counters for the voting workflow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	OperationsTotal *prometheus.CounterVec
	RejectionsTotal *prometheus.CounterVec
	VotesCastTotal  prometheus.Counter
	TalliesTotal    prometheus.Counter
}

// New registers the workflow metrics with reg. Pass
// prometheus.DefaultRegisterer in main and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		OperationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ballotline_operations_total",
			Help: "Total workflow operations accepted, by operation",
		}, []string{"operation"}),
		RejectionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ballotline_rejections_total",
			Help: "Total workflow operations rejected, by reason",
		}, []string{"reason"}),
		VotesCastTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "ballotline_votes_cast_total",
			Help: "Total votes recorded",
		}),
		TalliesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "ballotline_tallies_total",
			Help: "Total tallies computed",
		}),
	}
}

func (m *Metrics) RecordOperation(operation string) {
	m.OperationsTotal.WithLabelValues(operation).Inc()
}

func (m *Metrics) RecordRejection(reason string) {
	m.RejectionsTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) RecordVote() {
	m.VotesCastTotal.Inc()
}

func (m *Metrics) RecordTally() {
	m.TalliesTotal.Inc()
}
