// Package metrics exposes prometheus instrumentation for the matching
// engine and its supporting consumers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clover"

var (
	// MatchGenerations counts generation runs by outcome (success, not_found, error)
	MatchGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "match_generations_total",
		Help:      "Match generation runs by outcome",
	}, []string{"outcome"})

	// CandidatesScored tracks how many investor/firm pairs each run scores
	CandidatesScored = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "match_candidates_scored",
		Help:      "Candidates scored per generation run",
		Buckets:   prometheus.ExponentialBuckets(10, 4, 7),
	})

	// GenerationDuration tracks end-to-end generation latency
	GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "match_generation_duration_seconds",
		Help:      "Match generation duration in seconds",
		Buckets:   prometheus.DefBuckets,
	})

	// MatchesSaved counts persisted match rows
	MatchesSaved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "matches_saved_total",
		Help:      "Match rows persisted",
	})

	// WeightAdaptations counts weight adapter runs by source (learned, default)
	WeightAdaptations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "weight_adaptations_total",
		Help:      "Weight adapter runs by resulting vector source",
	}, []string{"source"})

	// DealFeedback counts deal outcomes propagated onto matches
	DealFeedback = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deal_feedback_total",
		Help:      "Deal outcomes propagated onto match records",
	}, []string{"outcome"})

	// ConsumerMessages counts kafka messages by topic and result
	ConsumerMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "consumer_messages_total",
		Help:      "Kafka messages consumed by topic and result",
	}, []string{"topic", "result"})
)
