// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package metrics provides Prometheus instrumentation for conditional actions.
//
// All metrics live in a dedicated registry together with the Go runtime and
// process collectors. Every method is safe to call on a nil *Metrics.
package metrics

import (
	"context"
	"net/http"
	"path"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Rule evaluation outcomes.
const (
	ResultMatched    = "matched"
	ResultNotMatched = "not_matched"
	ResultError      = "error"
	ResultGated      = "gated"
)

// Metrics holds all Prometheus collectors.
type Metrics struct {
	Registry *prometheus.Registry

	EventsTotal          *prometheus.CounterVec
	RuleEvaluationsTotal *prometheus.CounterVec
	DispatchesTotal      *prometheus.CounterVec
	ActionFailuresTotal  *prometheus.CounterVec
	DispatchDuration     prometheus.Histogram
	RulesetVersion       prometheus.Gauge
	GRPCRequestsTotal    *prometheus.CounterVec
}

// New creates and registers all metrics in a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,

		EventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "conditional_actions_events_total",
			Help: "Total number of trigger events evaluated.",
		}, []string{"trigger"}),

		RuleEvaluationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "conditional_actions_rule_evaluations_total",
			Help: "Total number of rule evaluations by outcome.",
		}, []string{"rule_id", "result"}),

		DispatchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "conditional_actions_dispatches_total",
			Help: "Total number of action batches dispatched.",
		}, []string{"rule_id"}),

		ActionFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "conditional_actions_action_failures_total",
			Help: "Total number of failed actions.",
		}, []string{"action_type"}),

		DispatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "conditional_actions_dispatch_duration_seconds",
			Help:    "Latency of action batch dispatch in seconds.",
			Buckets: prometheus.DefBuckets,
		}),

		RulesetVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "conditional_actions_ruleset_version",
			Help: "Version of the active rule set.",
		}),

		GRPCRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "conditional_actions_grpc_requests_total",
			Help: "Total number of gRPC requests.",
		}, []string{"method", "status"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.EventsTotal,
		m.RuleEvaluationsTotal,
		m.DispatchesTotal,
		m.ActionFailuresTotal,
		m.DispatchDuration,
		m.RulesetVersion,
		m.GRPCRequestsTotal,
	)

	return m
}

// Handler returns an http.Handler that serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// UnaryServerInterceptor counts gRPC requests per method and status.
func (m *Metrics) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if m != nil {
			st, _ := status.FromError(err)
			m.GRPCRequestsTotal.WithLabelValues(path.Base(info.FullMethod), st.Code().String()).Inc()
		}
		return resp, err
	}
}

func (m *Metrics) RecordEvent(trigger string) {
	if m == nil {
		return
	}
	m.EventsTotal.WithLabelValues(trigger).Inc()
}

func (m *Metrics) RecordEvaluation(ruleID, result string) {
	if m == nil {
		return
	}
	m.RuleEvaluationsTotal.WithLabelValues(ruleID, result).Inc()
}

// RecordDispatch counts a dispatched batch and its latency.
func (m *Metrics) RecordDispatch(ruleID string, took time.Duration) {
	if m == nil {
		return
	}
	m.DispatchesTotal.WithLabelValues(ruleID).Inc()
	m.DispatchDuration.Observe(took.Seconds())
}

func (m *Metrics) RecordActionFailure(actionType string) {
	if m == nil {
		return
	}
	m.ActionFailuresTotal.WithLabelValues(actionType).Inc()
}

func (m *Metrics) SetRulesetVersion(v int64) {
	if m == nil {
		return
	}
	m.RulesetVersion.Set(float64(v))
}
