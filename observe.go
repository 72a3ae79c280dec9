// Copyright 2024 Factorial GmbH. All rights reserved.

package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("remapd")

// Metrics exposed for collection by Prometheus.
var (
	PromRemapTxns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "remapd_remaps_total",
		Help: "The total number of requests forwarded with a substituted host.",
	})
	PromRemapFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "remapd_remap_fallbacks_total",
		Help: "The total number of requests that fell back to their rule's target.",
	})
	PromPassthroughTxns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "remapd_passthrough_total",
		Help: "The total number of requests forwarded without a matching rule.",
	})
)
