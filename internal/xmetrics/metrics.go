// Package xmetrics holds the Prometheus instruments recorded by
// xuma/registry and xuma/anyresolver. These are construction-time/observability instruments
// only — nothing on the Matcher.Evaluate hot path touches them.
package xmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var loadLabels = []string{"result", "kind"}

// LoadTotal counts Load/LoadTyped calls, labeled by result ("ok"/"error")
// and, on error, the offending xuma.ErrorKind.
var LoadTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "xuma",
	Subsystem: "registry",
	Name:      "load_total",
	Help:      "Matcher configuration loads, by result and error kind.",
}, loadLabels)

// LoadDepth is a gauge sampled once per successful load with the resulting
// matcher tree's depth.
var LoadDepth = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "xuma",
	Subsystem: "registry",
	Name:      "load_depth",
	Help:      "Depth of the most recently compiled matcher tree.",
})

// AnyResolverDecodeTotal counts anyresolver.Resolve calls, labeled by
// result.
var AnyResolverDecodeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "xuma",
	Subsystem: "anyresolver",
	Name:      "decode_total",
	Help:      "Any payload decodes, by result.",
}, []string{"result"})
