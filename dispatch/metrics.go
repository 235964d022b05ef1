package dispatch

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// Lookup outcomes recorded by Metrics.
const (
	resultMatched   = "matched"
	resultUnmatched = "unmatched"
	resultUnhandled = "unhandled"
	resultPanic     = "panic"
)

// methodOther labels every request method outside the standard set.
const methodOther = "other"

// methodLabel maps method onto a closed set so clients cannot create
// series with arbitrary method tokens.
func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodConnect,
		http.MethodOptions, http.MethodTrace:
		return method
	default:
		return methodOther
	}
}

// Metrics counts dispatch outcomes.
type Metrics struct {
	requests *prometheus.CounterVec
	actions  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "actionroute",
				Subsystem: "dispatch",
				Name:      "requests_total",
				Help:      "Total number of dispatched requests by method and outcome.",
			},
			[]string{"method", "result"},
		),
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "actionroute",
				Subsystem: "dispatch",
				Name:      "actions_total",
				Help:      "Total number of requests resolved to each action.",
			},
			[]string{"action"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.requests, m.actions)
	}

	return m
}

func (m *Metrics) observe(method, result string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(methodLabel(method), result).Inc()
}

func (m *Metrics) observeAction(action string) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(action).Inc()
}
