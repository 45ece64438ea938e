package observe

import (
	"errors"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dshills/alma/pkg/watch"
)

// Package-level Prometheus collectors. They are registered via
// RegisterMetrics and recorded by the listener returned from
// NewMetricsListener.
var (
	regOK atomic.Bool

	changesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "alma",
			Subsystem: "variable",
			Name:      "changes_total",
			Help:      "Number of accepted mutations per variable.",
		}, []string{"name"},
	)
	historyLength = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "alma",
			Subsystem: "variable",
			Name:      "history_length",
			Help:      "Current history length per variable, including the initial record.",
		}, []string{"name"},
	)
)

// RegisterMetrics registers the collectors with the provided registerer.
// It is safe to call multiple times; subsequent calls after success are
// no-ops, and collectors already registered elsewhere are kept.
func RegisterMetrics(r prometheus.Registerer) error {
	if regOK.Load() {
		return nil
	}
	cs := []prometheus.Collector{changesTotal, historyLength}
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	regOK.Store(true)
	return nil
}

// NewMetricsListener returns a listener that counts committed mutations
// and tracks history length per variable. It no-ops until RegisterMetrics
// has been called. The history length is derived from the record index, so
// the listener never has to read the variable back.
func NewMetricsListener() watch.Listener {
	return watch.ListenerFunc(func(v *watch.Var, rec watch.ChangeRecord) error {
		if !regOK.Load() {
			return nil
		}
		changesTotal.WithLabelValues(v.Name()).Inc()
		historyLength.WithLabelValues(v.Name()).Set(float64(rec.Index + 1))
		return nil
	})
}
