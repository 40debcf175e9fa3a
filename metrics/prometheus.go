// Package metrics exports localesync activity as Prometheus metrics.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/loopcontext/localesync"
)

const namespace = "localesync"

// PrometheusObserver implements localesync.Observer.
type PrometheusObserver struct {
	flushedKeys      *prometheus.CounterVec
	flushes          *prometheus.CounterVec
	flushFailures    *prometheus.CounterVec
	reloads          *prometheus.CounterVec
	watchUnavailable *prometheus.CounterVec
}

var _ localesync.Observer = (*PrometheusObserver)(nil)

// NewPrometheusObserver creates the collectors and registers them with reg.
func NewPrometheusObserver(reg prometheus.Registerer) (*PrometheusObserver, error) {
	o := &PrometheusObserver{
		flushedKeys: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flushed_keys_total",
			Help:      "Missing keys added to resource files.",
		}, []string{"lang", "namespace"}),
		flushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flushes_total",
			Help:      "Successful namespace merges.",
		}, []string{"lang", "namespace"}),
		flushFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flush_failures_total",
			Help:      "Failed namespace merges by failure kind.",
		}, []string{"lang", "namespace", "kind"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reloads_total",
			Help:      "Resource reloads by result.",
		}, []string{"lang", "result"}),
		watchUnavailable: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "watch_unavailable_total",
			Help:      "Language changes to a language without a directory.",
		}, []string{"lang"}),
	}
	for _, c := range []prometheus.Collector{o.flushedKeys, o.flushes, o.flushFailures, o.reloads, o.watchUnavailable} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *PrometheusObserver) OnFlush(lang string, ns string, added int) {
	o.flushes.WithLabelValues(lang, ns).Inc()
	o.flushedKeys.WithLabelValues(lang, ns).Add(float64(added))
}

func (o *PrometheusObserver) OnFlushFailure(lang string, ns string, err error) {
	o.flushFailures.WithLabelValues(lang, ns, failureKind(err)).Inc()
}

func (o *PrometheusObserver) OnReload(lang string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	o.reloads.WithLabelValues(lang, result).Inc()
}

func (o *PrometheusObserver) OnWatchUnavailable(lang string) {
	o.watchUnavailable.WithLabelValues(lang).Inc()
}

func failureKind(err error) string {
	switch {
	case localesync.IsRetryable(err):
		return "busy"
	case errors.Is(err, localesync.ErrMalformedResource):
		return "malformed"
	default:
		return "io"
	}
}
