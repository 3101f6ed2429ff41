// SPDX-License-Identifier: MPL-2.0

package devserver

import (
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "iconsprite"

// Metrics holds the dev server's Prometheus collectors on a private
// registry. All methods are no-ops on a nil *Metrics.
type Metrics struct {
	registry *promclient.Registry

	pageTransforms promclient.Counter
	transformTime  promclient.Histogram
	spriteRequests promclient.Counter
	reloadsSent    promclient.Counter
	reloadsDropped promclient.Counter
	sseClients     promclient.Gauge
}

// NewMetrics creates the collectors and registers them, together with the
// Go runtime and process collectors, on a new registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: promclient.NewRegistry(),
		pageTransforms: promclient.NewCounter(promclient.CounterOpts{
			Namespace: namespace,
			Name:      "html_transforms_total",
			Help:      "HTML pages served with the sprite injected.",
		}),
		transformTime: promclient.NewHistogram(promclient.HistogramOpts{
			Namespace: namespace,
			Name:      "html_transform_duration_seconds",
			Help:      "Time spent rebuilding and injecting the sprite per page.",
			Buckets:   promclient.DefBuckets,
		}),
		spriteRequests: promclient.NewCounter(promclient.CounterOpts{
			Namespace: namespace,
			Name:      "sprite_requests_total",
			Help:      "Requests for the standalone sprite document.",
		}),
		reloadsSent: promclient.NewCounter(promclient.CounterOpts{
			Namespace: namespace,
			Name:      "reload_messages_total",
			Help:      "Full-reload messages broadcast to clients.",
		}),
		reloadsDropped: promclient.NewCounter(promclient.CounterOpts{
			Namespace: namespace,
			Name:      "reload_messages_dropped_total",
			Help:      "Reload messages dropped for slow clients.",
		}),
		sseClients: promclient.NewGauge(promclient.GaugeOpts{
			Namespace: namespace,
			Name:      "sse_clients",
			Help:      "Connected live-reload clients.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.pageTransforms,
		m.transformTime,
		m.spriteRequests,
		m.reloadsSent,
		m.reloadsDropped,
		m.sseClients,
	)
	return m
}

// Handler returns the HTTP handler exposing the registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

func (m *Metrics) pageTransformed(d time.Duration) {
	if m == nil {
		return
	}
	m.pageTransforms.Inc()
	m.transformTime.Observe(d.Seconds())
}

func (m *Metrics) spriteRequested() {
	if m != nil {
		m.spriteRequests.Inc()
	}
}

func (m *Metrics) reloadSent() {
	if m != nil {
		m.reloadsSent.Inc()
	}
}

func (m *Metrics) reloadDropped() {
	if m != nil {
		m.reloadsDropped.Inc()
	}
}

func (m *Metrics) clientConnected() {
	if m != nil {
		m.sseClients.Inc()
	}
}

func (m *Metrics) clientDisconnected() {
	if m != nil {
		m.sseClients.Dec()
	}
}
