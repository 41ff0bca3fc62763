// Package metrics exposes Prometheus counters for the workflow's events and
// the credit engine's verdicts.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"los-backend/internal/domain/credit"
	"los-backend/internal/domain/event"
)

const namespace = "los"

type Metrics struct {
	registry *prometheus.Registry

	eventsPublished *prometheus.CounterVec
	publishFailures *prometheus.CounterVec
	creditVerdicts  *prometheus.CounterVec
}

// New registers the service counters plus Go and process collectors on a
// private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Domain events handed to the broker, by topic and type.",
		}, []string{"topic", "type"}),
		publishFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_publish_failures_total",
			Help:      "Domain events the broker did not accept, by topic and type.",
		}, []string{"topic", "type"}),
		creditVerdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credit_verdicts_total",
			Help:      "Credit assessments by verdict.",
		}, []string{"verdict"}),
	}
	reg.MustRegister(
		m.eventsPublished,
		m.publishFailures,
		m.creditVerdicts,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveVerdict(v credit.Verdict) {
	m.creditVerdicts.WithLabelValues(string(v)).Inc()
}

// WrapPublisher counts every publish attempt that goes through next.
func (m *Metrics) WrapPublisher(next event.Publisher) event.Publisher {
	return &countingPublisher{next: next, m: m}
}

type countingPublisher struct {
	next event.Publisher
	m    *Metrics
}

func (p *countingPublisher) Publish(ctx context.Context, topic string, e event.Event) error {
	if err := p.next.Publish(ctx, topic, e); err != nil {
		p.m.publishFailures.WithLabelValues(topic, string(e.Type)).Inc()
		return err
	}
	p.m.eventsPublished.WithLabelValues(topic, string(e.Type)).Inc()
	return nil
}
