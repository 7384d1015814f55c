// Package metrics exposes Prometheus counters for store traffic and form
// submissions.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"formulakb/internal/kb"
	"formulakb/models"
)

// Submission outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// Metrics owns a private registry so tests can build independent instances.
type Metrics struct {
	registry *prometheus.Registry

	storeOps         *prometheus.CounterVec
	storeDuration    *prometheus.HistogramVec
	submissions      *prometheus.CounterVec
	ingredientsAdded prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formulakb",
			Name:      "store_operations_total",
			Help:      "Store calls by operation, table and result.",
		}, []string{"op", "table", "result"}),
		storeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "formulakb",
			Name:      "store_operation_duration_seconds",
			Help:      "Latency of store calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formulakb",
			Name:      "submissions_total",
			Help:      "Form submissions by kind and outcome.",
		}, []string{"kind", "outcome"}),
		ingredientsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "formulakb",
			Name:      "ingredients_added_total",
			Help:      "Ingredients appended by any workflow.",
		}),
	}
	m.registry.MustRegister(
		m.storeOps,
		m.storeDuration,
		m.submissions,
		m.ingredientsAdded,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveSubmission counts one form submission.
func (m *Metrics) ObserveSubmission(kind, outcome string) {
	m.submissions.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) observe(op, table string, started time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.storeOps.WithLabelValues(op, table, result).Inc()
	m.storeDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

// InstrumentStore wraps store so every call is counted and timed.
func (m *Metrics) InstrumentStore(store kb.Store) kb.Store {
	return &instrumentedStore{next: store, metrics: m}
}

type instrumentedStore struct {
	next    kb.Store
	metrics *Metrics
}

func (s *instrumentedStore) Load(ctx context.Context) (kb.Tables, error) {
	started := time.Now()
	tables, err := s.next.Load(ctx)
	s.metrics.observe("load", "all", started, err)
	return tables, err
}

func (s *instrumentedStore) AppendBrand(ctx context.Context, brand models.Brand) error {
	started := time.Now()
	err := s.next.AppendBrand(ctx, brand)
	s.metrics.observe("append", models.TableBrands, started, err)
	return err
}

func (s *instrumentedStore) AppendFormulation(ctx context.Context, formulation models.Formulation) error {
	started := time.Now()
	err := s.next.AppendFormulation(ctx, formulation)
	s.metrics.observe("append", models.TableFormulations, started, err)
	return err
}

func (s *instrumentedStore) AppendIngredient(ctx context.Context, ingredient models.Ingredient) error {
	started := time.Now()
	err := s.next.AppendIngredient(ctx, ingredient)
	s.metrics.observe("append", models.TableIngredients, started, err)
	if err == nil {
		s.metrics.ingredientsAdded.Inc()
	}
	return err
}

func (s *instrumentedStore) AppendFormulationIngredient(ctx context.Context, link models.FormulationIngredient) error {
	started := time.Now()
	err := s.next.AppendFormulationIngredient(ctx, link)
	s.metrics.observe("append", models.TableFormulationIngredients, started, err)
	return err
}

// Diagnose forwards to the wrapped store when it supports diagnostics.
func (s *instrumentedStore) Diagnose(ctx context.Context) (kb.Diagnostics, error) {
	if d, ok := s.next.(kb.Diagnoser); ok {
		return d.Diagnose(ctx)
	}
	return kb.Diagnostics{Backend: "unknown"}, nil
}
