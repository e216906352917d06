package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/taskmaster/tasklist/internal/application/store"
	"github.com/taskmaster/tasklist/internal/domain/entities"
)

// Metrics holds the application collectors and the registry they are registered with.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal     *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	StoreMutations    *prometheus.CounterVec
	Todos             prometheus.Gauge
	PersistenceWrites *prometheus.CounterVec
	PersistenceErrors *prometheus.CounterVec
}

// New creates and registers all collectors on a fresh registry
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		StoreMutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tasklist_store_mutations_total",
				Help: "Store mutations that changed state, by operation",
			},
			[]string{"op"},
		),
		Todos: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tasklist_todos",
			Help: "Number of todos in the store",
		}),
		PersistenceWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tasklist_persistence_writes_total",
				Help: "Successful state writes, by key",
			},
			[]string{"key"},
		),
		PersistenceErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tasklist_persistence_errors_total",
				Help: "Failed persistence operations, by operation",
			},
			[]string{"op"},
		),
	}

	m.Registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.StoreMutations,
		m.Todos,
		m.PersistenceWrites,
		m.PersistenceErrors,
	)

	return m
}

// ObserveStores counts mutations of both stores and tracks the collection size
func (m *Metrics) ObserveStores(todos *store.TodoStore, theme *store.ThemeStore) {
	if m == nil {
		return
	}
	m.Todos.Set(float64(todos.Len()))
	todos.Subscribe(func(op string, state entities.TodoState) {
		m.StoreMutations.WithLabelValues(op).Inc()
		m.Todos.Set(float64(len(state.Todos)))
	})
	theme.Subscribe(func(op string, _ entities.ThemeState) {
		m.StoreMutations.WithLabelValues(op).Inc()
	})
}

// SetTodos records the collection size, used after rehydration
func (m *Metrics) SetTodos(n int) {
	if m == nil {
		return
	}
	m.Todos.Set(float64(n))
}

// PersistenceWrite counts a successful write of key
func (m *Metrics) PersistenceWrite(key string) {
	if m == nil {
		return
	}
	m.PersistenceWrites.WithLabelValues(key).Inc()
}

// PersistenceError counts a failed persistence operation
func (m *Metrics) PersistenceError(op string) {
	if m == nil {
		return
	}
	m.PersistenceErrors.WithLabelValues(op).Inc()
}
