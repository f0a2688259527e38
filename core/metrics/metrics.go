package metrics

import (
	"errors"

	"component-loader/core/loader"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the loader collector.
type Config struct {
	// Namespace is the metrics namespace (default: "component_loader").
	Namespace string
	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the loader collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// Observer records loader events as Prometheus metrics.
//
// Metrics collected:
//   - component_loader_libraries_loaded_total: Counter of successful library loads
//   - component_loader_libraries_unloaded_total: Counter of library unloads and replacements
//   - component_loader_load_failures_total: Counter of failed loads by reason
//   - component_loader_instances_created_total: Counter of instances by component type
//   - component_loader_instances_destroyed_total: Counter of destroyed instances by component type
//   - component_loader_libraries: Gauge of registered libraries
//   - component_loader_instances: Gauge of live instances
type Observer struct {
	loader.NopObserver

	loaded    prometheus.Counter
	unloaded  prometheus.Counter
	failures  *prometheus.CounterVec
	created   *prometheus.CounterVec
	destroyed *prometheus.CounterVec
	libraries prometheus.Gauge
	instances prometheus.Gauge
}

// New registers the loader collectors and returns an Observer feeding them.
func New(opts ...Option) *Observer {
	cfg := Config{
		Namespace: "component_loader",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.Registry)

	return &Observer{
		loaded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "libraries_loaded_total",
			Help:      "Total number of component libraries loaded",
		}),
		unloaded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "libraries_unloaded_total",
			Help:      "Total number of component libraries unloaded or replaced",
		}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "load_failures_total",
			Help:      "Total number of failed library loads by reason",
		}, []string{"reason"}),
		created: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "instances_created_total",
			Help:      "Total number of component instances created by type",
		}, []string{"type"}),
		destroyed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "instances_destroyed_total",
			Help:      "Total number of component instances destroyed by type",
		}, []string{"type"}),
		libraries: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "libraries",
			Help:      "Number of registered component libraries",
		}),
		instances: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "instances",
			Help:      "Number of live component instances",
		}),
	}
}

// LibraryLoaded implements loader.Observer.
func (o *Observer) LibraryLoaded(loader.Library) {
	o.loaded.Inc()
	o.libraries.Inc()
}

// LibraryUnloaded implements loader.Observer.
func (o *Observer) LibraryUnloaded(loader.Library) {
	o.unloaded.Inc()
	o.libraries.Dec()
}

// LoadFailed implements loader.Observer.
func (o *Observer) LoadFailed(_ string, err error) {
	o.failures.WithLabelValues(Reason(err)).Inc()
}

// InstanceCreated implements loader.Observer.
func (o *Observer) InstanceCreated(inst loader.Instance) {
	o.created.WithLabelValues(inst.TypeName).Inc()
	o.instances.Inc()
}

// InstanceDestroyed implements loader.Observer.
func (o *Observer) InstanceDestroyed(inst loader.Instance) {
	o.destroyed.WithLabelValues(inst.TypeName).Inc()
	o.instances.Dec()
}

// Reason maps a load error to a low-cardinality label value.
func Reason(err error) string {
	switch {
	case errors.Is(err, loader.ErrLibraryOpen):
		return "open"
	case errors.Is(err, loader.ErrMalformedLibrary):
		return "malformed"
	case errors.Is(err, loader.ErrUnsafeReload):
		return "unsafe_reload"
	default:
		return "other"
	}
}
