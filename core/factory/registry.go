package factory

import (
	"sort"
	"sync"

	"component-loader/core/component"

	"go.uber.org/zap"
)

// Registry maps component type names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]component.Factory
	logger    *zap.Logger
}

var (
	shared     *Registry
	sharedOnce sync.Once
)

// New creates an empty registry.
func New(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		factories: make(map[string]component.Factory),
		logger:    logger,
	}
}

// Shared returns the process-wide registry, creating it on first use.
// It logs to the global zap logger current at the time of each message.
func Shared() *Registry {
	sharedOnce.Do(func() {
		shared = &Registry{factories: make(map[string]component.Factory)}
	})
	return shared
}

func (r *Registry) log() *zap.Logger {
	if r.logger == nil {
		return zap.L().Named("factory")
	}
	return r.logger
}

// Register adds f under typeName, replacing any previous factory.
func (r *Registry) Register(typeName string, f component.Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.register(typeName, f)
}

// Merge registers every entry of factories in one step.
func (r *Registry) Merge(factories component.FactoryMap) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for typeName, f := range factories {
		r.register(typeName, f)
	}
}

func (r *Registry) register(typeName string, f component.Factory) {
	if _, exists := r.factories[typeName]; exists {
		r.log().Warn("Overriding component factory",
			zap.String("type", typeName))
	}
	r.factories[typeName] = f
}

// Lookup returns the factory of typeName.
func (r *Registry) Lookup(typeName string) (component.Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[typeName]
	return f, ok
}

// Has reports whether typeName is registered.
func (r *Registry) Has(typeName string) bool {
	_, ok := r.Lookup(typeName)
	return ok
}

// TypeNames returns the registered type names in sorted order.
func (r *Registry) TypeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}
