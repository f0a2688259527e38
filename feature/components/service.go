package components

import (
	"errors"
	"fmt"
	"sync"

	"component-loader/core/loader"

	"go.uber.org/zap"
)

// ErrInstanceNotFound is returned when no live instance has the requested name.
var ErrInstanceNotFound = errors.New("component instance not found")

// Service serializes access to a loader. The loader itself is not safe for
// concurrent use, while HTTP handlers, the watcher and the CLI all reach it.
type Service struct {
	mu     sync.Mutex
	loader *loader.Loader
	logger *zap.Logger
}

// NewService creates a new components service.
func NewService(l *loader.Loader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{loader: l, logger: logger}
}

// Do runs fn with exclusive access to the loader.
func (s *Service) Do(fn func(l *loader.Loader) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.loader)
}

// Types returns the registered component type names.
func (s *Service) Types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loader.ComponentTypes()
}

// Libraries returns the loaded libraries.
func (s *Service) Libraries() []loader.Library {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loader.Libraries()
}

// Instances returns the live instances.
func (s *Service) Instances() []loader.Instance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loader.Instances()
}

// Create instantiates a component and returns its instance record.
func (s *Service) Create(name, typeName string) (loader.Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.loader.Instantiate(name, typeName); err != nil {
		return loader.Instance{}, err
	}
	for _, inst := range s.loader.Instances() {
		if inst.Name == name {
			return inst, nil
		}
	}
	return loader.Instance{}, fmt.Errorf("%w: %s", ErrInstanceNotFound, name)
}

// Destroy destroys the live instance called name.
func (s *Service) Destroy(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.loader.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrInstanceNotFound, name)
	}
	return s.loader.Destroy(c)
}

// Import loads every library found in pathList and the default path.
func (s *Service) Import(pathList string) *loader.ImportResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loader.ImportAll(pathList)
}

// ImportPackage imports a package by name.
func (s *Service) ImportPackage(name, pathList string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loader.ImportPackage(name, pathList)
}

// Reload loads or reloads the library file at path.
func (s *Service) Reload(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loader.LoadLibrary(path)
}

// Unload unloads the library registered under shortName.
func (s *Service) Unload(shortName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loader.UnloadLibrary(shortName)
}

// Probe reports the protocol of the library at path without loading it.
func (s *Service) Probe(path string) (loader.Shape, error) {
	return loader.Probe(s.loader.Opener(), path)
}
