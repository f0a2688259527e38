package loader

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"time"

	"component-loader/core/component"
	"component-loader/core/dynlib"
	"component-loader/core/factory"
	"component-loader/core/libname"
	"component-loader/core/searchpath"

	"go.uber.org/zap"
)

// Loader loads component libraries and owns the instances it creates.
type Loader struct {
	defaultPath string
	target      string
	goos        string
	codec       libname.Codec
	opener      dynlib.Opener
	factories   *factory.Registry
	libraries   *Libraries
	instances   *Instances
	observers   observers
	logger      *zap.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithDefaultPath sets the search path appended to every caller path list.
func WithDefaultPath(pathList string) Option {
	return func(l *Loader) {
		l.defaultPath = pathList
	}
}

// WithTarget sets the platform target subdirectory name.
func WithTarget(target string) Option {
	return func(l *Loader) {
		l.target = target
	}
}

// WithPlatform sets the platform whose path delimiters and library suffix are used.
func WithPlatform(goos string) Option {
	return func(l *Loader) {
		l.goos = goos
		l.codec = libname.ForOS(goos)
	}
}

// WithOpener sets the shared-library opener.
func WithOpener(opener dynlib.Opener) Option {
	return func(l *Loader) {
		l.opener = opener
	}
}

// WithFactories sets the factory registry. The default is factory.Shared().
func WithFactories(registry *factory.Registry) Option {
	return func(l *Loader) {
		l.factories = registry
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithObserver adds an observer.
func WithObserver(obs Observer) Option {
	return func(l *Loader) {
		l.observers = append(l.observers, obs)
	}
}

// New creates a loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		target:    runtime.GOOS,
		goos:      runtime.GOOS,
		codec:     libname.Native(),
		libraries: NewLibraries(),
		instances: NewInstances(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.opener == nil {
		l.opener = dynlib.NewPluginOpener()
	}
	if l.factories == nil {
		l.factories = factory.Shared()
	}
	return l
}

// DefaultPath returns the configured default search path.
func (l *Loader) DefaultPath() string {
	return l.defaultPath
}

// Target returns the platform target subdirectory name.
func (l *Loader) Target() string {
	return l.target
}

// Codec returns the library filename codec.
func (l *Loader) Codec() libname.Codec {
	return l.codec
}

// Opener returns the shared-library opener.
func (l *Loader) Opener() dynlib.Opener {
	return l.opener
}

// SearchPath returns the effective search path for pathList: the caller directories
// followed by the default ones.
func (l *Loader) SearchPath(pathList string) []string {
	return searchpath.SplitFor(l.goos, searchpath.Join(pathList, l.defaultPath))
}

// LoadLibrary loads the library at path, deriving its short name from the filename.
func (l *Loader) LoadLibrary(path string) error {
	return l.loadLibraryFile(path, l.codec.ShortName(baseName(path)), true)
}

// loadLibraryFile runs the load protocol for one file. When report is false, failures are
// only logged at debug level.
func (l *Loader) loadLibraryFile(path, shortName string, report bool) error {
	log := l.logger.With(zap.String("library", shortName), zap.String("path", path))

	if old := l.libraries.Find(shortName); old != nil {
		snapshot := *old
		if err := l.libraries.Unload(old, l.instances); err != nil {
			if errors.Is(err, ErrUnsafeUnload) {
				err = fmt.Errorf("%w: %s", ErrUnsafeReload, shortName)
				l.loadFailed(log, path, err, report)
				return err
			}
			log.Warn("Previous library did not close cleanly", zap.Error(err))
		}
		l.observers.libraryUnloaded(snapshot)
		log.Info("Unloaded previous library for reload", zap.String("previous_path", snapshot.Path))
	}

	h, err := l.opener.Open(path)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrLibraryOpen, err)
		l.loadFailed(log, path, err, report)
		return err
	}

	shape, err := Detect(h)
	if err != nil {
		if cerr := h.Close(); cerr != nil {
			log.Debug("Failed to close rejected library", zap.Error(cerr))
		}
		err = fmt.Errorf("%s: %w", path, err)
		l.loadFailed(log, path, err, report)
		return err
	}

	switch s := shape.(type) {
	case MultiComponentLibrary:
		l.factories.Merge(s.Factories)
		if len(s.DeclaredTypes) > 0 {
			log.Debug("Library declares component types", zap.Strings("declared", s.DeclaredTypes))
		}
	case SingleComponentLibrary:
		l.factories.Register(s.TypeName, s.Factory)
	}

	lib := l.libraries.Register(path, shortName, h, shape.Types())
	log.Info("Loaded component library",
		zap.String("protocol", shape.Protocol()),
		zap.Strings("types", lib.TypeNames))
	l.observers.libraryLoaded(*lib)
	return nil
}

func (l *Loader) loadFailed(log *zap.Logger, path string, err error, report bool) {
	if report {
		log.Error("Failed to load component library", zap.Error(err))
	} else {
		log.Debug("Skipped file", zap.Error(err))
	}
	l.observers.loadFailed(path, err)
}

// UnloadLibrary unloads the library tracked under shortName if no live instance uses it.
// Its factories stay registered.
func (l *Loader) UnloadLibrary(shortName string) error {
	lib := l.libraries.Find(shortName)
	if lib == nil {
		return fmt.Errorf("%w: %s", ErrLibraryNotFound, shortName)
	}
	snapshot := *lib
	if err := l.libraries.Unload(lib, l.instances); err != nil {
		if errors.Is(err, ErrUnsafeUnload) {
			return err
		}
		l.logger.Warn("Library did not close cleanly", zap.String("library", shortName), zap.Error(err))
	}
	l.observers.libraryUnloaded(snapshot)
	l.logger.Info("Unloaded component library", zap.String("library", shortName))
	return nil
}

// Instantiate creates a component of typeName called name.
func (l *Loader) Instantiate(name, typeName string) (component.Component, error) {
	f, ok := l.factories.Lookup(typeName)
	if !ok || f == nil {
		l.logger.Warn("Unknown component type", zap.String("type", typeName), zap.String("instance", name))
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typeName)
	}
	if _, exists := l.instances.Get(name); exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateInstance, name)
	}

	var c component.Component
	err := guard("factory of "+typeName, func() error {
		var ferr error
		if c, ferr = f(name); ferr != nil {
			return ferr
		}
		if isNil(c) {
			return errors.New("factory returned no component")
		}
		// Destroy finds instances by the name the component reports.
		if got := c.Name(); got != name {
			return fmt.Errorf("factory returned a component named %q", got)
		}
		return nil
	})
	if err != nil {
		l.logger.Error("Component construction failed",
			zap.String("type", typeName),
			zap.String("instance", name),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %s of type %s: %w", ErrConstructor, name, typeName, err)
	}

	inst := Instance{Name: name, TypeName: typeName, CreatedAt: time.Now(), Component: c}
	l.instances.add(inst)
	l.logger.Info("Created component", zap.String("instance", name), zap.String("type", typeName))
	l.observers.instanceCreated(inst)
	return c, nil
}

// Destroy destroys a component created by this loader. Components this loader did not
// create are refused with ErrForeignInstance.
func (l *Loader) Destroy(c component.Component) error {
	if isNil(c) {
		return fmt.Errorf("%w: nil component", ErrForeignInstance)
	}

	var name string
	if err := guard("Name", func() error {
		name = c.Name()
		return nil
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrForeignInstance, err)
	}

	inst, ok := l.instances.Get(name)
	if !ok || !sameComponent(inst.Component, c) {
		l.logger.Warn("Refusing to destroy component not created by this loader", zap.String("instance", name))
		return fmt.Errorf("%w: %s", ErrForeignInstance, name)
	}

	if closer, ok := c.(interface{ Close() error }); ok {
		if err := guard("Close of "+name, closer.Close); err != nil {
			l.logger.Warn("Component close failed", zap.String("instance", name), zap.Error(err))
		}
	}
	l.instances.remove(name)
	l.logger.Info("Destroyed component", zap.String("instance", name), zap.String("type", inst.TypeName))
	l.observers.instanceDestroyed(inst)
	return nil
}

// Lookup returns the live component called name.
func (l *Loader) Lookup(name string) (component.Component, bool) {
	inst, ok := l.instances.Get(name)
	if !ok {
		return nil, false
	}
	return inst.Component, true
}

// ComponentTypes returns every registered component type name.
func (l *Loader) ComponentTypes() []string {
	return l.factories.TypeNames()
}

// Instances returns the live instances sorted by name.
func (l *Loader) Instances() []Instance {
	return l.instances.List()
}

// Libraries returns the loaded libraries in load order.
func (l *Loader) Libraries() []Library {
	return l.libraries.List()
}

func isNil(c component.Component) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func sameComponent(a, b component.Component) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if !ta.Comparable() {
		return true
	}
	return a == b
}
