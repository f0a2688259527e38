package loader

import (
	"errors"
	"fmt"
	"sort"

	"component-loader/core/component"
	"component-loader/core/dynlib"

	"github.com/hashicorp/go-multierror"
)

// Shape is the plugin protocol a library implements:
// MultiComponentLibrary or SingleComponentLibrary.
type Shape interface {
	// Protocol names the detected protocol.
	Protocol() string
	// Types returns the type names the library contributes, sorted.
	Types() []string
}

// MultiComponentLibrary contributes a table of component types.
type MultiComponentLibrary struct {
	Factories component.FactoryMap
	// DeclaredTypes is the optional diagnostic list exported next to the table.
	DeclaredTypes []string
}

// Protocol implements Shape.
func (MultiComponentLibrary) Protocol() string { return "multi" }

// Types implements Shape.
func (m MultiComponentLibrary) Types() []string {
	names := make([]string, 0, len(m.Factories))
	for name := range m.Factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SingleComponentLibrary contributes exactly one component type.
type SingleComponentLibrary struct {
	TypeName string
	Factory  component.Factory
}

// Protocol implements Shape.
func (SingleComponentLibrary) Protocol() string { return "single" }

// Types implements Shape.
func (s SingleComponentLibrary) Types() []string { return []string{s.TypeName} }

// probe detects one protocol. A missing entry point wraps dynlib.ErrSymbolNotFound,
// any other error means the entry point exists but is unusable.
type probe func(h dynlib.Handle) (Shape, error)

var probes = []probe{probeMulti, probeSingle}

// Detect determines the protocol of an opened library. Probes run in order and the
// first one whose entry point exists decides; later probes never run.
func Detect(h dynlib.Handle) (Shape, error) {
	var diag *multierror.Error
	for _, p := range probes {
		shape, err := p(h)
		if err == nil {
			return shape, nil
		}
		diag = multierror.Append(diag, err)
		if !errors.Is(err, dynlib.ErrSymbolNotFound) {
			break
		}
	}
	return nil, fmt.Errorf("%w: %w", ErrMalformedLibrary, diag.ErrorOrNil())
}

// Probe opens path, detects its protocol and closes it again without registering anything.
func Probe(opener dynlib.Opener, path string) (Shape, error) {
	h, err := opener.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLibraryOpen, err)
	}
	defer h.Close()
	return Detect(h)
}

func probeMulti(h dynlib.Handle) (Shape, error) {
	sym, err := h.Lookup(component.SymbolFactories)
	if err != nil {
		return nil, err
	}
	get, err := factoryTable(sym)
	if err != nil {
		return nil, err
	}

	var table component.FactoryMap
	if err := guard(component.SymbolFactories, func() error {
		table = get()
		return nil
	}); err != nil {
		return nil, err
	}

	shape := MultiComponentLibrary{Factories: make(component.FactoryMap, len(table))}
	for name, f := range table {
		shape.Factories[name] = f
	}

	if sym, err := h.Lookup(component.SymbolTypeNames); err == nil {
		if names, ok := typeNameList(sym); ok {
			_ = guard(component.SymbolTypeNames, func() error {
				shape.DeclaredTypes = names()
				return nil
			})
		}
	}
	return shape, nil
}

func probeSingle(h dynlib.Handle) (Shape, error) {
	createSym, createErr := h.Lookup(component.SymbolCreate)
	typeSym, typeErr := h.Lookup(component.SymbolType)
	if createErr != nil || typeErr != nil {
		var diag *multierror.Error
		diag = multierror.Append(diag, createErr, typeErr)
		if createErr != nil && typeErr != nil {
			return nil, diag.ErrorOrNil()
		}
		// Exactly one half of the pair is present.
		return nil, fmt.Errorf("incomplete single-component entry points: %v", diag.ErrorOrNil())
	}

	create, err := singleFactory(createSym)
	if err != nil {
		return nil, err
	}
	getType, err := typeGetter(typeSym)
	if err != nil {
		return nil, err
	}

	var typeName string
	if err := guard(component.SymbolType, func() error {
		typeName = getType()
		return nil
	}); err != nil {
		return nil, err
	}
	if typeName == "" {
		return nil, fmt.Errorf("%s returned an empty type name", component.SymbolType)
	}
	return SingleComponentLibrary{TypeName: typeName, Factory: create}, nil
}

func factoryTable(sym any) (func() component.FactoryMap, error) {
	switch v := sym.(type) {
	case func() component.FactoryMap:
		return v, nil
	case func() map[string]component.Factory:
		return func() component.FactoryMap { return v() }, nil
	case func() map[string]func(string) (component.Component, error):
		return func() component.FactoryMap {
			out := make(component.FactoryMap)
			for name, f := range v() {
				out[name] = f
			}
			return out
		}, nil
	case func() map[string]func(string) component.Component:
		return func() component.FactoryMap {
			out := make(component.FactoryMap)
			for name, f := range v() {
				out[name] = component.Constructor(f)
			}
			return out
		}, nil
	case *component.FactoryMap:
		return func() component.FactoryMap { return *v }, nil
	case *map[string]component.Factory:
		return func() component.FactoryMap { return *v }, nil
	default:
		return nil, fmt.Errorf("symbol %s has unsupported type %T", component.SymbolFactories, sym)
	}
}

func typeNameList(sym any) (func() []string, bool) {
	switch v := sym.(type) {
	case func() []string:
		return v, true
	case *[]string:
		return func() []string { return *v }, true
	default:
		return nil, false
	}
}

func singleFactory(sym any) (component.Factory, error) {
	switch v := sym.(type) {
	case func(string) (component.Component, error):
		return v, nil
	case func(string) component.Component:
		return component.Constructor(v), nil
	case component.Factory:
		return v, nil
	case *component.Factory:
		return *v, nil
	default:
		return nil, fmt.Errorf("symbol %s has unsupported type %T", component.SymbolCreate, sym)
	}
}

func typeGetter(sym any) (func() string, error) {
	switch v := sym.(type) {
	case func() string:
		return v, nil
	case *string:
		return func() string { return *v }, nil
	default:
		return nil, fmt.Errorf("symbol %s has unsupported type %T", component.SymbolType, sym)
	}
}

// guard runs plugin code, turning a panic into an error.
func guard(what string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", what, r)
		}
	}()
	return fn()
}
