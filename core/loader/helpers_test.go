package loader_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"component-loader/core/component"
	"component-loader/core/dynlib/mocks"
	"component-loader/core/factory"
	"component-loader/core/loader"

	"github.com/stretchr/testify/require"
)

type testComponent struct {
	component.Base
	typeName string
	closed   int
}

func (c *testComponent) Close() error {
	c.closed++
	return nil
}

func newComponent(typeName string) component.Factory {
	return func(name string) (component.Component, error) {
		return &testComponent{Base: component.NewBase(name), typeName: typeName}, nil
	}
}

func singleLib(typeName string) mocks.Symbols {
	return mocks.Symbols{
		component.SymbolCreate: func(name string) (component.Component, error) {
			return newComponent(typeName)(name)
		},
		component.SymbolType: func() string { return typeName },
	}
}

func multiLib(typeNames ...string) mocks.Symbols {
	return mocks.Symbols{
		component.SymbolFactories: func() component.FactoryMap {
			table := make(component.FactoryMap)
			for _, name := range typeNames {
				table[name] = newComponent(name)
			}
			return table
		},
		component.SymbolTypeNames: func() []string { return typeNames },
	}
}

// touch creates an empty regular file, creating parent directories.
func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

func newTestLoader(opener *mocks.Opener, opts ...loader.Option) (*loader.Loader, *factory.Registry) {
	registry := factory.New(nil)
	base := []loader.Option{
		loader.WithOpener(opener),
		loader.WithFactories(registry),
		loader.WithPlatform("linux"),
		loader.WithTarget("gnulinux"),
	}
	return loader.New(append(base, opts...)...), registry
}

type recordingObserver struct {
	loader.NopObserver
	events []string
}

func (o *recordingObserver) LibraryLoaded(lib loader.Library) {
	o.events = append(o.events, "loaded:"+lib.ShortName)
}

func (o *recordingObserver) LibraryUnloaded(lib loader.Library) {
	o.events = append(o.events, "unloaded:"+lib.ShortName)
}

func (o *recordingObserver) LoadFailed(path string, err error) {
	o.events = append(o.events, "failed:"+filepath.Base(path))
}

func (o *recordingObserver) InstanceCreated(inst loader.Instance) {
	o.events = append(o.events, "created:"+inst.Name)
}

func (o *recordingObserver) InstanceDestroyed(inst loader.Instance) {
	o.events = append(o.events, "destroyed:"+inst.Name)
}

var errBoom = errors.New("boom")
