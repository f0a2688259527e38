package loader_test

import (
	"path/filepath"
	"testing"

	"component-loader/core/component"
	"component-loader/core/dynlib/mocks"
	"component-loader/core/loader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLibrary_Protocols(t *testing.T) {
	t.Run("SingleComponent", func(t *testing.T) {
		opener := mocks.NewOpener()
		path := touch(t, filepath.Join(t.TempDir(), "libwidget.so"))
		opener.Add(path, singleLib("Widget"))
		l, registry := newTestLoader(opener)

		require.NoError(t, l.LoadLibrary(path))

		assert.True(t, registry.Has("Widget"))
		libs := l.Libraries()
		require.Len(t, libs, 1)
		assert.Equal(t, "widget", libs[0].ShortName)
		assert.Equal(t, []string{"Widget"}, libs[0].TypeNames)
	})

	t.Run("MultiComponent", func(t *testing.T) {
		opener := mocks.NewOpener()
		path := touch(t, filepath.Join(t.TempDir(), "libfamily.so"))
		opener.Add(path, multiLib("SensorY", "SensorX"))
		l, _ := newTestLoader(opener)

		require.NoError(t, l.LoadLibrary(path))

		assert.Equal(t, []string{"SensorX", "SensorY"}, l.ComponentTypes())
		libs := l.Libraries()
		require.Len(t, libs, 1)
		assert.Equal(t, []string{"SensorX", "SensorY"}, libs[0].TypeNames)
	})

	t.Run("MultiNeverProbesSingle", func(t *testing.T) {
		opener := mocks.NewOpener()
		path := touch(t, filepath.Join(t.TempDir(), "libboth.so"))
		symbols := multiLib("SensorX")
		for k, v := range singleLib("Widget") {
			symbols[k] = v
		}
		opener.Add(path, symbols)
		l, registry := newTestLoader(opener)

		require.NoError(t, l.LoadLibrary(path))

		assert.False(t, registry.Has("Widget"))
		assert.NotContains(t, opener.Lookups, path+":"+component.SymbolCreate)
		assert.NotContains(t, opener.Lookups, path+":"+component.SymbolType)
	})

	t.Run("NeitherIsMalformed", func(t *testing.T) {
		opener := mocks.NewOpener()
		path := touch(t, filepath.Join(t.TempDir(), "libempty.so"))
		opener.Add(path, mocks.Symbols{"Unrelated": 1})
		l, _ := newTestLoader(opener)

		err := l.LoadLibrary(path)
		require.ErrorIs(t, err, loader.ErrMalformedLibrary)
		assert.Contains(t, err.Error(), component.SymbolFactories)
		assert.Contains(t, err.Error(), component.SymbolCreate)
		assert.Empty(t, l.Libraries())
		assert.Equal(t, 0, opener.OpenHandles(path))
	})

	t.Run("HalfSingleIsMalformed", func(t *testing.T) {
		opener := mocks.NewOpener()
		path := touch(t, filepath.Join(t.TempDir(), "libhalf.so"))
		opener.Add(path, mocks.Symbols{
			component.SymbolCreate: singleLib("Widget")[component.SymbolCreate],
		})
		l, registry := newTestLoader(opener)

		require.ErrorIs(t, l.LoadLibrary(path), loader.ErrMalformedLibrary)
		assert.False(t, registry.Has("Widget"))
		assert.Equal(t, 0, opener.OpenHandles(path))
	})

	t.Run("UnusableTableIsMalformed", func(t *testing.T) {
		opener := mocks.NewOpener()
		path := touch(t, filepath.Join(t.TempDir(), "libodd.so"))
		symbols := singleLib("Widget")
		symbols[component.SymbolFactories] = "not a table"
		opener.Add(path, symbols)
		l, registry := newTestLoader(opener)

		require.ErrorIs(t, l.LoadLibrary(path), loader.ErrMalformedLibrary)
		assert.False(t, registry.Has("Widget"))
		assert.NotContains(t, opener.Lookups, path+":"+component.SymbolCreate)
	})

	t.Run("PanickingTypeGetter", func(t *testing.T) {
		opener := mocks.NewOpener()
		path := touch(t, filepath.Join(t.TempDir(), "libpanic.so"))
		opener.Add(path, mocks.Symbols{
			component.SymbolCreate: singleLib("Widget")[component.SymbolCreate],
			component.SymbolType:   func() string { panic("getter") },
		})
		l, _ := newTestLoader(opener)

		require.ErrorIs(t, l.LoadLibrary(path), loader.ErrMalformedLibrary)
		assert.Equal(t, 0, opener.OpenHandles(path))
	})

	t.Run("OpenFailure", func(t *testing.T) {
		opener := mocks.NewOpener()
		path := touch(t, filepath.Join(t.TempDir(), "libbad.so"))
		opener.Fail(path, errBoom)
		l, _ := newTestLoader(opener)

		err := l.LoadLibrary(path)
		require.ErrorIs(t, err, loader.ErrLibraryOpen)
		assert.ErrorIs(t, err, errBoom)
		assert.Empty(t, l.Libraries())
	})
}

func TestLoadLibrary_Reload(t *testing.T) {
	t.Run("IdempotentWithoutInstances", func(t *testing.T) {
		opener := mocks.NewOpener()
		path := touch(t, filepath.Join(t.TempDir(), "libwidget.so"))
		opener.Add(path, singleLib("Widget"))
		l, _ := newTestLoader(opener)

		require.NoError(t, l.LoadLibrary(path))
		require.NoError(t, l.LoadLibrary(path))

		require.Len(t, l.Libraries(), 1)
		assert.Equal(t, 2, opener.Opened[path])
		assert.Equal(t, 1, opener.OpenHandles(path))
	})

	t.Run("RefusedWithLiveInstance", func(t *testing.T) {
		opener := mocks.NewOpener()
		path := touch(t, filepath.Join(t.TempDir(), "libwidget.so"))
		opener.Add(path, singleLib("Widget"))
		l, registry := newTestLoader(opener)

		require.NoError(t, l.LoadLibrary(path))
		before := l.Libraries()
		w, err := l.Instantiate("w1", "Widget")
		require.NoError(t, err)

		err = l.LoadLibrary(path)
		require.ErrorIs(t, err, loader.ErrUnsafeReload)

		assert.Equal(t, before, l.Libraries())
		assert.True(t, registry.Has("Widget"))
		got, ok := l.Lookup("w1")
		require.True(t, ok)
		assert.Same(t, w, got)
		assert.Equal(t, 1, opener.Opened[path])
		assert.Equal(t, 0, opener.Closed[path])
	})

	t.Run("AllowedAfterDestroy", func(t *testing.T) {
		opener := mocks.NewOpener()
		path := touch(t, filepath.Join(t.TempDir(), "libwidget.so"))
		opener.Add(path, singleLib("Widget"))
		l, _ := newTestLoader(opener)

		require.NoError(t, l.LoadLibrary(path))
		w, err := l.Instantiate("w1", "Widget")
		require.NoError(t, err)
		require.NoError(t, l.Destroy(w))

		require.NoError(t, l.LoadLibrary(path))
		assert.Len(t, l.Libraries(), 1)
	})

	t.Run("OtherTypesDoNotBlock", func(t *testing.T) {
		opener := mocks.NewOpener()
		dir := t.TempDir()
		widget := touch(t, filepath.Join(dir, "libwidget.so"))
		family := touch(t, filepath.Join(dir, "libfamily.so"))
		opener.Add(widget, singleLib("Widget"))
		opener.Add(family, multiLib("SensorX"))
		l, _ := newTestLoader(opener)

		require.NoError(t, l.LoadLibrary(widget))
		require.NoError(t, l.LoadLibrary(family))
		_, err := l.Instantiate("s1", "SensorX")
		require.NoError(t, err)

		assert.NoError(t, l.LoadLibrary(widget))
		assert.ErrorIs(t, l.LoadLibrary(family), loader.ErrUnsafeReload)
	})
}

func TestInstantiateDestroy(t *testing.T) {
	setup := func(t *testing.T) (*loader.Loader, *mocks.Opener) {
		opener := mocks.NewOpener()
		path := touch(t, filepath.Join(t.TempDir(), "libwidget.so"))
		opener.Add(path, singleLib("Widget"))
		l, _ := newTestLoader(opener)
		require.NoError(t, l.LoadLibrary(path))
		return l, opener
	}

	t.Run("Lifecycle", func(t *testing.T) {
		l, _ := setup(t)

		c, err := l.Instantiate("w1", "Widget")
		require.NoError(t, err)
		assert.Equal(t, "w1", c.Name())

		instances := l.Instances()
		require.Len(t, instances, 1)
		assert.Equal(t, "w1", instances[0].Name)
		assert.Equal(t, "Widget", instances[0].TypeName)

		require.NoError(t, l.Destroy(c))
		assert.Empty(t, l.Instances())
		assert.Equal(t, 1, c.(*testComponent).closed)

		assert.ErrorIs(t, l.Destroy(c), loader.ErrForeignInstance)
		assert.Equal(t, 1, c.(*testComponent).closed)
	})

	t.Run("UnknownType", func(t *testing.T) {
		l, _ := setup(t)

		c, err := l.Instantiate("s1", "SensorZ")
		assert.ErrorIs(t, err, loader.ErrUnknownType)
		assert.Nil(t, c)
		assert.Empty(t, l.Instances())
	})

	t.Run("DuplicateNameRejected", func(t *testing.T) {
		l, _ := setup(t)

		first, err := l.Instantiate("w1", "Widget")
		require.NoError(t, err)
		_, err = l.Instantiate("w1", "Widget")
		assert.ErrorIs(t, err, loader.ErrDuplicateInstance)

		got, ok := l.Lookup("w1")
		require.True(t, ok)
		assert.Same(t, first, got)
	})

	t.Run("ForeignComponentRefused", func(t *testing.T) {
		l, _ := setup(t)

		_, err := l.Instantiate("w1", "Widget")
		require.NoError(t, err)

		impostor := &testComponent{Base: component.NewBase("w1")}
		assert.ErrorIs(t, l.Destroy(impostor), loader.ErrForeignInstance)
		assert.ErrorIs(t, l.Destroy(&testComponent{Base: component.NewBase("other")}), loader.ErrForeignInstance)
		assert.ErrorIs(t, l.Destroy(nil), loader.ErrForeignInstance)
		assert.Len(t, l.Instances(), 1)
		assert.Equal(t, 0, impostor.closed)
	})

	t.Run("DestroyedByAnotherLoaderRefused", func(t *testing.T) {
		l, opener := setup(t)
		other, _ := newTestLoader(opener)

		c, err := l.Instantiate("w1", "Widget")
		require.NoError(t, err)

		assert.ErrorIs(t, other.Destroy(c), loader.ErrForeignInstance)
		assert.Len(t, l.Instances(), 1)
	})
}

func TestInstantiate_ConstructorFailures(t *testing.T) {
	tests := []struct {
		name    string
		factory component.Factory
	}{
		{"Panics", func(string) (component.Component, error) { panic("constructor") }},
		{"ReturnsError", func(string) (component.Component, error) { return nil, errBoom }},
		{"ReturnsNil", func(string) (component.Component, error) { return nil, nil }},
		{"ReturnsTypedNil", func(string) (component.Component, error) {
			var c *testComponent
			return c, nil
		}},
		{"ReturnsOtherName", func(string) (component.Component, error) {
			return &testComponent{Base: component.NewBase("fixed")}, nil
		}},
		{"NamePanics", func(string) (component.Component, error) { return panickyName{}, nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, registry := newTestLoader(mocks.NewOpener())
			registry.Register("Faulty", tt.factory)

			c, err := l.Instantiate("f1", "Faulty")
			assert.ErrorIs(t, err, loader.ErrConstructor)
			assert.Nil(t, c)
			assert.Empty(t, l.Instances())
		})
	}

	t.Run("NilFactoryIsUnknown", func(t *testing.T) {
		l, registry := newTestLoader(mocks.NewOpener())
		registry.Register("Hollow", nil)

		_, err := l.Instantiate("h1", "Hollow")
		assert.ErrorIs(t, err, loader.ErrUnknownType)
	})
}

type panickyName struct{}

func (panickyName) Name() string { panic("name") }

func TestInstantiate_MisnamedComponentLeavesLibraryUnloadable(t *testing.T) {
	opener := mocks.NewOpener()
	path := touch(t, filepath.Join(t.TempDir(), "libodd.so"))
	opener.Add(path, mocks.Symbols{
		component.SymbolCreate: func(string) (component.Component, error) {
			return &testComponent{Base: component.NewBase("fixed")}, nil
		},
		component.SymbolType: func() string { return "Odd" },
	})
	l, _ := newTestLoader(opener)
	require.NoError(t, l.LoadLibrary(path))

	c, err := l.Instantiate("w1", "Odd")
	assert.ErrorIs(t, err, loader.ErrConstructor)
	assert.Nil(t, c)
	assert.Empty(t, l.Instances())

	require.NoError(t, l.UnloadLibrary("odd"))
	assert.Empty(t, l.Libraries())
}

func TestUnloadLibrary(t *testing.T) {
	opener := mocks.NewOpener()
	path := touch(t, filepath.Join(t.TempDir(), "libwidget.so"))
	opener.Add(path, singleLib("Widget"))
	l, registry := newTestLoader(opener)
	require.NoError(t, l.LoadLibrary(path))

	c, err := l.Instantiate("w1", "Widget")
	require.NoError(t, err)

	assert.ErrorIs(t, l.UnloadLibrary("widget"), loader.ErrUnsafeUnload)
	assert.Len(t, l.Libraries(), 1)

	require.NoError(t, l.Destroy(c))
	require.NoError(t, l.UnloadLibrary("widget"))
	assert.Empty(t, l.Libraries())
	assert.Equal(t, 0, opener.OpenHandles(path))
	assert.True(t, registry.Has("Widget"), "factories survive unload")

	assert.ErrorIs(t, l.UnloadLibrary("widget"), loader.ErrLibraryNotFound)
}

func TestObserver(t *testing.T) {
	opener := mocks.NewOpener()
	dir := t.TempDir()
	good := touch(t, filepath.Join(dir, "libwidget.so"))
	bad := touch(t, filepath.Join(dir, "libbad.so"))
	opener.Add(good, singleLib("Widget"))
	obs := &recordingObserver{}
	l, _ := newTestLoader(opener, loader.WithObserver(obs))

	require.NoError(t, l.LoadLibrary(good))
	require.Error(t, l.LoadLibrary(bad))
	c, err := l.Instantiate("w1", "Widget")
	require.NoError(t, err)
	require.NoError(t, l.Destroy(c))
	require.NoError(t, l.LoadLibrary(good))

	assert.Equal(t, []string{
		"loaded:widget",
		"failed:libbad.so",
		"created:w1",
		"destroyed:w1",
		"unloaded:widget",
		"loaded:widget",
	}, obs.events)
}
