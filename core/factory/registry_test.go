package factory_test

import (
	"testing"

	"component-loader/core/component"
	"component-loader/core/factory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type named struct {
	component.Base
	build int
}

func factoryFor(build int) component.Factory {
	return func(name string) (component.Component, error) {
		return &named{Base: component.NewBase(name), build: build}, nil
	}
}

func TestRegistry(t *testing.T) {
	t.Run("RegisterAndLookup", func(t *testing.T) {
		r := factory.New(nil)
		r.Register("Widget", factoryFor(1))

		f, ok := r.Lookup("Widget")
		require.True(t, ok)
		c, err := f("w1")
		require.NoError(t, err)
		assert.Equal(t, "w1", c.Name())

		_, ok = r.Lookup("Missing")
		assert.False(t, ok)
		assert.True(t, r.Has("Widget"))
	})

	t.Run("OverwriteWarns", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		r := factory.New(zap.New(core))

		r.Register("Widget", factoryFor(1))
		r.Register("Widget", factoryFor(2))

		assert.Equal(t, 1, logs.FilterMessage("Overriding component factory").Len())
		assert.Equal(t, 1, r.Len())

		f, _ := r.Lookup("Widget")
		c, err := f("w")
		require.NoError(t, err)
		assert.Equal(t, 2, c.(*named).build)
	})

	t.Run("MergeSorted", func(t *testing.T) {
		r := factory.New(nil)
		r.Register("Widget", factoryFor(1))
		r.Merge(component.FactoryMap{
			"SensorY": factoryFor(1),
			"SensorX": factoryFor(1),
		})

		assert.Equal(t, []string{"SensorX", "SensorY", "Widget"}, r.TypeNames())
	})
}

func TestShared(t *testing.T) {
	assert.Same(t, factory.Shared(), factory.Shared())
}

func TestShared_WarnsThroughGlobalLogger(t *testing.T) {
	r := factory.Shared()

	core, logs := observer.New(zap.WarnLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	r.Register("SharedOverwrite", factoryFor(1))
	r.Register("SharedOverwrite", factoryFor(2))

	entries := logs.FilterMessage("Overriding component factory").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "factory", entries[0].LoggerName)
	assert.Equal(t, "SharedOverwrite", entries[0].ContextMap()["type"])
}
