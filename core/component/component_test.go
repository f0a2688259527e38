package component_test

import (
	"testing"

	"component-loader/core/component"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	component.Base
}

func TestConstructor(t *testing.T) {
	t.Run("Wraps", func(t *testing.T) {
		f := component.Constructor(func(name string) component.Component {
			return &widget{Base: component.NewBase(name)}
		})
		require.NotNil(t, f)

		c, err := f("w1")
		require.NoError(t, err)
		assert.Equal(t, "w1", c.Name())
	})

	t.Run("Nil", func(t *testing.T) {
		assert.Nil(t, component.Constructor(nil))
	})
}
