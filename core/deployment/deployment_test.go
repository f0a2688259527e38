package deployment_test

import (
	"os"
	"path/filepath"
	"testing"

	"component-loader/core/component"
	"component-loader/core/deployment"
	"component-loader/core/dynlib/mocks"
	"component-loader/core/factory"
	"component-loader/core/loader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closer struct {
	component.Base
	closed *[]string
}

func (c *closer) Close() error {
	*c.closed = append(*c.closed, c.Name())
	return nil
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// fixture lays out a widget library under flat/ and a sensors package under pkgs/.
func fixture(t *testing.T) (string, *loader.Loader, *[]string) {
	t.Helper()
	root := t.TempDir()
	closed := &[]string{}
	ctor := func(name string) (component.Component, error) {
		return &closer{Base: component.NewBase(name), closed: closed}, nil
	}

	opener := mocks.NewOpener()
	opener.Add(writeFile(t, filepath.Join(root, "flat", "libwidget.so"), ""), mocks.Symbols{
		component.SymbolCreate: ctor,
		component.SymbolType:   func() string { return "Widget" },
	})
	opener.Add(writeFile(t, filepath.Join(root, "pkgs", "libsensors.so"), ""), mocks.Symbols{
		component.SymbolFactories: func() component.FactoryMap {
			return component.FactoryMap{"SensorX": ctor, "SensorY": ctor}
		},
	})

	l := loader.New(
		loader.WithPlatform("linux"),
		loader.WithOpener(opener),
		loader.WithFactories(factory.New(nil)),
	)
	return root, l, closed
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "deploy.yaml"), `
imports:
  - /opt/components
packages:
  - name: sensors
    path: /opt/packages
components:
  - name: w1
    type: Widget
  - name: x1
    type: SensorX
`)

	d, err := deployment.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/components"}, d.Imports)
	assert.Equal(t, []deployment.Package{{Name: "sensors", Path: "/opt/packages"}}, d.Packages)
	assert.Equal(t, []deployment.Instance{{Name: "w1", Type: "Widget"}, {Name: "x1", Type: "SensorX"}}, d.Components)

	_, err = deployment.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyAndTeardown(t *testing.T) {
	root, l, closed := fixture(t)
	d := &deployment.Deployment{
		Imports:    []string{filepath.Join(root, "flat")},
		Packages:   []deployment.Package{{Name: "sensors", Path: filepath.Join(root, "pkgs")}},
		Components: []deployment.Instance{{Name: "w1", Type: "Widget"}, {Name: "x1", Type: "SensorX"}, {Name: "y1", Type: "SensorY"}},
	}

	applied, err := d.Apply(l, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "flat", "libwidget.so")}, applied.Loaded)
	require.Len(t, applied.Components, 3)
	assert.Len(t, l.Instances(), 3)

	require.NoError(t, applied.Teardown(l))
	assert.Equal(t, []string{"y1", "x1", "w1"}, *closed)
	assert.Empty(t, l.Instances())
	assert.Empty(t, applied.Components)
}

func TestApply_RollsBackOnFailure(t *testing.T) {
	root, l, closed := fixture(t)

	t.Run("Unknown type", func(t *testing.T) {
		d := &deployment.Deployment{
			Imports:    []string{filepath.Join(root, "flat")},
			Components: []deployment.Instance{{Name: "w1", Type: "Widget"}, {Name: "g1", Type: "Gadget"}},
		}
		applied, err := d.Apply(l, nil)
		require.ErrorIs(t, err, loader.ErrUnknownType)
		assert.Empty(t, applied.Components)
		assert.Equal(t, []string{"w1"}, *closed)
		assert.Empty(t, l.Instances())
	})

	t.Run("Missing package", func(t *testing.T) {
		d := &deployment.Deployment{
			Packages: []deployment.Package{{Name: "nothing", Path: filepath.Join(root, "pkgs")}},
		}
		_, err := d.Apply(l, nil)
		require.ErrorIs(t, err, loader.ErrPackageNotFound)
	})
}
