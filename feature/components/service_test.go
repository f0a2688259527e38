package components

import (
	"path/filepath"
	"sync"
	"testing"

	"component-loader/core/loader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_ConcurrentCreateAndDestroy(t *testing.T) {
	f := setupTestApp(t)
	require.NoError(t, f.svc.Reload(filepath.Join(f.dir, "libwidget.so")))

	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_, err := f.svc.Create(name, "Widget")
			assert.NoError(t, err)
		}(name)
	}
	wg.Wait()
	assert.Len(t, f.svc.Instances(), len(names))

	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			assert.NoError(t, f.svc.Destroy(name))
		}(name)
	}
	wg.Wait()
	assert.Empty(t, f.svc.Instances())
}

func TestService_Probe(t *testing.T) {
	f := setupTestApp(t)

	shape, err := f.svc.Probe(filepath.Join(f.dir, "pkgs", "libsensors.so"))
	require.NoError(t, err)
	assert.Equal(t, "multi", shape.Protocol())
	assert.Equal(t, []string{"SensorX"}, shape.Types())
	assert.Empty(t, f.svc.Libraries())

	_, err = f.svc.Probe(filepath.Join(f.dir, "libbroken.so"))
	assert.ErrorIs(t, err, loader.ErrMalformedLibrary)
}

func TestService_Do(t *testing.T) {
	f := setupTestApp(t)
	err := f.svc.Do(func(l *loader.Loader) error {
		return l.LoadLibrary(filepath.Join(f.dir, "libwidget.so"))
	})
	require.NoError(t, err)
	assert.Len(t, f.svc.Libraries(), 1)
}
