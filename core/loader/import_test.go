package loader_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"component-loader/core/dynlib/mocks"
	"component-loader/core/loader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportAll_Scenario(t *testing.T) {
	opener := mocks.NewOpener()
	dir := t.TempDir()
	opener.Add(touch(t, filepath.Join(dir, "libwidgetA.so")), singleLib("Widget"))
	opener.Add(touch(t, filepath.Join(dir, "libfamily.so")), multiLib("SensorX", "SensorY"))
	l, _ := newTestLoader(opener)

	result := l.ImportAll(dir)
	assert.Len(t, result.Loaded, 2)
	assert.Empty(t, result.Failures)

	types := l.ComponentTypes()
	assert.Subset(t, types, []string{"Widget", "SensorX", "SensorY"})

	w, err := l.Instantiate("w1", "Widget")
	require.NoError(t, err)
	assert.Equal(t, "w1", w.Name())

	_, err = l.Instantiate("s1", "SensorZ")
	assert.ErrorIs(t, err, loader.ErrUnknownType)
}

func TestImportAll_Scan(t *testing.T) {
	t.Run("TargetSubdirectory", func(t *testing.T) {
		opener := mocks.NewOpener()
		dir := t.TempDir()
		opener.Add(touch(t, filepath.Join(dir, "gnulinux", "libwidget.so")), singleLib("Widget"))
		opener.Add(touch(t, filepath.Join(dir, "nested", "libdeep.so")), singleLib("Deep"))
		l, registry := newTestLoader(opener)

		l.ImportAll(dir)

		assert.True(t, registry.Has("Widget"))
		assert.False(t, registry.Has("Deep"), "scan is not recursive")
	})

	t.Run("SkipsSymlinksAndToleratesFailures", func(t *testing.T) {
		opener := mocks.NewOpener()
		dir := t.TempDir()
		real := touch(t, filepath.Join(dir, "libwidget-1.2.so"))
		opener.Add(real, singleLib("Widget"))
		link := filepath.Join(dir, "libwidget.so")
		require.NoError(t, os.Symlink(real, link))
		opener.Add(link, singleLib("Linked"))
		touch(t, filepath.Join(dir, "README.txt"))
		broken := touch(t, filepath.Join(dir, "libbroken.so"))
		opener.Fail(broken, errBoom)
		l, registry := newTestLoader(opener)

		result := l.ImportAll(dir)

		assert.True(t, registry.Has("Widget"))
		assert.False(t, registry.Has("Linked"))
		assert.Equal(t, 0, opener.Opened[link])
		assert.Equal(t, []string{real}, result.Loaded)
		assert.Len(t, result.Failures, 2)
	})

	t.Run("MissingDirectoriesSkipped", func(t *testing.T) {
		opener := mocks.NewOpener()
		dir := t.TempDir()
		opener.Add(touch(t, filepath.Join(dir, "libwidget.so")), singleLib("Widget"))
		l, registry := newTestLoader(opener)

		l.ImportAll(strings.Join([]string{filepath.Join(dir, "missing"), dir}, ":"))

		assert.True(t, registry.Has("Widget"))
	})

	t.Run("DefaultPathAppended", func(t *testing.T) {
		opener := mocks.NewOpener()
		callerDir, defaultDir := t.TempDir(), t.TempDir()
		opener.Add(touch(t, filepath.Join(callerDir, "libwidget.so")), singleLib("Widget"))
		opener.Add(touch(t, filepath.Join(defaultDir, "libfamily.so")), multiLib("SensorX"))
		l, _ := newTestLoader(opener, loader.WithDefaultPath(defaultDir))

		assert.Equal(t, []string{callerDir, defaultDir}, l.SearchPath(callerDir))
		l.ImportAll(callerDir)

		assert.Equal(t, []string{"SensorX", "Widget"}, l.ComponentTypes())
	})

	t.Run("RescanIsIdempotent", func(t *testing.T) {
		opener := mocks.NewOpener()
		dir := t.TempDir()
		opener.Add(touch(t, filepath.Join(dir, "libwidget.so")), singleLib("Widget"))
		l, _ := newTestLoader(opener, loader.WithDefaultPath(dir))

		l.ImportAll(dir)

		assert.Len(t, l.Libraries(), 1)
	})
}

func TestPackageCandidates(t *testing.T) {
	l, _ := newTestLoader(mocks.NewOpener())

	got := l.PackageCandidates("/opt/components", "sub/foo")
	assert.Equal(t, []string{
		filepath.FromSlash("/opt/components/sub/foo.so"),
		filepath.FromSlash("/opt/components/sub/libfoo.so"),
		filepath.FromSlash("/opt/components/sub/gnulinux/foo.so"),
		filepath.FromSlash("/opt/components/sub/gnulinux/libfoo.so"),
	}, got)

	flat := l.PackageCandidates("/opt", "foo")
	assert.Equal(t, filepath.FromSlash("/opt/foo.so"), flat[0])
}

func TestImportPackage(t *testing.T) {
	t.Run("FirstLoadableCandidateWins", func(t *testing.T) {
		opener := mocks.NewOpener()
		first, second := t.TempDir(), t.TempDir()
		broken := touch(t, filepath.Join(first, "sub", "foo.so"))
		opener.Fail(broken, errBoom)
		want := touch(t, filepath.Join(first, "sub", "gnulinux", "libfoo.so"))
		opener.Add(want, singleLib("Foo"))
		shadowed := touch(t, filepath.Join(second, "sub", "foo.so"))
		opener.Add(shadowed, singleLib("Shadow"))
		l, registry := newTestLoader(opener)

		require.NoError(t, l.ImportPackage("sub/foo", strings.Join([]string{first, second}, ";")))

		assert.True(t, registry.Has("Foo"))
		assert.False(t, registry.Has("Shadow"))
		libs := l.Libraries()
		require.Len(t, libs, 1)
		assert.Equal(t, want, libs[0].Path)
		assert.Equal(t, "foo", libs[0].ShortName)
	})

	t.Run("ExhaustsEveryCandidate", func(t *testing.T) {
		opener := mocks.NewOpener()
		first, second := t.TempDir(), t.TempDir()
		l, _ := newTestLoader(opener)

		err := l.ImportPackage("sub/foo", first+":"+second)
		require.ErrorIs(t, err, loader.ErrPackageNotFound)
		for _, dir := range []string{first, second} {
			for _, candidate := range l.PackageCandidates(dir, "sub/foo") {
				assert.Contains(t, err.Error(), candidate)
			}
		}
	})

	t.Run("AttemptsInOrder", func(t *testing.T) {
		opener := mocks.NewOpener()
		dir := t.TempDir()
		l, _ := newTestLoader(opener)

		err := l.ImportPackage("sub/foo", dir)
		require.Error(t, err)

		msg := err.Error()
		last := -1
		for _, candidate := range l.PackageCandidates(dir, "sub/foo") {
			idx := strings.Index(msg, candidate+":")
			require.Greater(t, idx, last, candidate)
			last = idx
		}
	})

	t.Run("AlreadyRegisteredTypeShortCircuits", func(t *testing.T) {
		opener := mocks.NewOpener()
		l, registry := newTestLoader(opener)
		registry.Register("foo", newComponent("foo"))

		require.NoError(t, l.ImportPackage("foo", t.TempDir()))
		assert.Empty(t, opener.Opened)
	})

	t.Run("DirectoryCandidateSkipped", func(t *testing.T) {
		opener := mocks.NewOpener()
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "foo.so"), 0o755))
		want := touch(t, filepath.Join(dir, "libfoo.so"))
		opener.Add(want, singleLib("Foo"))
		l, registry := newTestLoader(opener)

		require.NoError(t, l.ImportPackage("foo", dir))
		assert.True(t, registry.Has("Foo"))
	})
}
