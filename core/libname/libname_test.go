package libname_test

import (
	"testing"

	"component-loader/core/libname"

	"github.com/stretchr/testify/assert"
)

func TestShortName(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		filename string
		want     string
	}{
		{"PrefixAndSuffix", "linux", "libfoo.so", "foo"},
		{"SuffixOnlyWindows", "windows", "foo.dll", "foo"},
		{"Bare", "linux", "foo", "foo"},
		{"PrefixOnly", "linux", "libfoo", "foo"},
		{"Darwin", "darwin", "libfoo.dylib", "foo"},
		{"VersionedSuffix", "linux", "libfoo.so.1", "foo"},
		{"LastOccurrence", "linux", "libfoo.so.bar.so", "foo.so.bar"},
		{"ForeignSuffixKept", "linux", "libfoo.dll", "foo.dll"},
		{"PrefixOnlyOnce", "linux", "liblibfoo.so", "libfoo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, libname.ForOS(tt.goos).ShortName(tt.filename))
		})
	}
}

func TestFileName(t *testing.T) {
	c := libname.ForOS("linux")
	assert.Equal(t, "foo.so", c.FileName("foo", false))
	assert.Equal(t, "libfoo.so", c.FileName("foo", true))
	assert.True(t, c.HasSuffix("libfoo.so"))
	assert.False(t, c.HasSuffix("libfoo.so.1"))

	w := libname.ForOS("windows")
	assert.Equal(t, "libfoo.dll", w.FileName("foo", true))
}
