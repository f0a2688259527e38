package libname

import (
	"runtime"
	"strings"
)

// Prefix is the conventional library filename prefix.
const Prefix = "lib"

// Codec converts between library filenames and short names for one platform.
type Codec struct {
	Prefix string
	Suffix string
}

// Suffix returns the shared-library suffix for goos.
func Suffix(goos string) string {
	switch goos {
	case "windows":
		return ".dll"
	case "darwin", "ios":
		return ".dylib"
	default:
		return ".so"
	}
}

// ForOS returns the codec for goos.
func ForOS(goos string) Codec {
	return Codec{Prefix: Prefix, Suffix: Suffix(goos)}
}

// Native returns the codec for the running platform.
func Native() Codec {
	return ForOS(runtime.GOOS)
}

// ShortName strips a leading prefix and truncates at the last occurrence of the suffix.
// A name containing the suffix before its end is truncated there as well.
func (c Codec) ShortName(filename string) string {
	name := strings.TrimPrefix(filename, c.Prefix)
	if c.Suffix != "" {
		if idx := strings.LastIndex(name, c.Suffix); idx >= 0 {
			name = name[:idx]
		}
	}
	return name
}

// FileName builds the filename of the library called name.
func (c Codec) FileName(name string, withPrefix bool) string {
	if withPrefix {
		return c.Prefix + name + c.Suffix
	}
	return name + c.Suffix
}

// HasSuffix reports whether filename carries the platform suffix.
func (c Codec) HasSuffix(filename string) bool {
	return strings.HasSuffix(filename, c.Suffix)
}

// ShortName derives the short name of filename with the native codec.
func ShortName(filename string) string {
	return Native().ShortName(filename)
}
