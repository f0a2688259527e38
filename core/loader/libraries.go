package loader

import (
	"fmt"
	"time"

	"component-loader/core/dynlib"
)

// Library is a loaded shared library and the component types it contributed.
type Library struct {
	Path      string    `json:"path"`
	ShortName string    `json:"short_name"`
	TypeNames []string  `json:"type_names"`
	LoadedAt  time.Time `json:"loaded_at"`

	handle dynlib.Handle
}

// LiveTypes reports whether a component type has live instances.
type LiveTypes interface {
	InUse(typeName string) bool
}

// Libraries tracks loaded libraries. Library counts are small, so lookups are linear.
type Libraries struct {
	libs []*Library
}

// NewLibraries creates an empty library registry.
func NewLibraries() *Libraries {
	return &Libraries{}
}

// Find returns the library tracked under shortName, or nil.
func (r *Libraries) Find(shortName string) *Library {
	for _, lib := range r.libs {
		if lib.ShortName == shortName {
			return lib
		}
	}
	return nil
}

// Register tracks an opened library.
func (r *Libraries) Register(path, shortName string, handle dynlib.Handle, typeNames []string) *Library {
	lib := &Library{
		Path:      path,
		ShortName: shortName,
		TypeNames: typeNames,
		LoadedAt:  time.Now(),
		handle:    handle,
	}
	r.libs = append(r.libs, lib)
	return lib
}

// CanSafelyUnload reports whether no live instance has a type contributed by lib.
func (r *Libraries) CanSafelyUnload(lib *Library, live LiveTypes) bool {
	for _, typeName := range lib.TypeNames {
		if live.InUse(typeName) {
			return false
		}
	}
	return true
}

// Unload closes the handle of lib and stops tracking it.
// It fails with ErrUnsafeUnload, changing nothing, while live instances use the library.
// A close error is returned after the record has been removed.
func (r *Libraries) Unload(lib *Library, live LiveTypes) error {
	if !r.CanSafelyUnload(lib, live) {
		return fmt.Errorf("%w: %s", ErrUnsafeUnload, lib.ShortName)
	}
	for i, l := range r.libs {
		if l == lib {
			r.libs = append(r.libs[:i], r.libs[i+1:]...)
			break
		}
	}
	if lib.handle == nil {
		return nil
	}
	if err := lib.handle.Close(); err != nil {
		return fmt.Errorf("close %s: %w", lib.ShortName, err)
	}
	return nil
}

// List returns a snapshot of the tracked libraries in load order.
func (r *Libraries) List() []Library {
	out := make([]Library, 0, len(r.libs))
	for _, lib := range r.libs {
		cp := *lib
		cp.TypeNames = append([]string(nil), lib.TypeNames...)
		out = append(out, cp)
	}
	return out
}

// Len returns the number of tracked libraries.
func (r *Libraries) Len() int {
	return len(r.libs)
}
