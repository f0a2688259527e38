// Package dynlib abstracts opening shared libraries and resolving their exported symbols.
//
// The Opener and Handle interfaces decouple the component loader from the operating
// system loader, which keeps the load protocol testable with in-memory libraries
// (see core/dynlib/mocks).
//
// PluginOpener is the production implementation. It is backed by the standard library
// plugin package, which opens files with immediate, globally visible symbol binding
// (RTLD_NOW|RTLD_GLOBAL) so libraries of one device family can share base types.
//
// The Go runtime never unmaps a plugin. Closing a Handle releases the loader's reference
// and makes further lookups fail; the code itself stays mapped until process exit.
package dynlib
