// Package loader provides the dynamic component loader.
//
// A Loader discovers shared-library plugin files, loads them, detects which of the two
// plugin protocols each library implements, registers the component types it contributes
// in a factory.Registry, and creates and destroys named component instances.
//
// # Import
//
//   - ImportAll scans every directory of the effective search path (caller list followed by
//     the default list) plus its platform target subdirectory, and attempts every regular,
//     non-symlink file. One bad file never aborts the scan.
//   - ImportPackage looks for a single package by name: {name, libname} x {flat, target}
//     in every directory, in order, and loads the first candidate that succeeds.
//   - LoadLibrary loads one file.
//
// # Load protocol
//
//  1. A library already tracked under the same short name is unloaded first, but only if no
//     live instance uses one of its types. Otherwise the load is refused.
//  2. The file is opened through a dynlib.Opener.
//  3. A multi-component table (component.SymbolFactories) is probed first.
//  4. Otherwise the single-component pair (component.SymbolCreate and component.SymbolType)
//     is required.
//  5. A library matching neither is rejected and its handle closed immediately.
//
// # Ownership
//
// Instances are tracked by name. Only the loader that created an instance destroys it, and
// a library backing the type of a live instance is never unloaded. Every call into plugin
// code runs behind a recover boundary, so a panicking constructor only fails the call.
//
// A Loader is not safe for concurrent use; callers serialize access.
package loader
