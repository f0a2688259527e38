// Package factory holds the component factory registry: one table mapping component
// type names to factories.
//
// The registry is an explicit service. Loaders that must share a single canonical type
// table across the process use Shared(); tests and isolated callers build their own
// with New().
//
// Registering a type name that already exists replaces the previous factory and logs a
// warning. Last loaded wins, so an edited and rebuilt library can be reloaded while
// instances created by the previous build keep running. Entries are never removed.
package factory
