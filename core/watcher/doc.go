// Package watcher reports rebuilt component libraries using fsnotify.
//
// Each directory of the effective search path can be watched. Bursts of events for
// one file are debounced into a single callback, which the start command uses to
// reload the library. The loader's reuse check still refuses reloads of libraries
// with live instances.
package watcher
