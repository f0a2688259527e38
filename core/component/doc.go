// Package component defines the contract between the component loader and the
// shared-library plugins that contribute component types.
//
// A plugin is a Go package built with -buildmode=plugin that imports this package
// and exports one of two entry-point shapes.
//
// # Single-component libraries
//
// One binary contributes exactly one type through two symbols:
//
//	func CreateComponent(name string) (component.Component, error)
//	func ComponentType() string
//
// # Multi-component libraries
//
// One binary contributes a family of related types through a single table:
//
//	func ComponentFactories() component.FactoryMap
//	func ComponentTypeNames() []string // optional, diagnostics only
//
// The loader detects which shape a file has at load time, so callers never declare it.
//
// # Destruction
//
// Components that hold resources implement io.Closer. The loader calls Close exactly once
// when the owning loader destroys the instance.
package component
