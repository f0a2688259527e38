// Package components exposes a component loader over HTTP.
//
// The Service serializes every loader call, so the HTTP handlers, the file watcher
// and deployment application can share one loader.
//
// # HTTP Endpoints
//
//   - GET /components/types : Registered component type names.
//   - GET /components/libraries : Loaded libraries.
//   - POST /components/libraries : Load or reload one library file.
//   - DELETE /components/libraries/:name : Unload a library by short name.
//   - GET /components/instances : Live instances.
//   - POST /components/instances : Create an instance.
//   - DELETE /components/instances/:name : Destroy an instance.
//   - POST /components/import : Scan a path list for libraries.
//   - POST /components/packages : Import a package by name.
package components
