// Package integrity provides health checks for a component loader deployment.
//
// # Checks Provided
//
//   - SearchPath: Checks that every directory of the effective search path exists, and counts library files.
//   - Libraries: Probes every library file for a component protocol without registering it. Files whose short
//     name is reused by a later file are reported as shadowed, since an import would replace them.
//   - Repository: Checks that the package repository bucket exists and counts published libraries.
//   - Journal: Validates that the loader_events table has every column the journal writes.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/searchpath : Runs the search path check (supports ?fix=true).
//   - GET /integrity/libraries : Probes libraries.
//   - GET /integrity/repository : Runs the repository check (supports ?fix=true).
//   - GET /integrity/journal : Runs the journal schema check.
package integrity
