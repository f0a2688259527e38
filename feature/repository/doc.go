// Package repository distributes component libraries through object storage.
//
// Libraries are published to a bucket using the same layout a search path
// directory uses ({name, libname} optionally under the target subdirectory), and
// fetched into a local cache directory that the start command appends to the
// loader default path. Concurrent fetches of one package are coalesced with
// singleflight.
//
// # HTTP Endpoints
//
//   - GET /repository/packages : Published library keys.
//   - POST /repository/fetch : Fetch (and import) one package.
//   - POST /repository/sync : Mirror every published library.
//   - POST /repository/publish : Upload a local library.
package repository
