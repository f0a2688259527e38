// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting the control-plane endpoints.
//   - rayid: a unique request id (RayID) per request, stored in the context and echoed
//     in the X-Ray-ID response header for tracing.
package middleware
