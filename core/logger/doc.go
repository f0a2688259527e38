// Package logger provides a structured logging facility based on Zap.
//
// It builds the application logger from configuration and offers request-scoped
// loggers for the HTTP API.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID (request id) from a Fiber context and attaches
// it to the log entry, so every log line of one request can be correlated.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Loader started")
package logger
