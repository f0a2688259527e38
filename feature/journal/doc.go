// Package journal persists loader events with GORM.
//
// The Recorder is attached to a loader as an observer and writes one row to the
// loader_events table per library load, unload, failed load, instance creation and
// instance destruction. The table works on MySQL and SQLite.
//
// # HTTP Endpoints
//
//   - GET /journal : Recent events (filters: kind, library, instance, limit).
package journal
