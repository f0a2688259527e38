// Package metrics exports loader activity to Prometheus.
//
// Observer implements loader.Observer; attach it with loader.WithObserver and
// serve the registry through promhttp (mounted at /metrics by the start command).
package metrics
