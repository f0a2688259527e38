// Package server holds the HTTP server configuration and the feature manager.
//
// # Features
//
// Each HTTP surface (components, repository, journal, integrity) implements the
// Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps features in registration order and mounts every enabled one
// with LoadAll.
//
// # Usage
//
//	mgr := server.NewManager(logg)
//	mgr.Register(components.NewFeature(svc, logg))
//	if err := mgr.LoadAll(app); err != nil {
//	    logg.Fatal("Failed to load features", zap.Error(err))
//	}
package server
