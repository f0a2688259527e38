// Package database handles the journal database connection and schema inspection.
//
// It wraps GORM with the MySQL and SQLite dialectors, chosen by Config.Driver.
//
// # Schema Inspection
//
// TableColumns and MissingColumns back the journal schema integrity check, which
// verifies the loader_events table carries every column the journal writes.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Optional database connection failed", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "loader_events", []string{"id", "kind"})
package database
