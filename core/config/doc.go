// Package config provides configuration management for the component loader service.
//
// Viper reads environment variables (optionally seeded from a .env file by godotenv).
// Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key and metrics exposure
//   - Loader: default search path (LOADER_PATH), platform target and file watching
//   - Repository: S3/MinIO package bucket and local cache directory
//   - Log: logging level and format
//   - Database: load journal connection
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Loader.Path)
package config
