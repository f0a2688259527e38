package storage

import (
	"path"
	"path/filepath"
	"strings"
)

// Config holds configuration for the component package repository bucket.
type Config struct {
	// Enabled turns the package repository on.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket holding component packages.
	Bucket string `mapstructure:"bucket" default:"components"`
	// Prefix is the object prefix under which packages are stored.
	Prefix string `mapstructure:"prefix" default:""`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// CacheDir is the local directory packages are downloaded to.
	// It is appended to the loader search path.
	CacheDir string `mapstructure:"cache_dir" default:".components"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// ListPrefix returns the listing prefix covering every package object.
func (c Config) ListPrefix() string {
	prefix := strings.Trim(c.Prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}

// ObjectKey joins elems under the configured prefix.
func (c Config) ObjectKey(elems ...string) string {
	return path.Join(append([]string{strings.Trim(c.Prefix, "/")}, elems...)...)
}

// LocalPath maps an object key to its file in the cache directory,
// keeping the key's layout below the prefix.
func (c Config) LocalPath(key string) string {
	rel := strings.TrimPrefix(key, c.ListPrefix())
	return filepath.Join(c.CacheDir, filepath.FromSlash(rel))
}
