// Package storage provides the object storage client behind the component package
// repository.
//
// It wraps the MinIO Go client (AWS S3 and self-hosted MinIO) behind the Client
// interface, which keeps repository code testable with the mock in core/storage/mocks.
//
// # Operations
//
//   - BucketExists / MakeBucket: verify or create the repository bucket.
//   - PutObject: publish a library file.
//   - StatObject / GetObject: locate and download a library file.
//   - ListObjects: enumerate published libraries.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Repository)
//	exists, err := client.BucketExists(ctx, cfg.Repository.Bucket)
package storage
