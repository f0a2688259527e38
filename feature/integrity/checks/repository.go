package checks

import (
	"context"
	"fmt"
	"path"

	"component-loader/core/libname"
	"component-loader/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// RepositoryReport describes the package repository bucket.
type RepositoryReport struct {
	Bucket       string `json:"bucket"`
	BucketExists bool   `json:"bucket_exists"`
	Libraries    int    `json:"libraries"`
}

// CheckRepository verifies the bucket exists and counts the published libraries.
func CheckRepository(ctx context.Context, client storage.Client, cfg storage.Config, codec libname.Codec) (*RepositoryReport, error) {
	report := &RepositoryReport{Bucket: cfg.Bucket}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report.BucketExists = exists
	if !exists {
		return report, nil
	}

	for obj := range client.ListObjects(ctx, cfg.Bucket, minio.ListObjectsOptions{Prefix: cfg.ListPrefix(), Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", cfg.Bucket, obj.Err)
		}
		if codec.HasSuffix(path.Base(obj.Key)) {
			report.Libraries++
		}
	}
	return report, nil
}

// FixRepository creates the missing bucket.
func FixRepository(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger) error {
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		logger.Error("Failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
		return err
	}
	logger.Info("Created missing bucket", zap.String("bucket", bucket))
	return nil
}
