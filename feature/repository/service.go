package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"component-loader/core/libname"
	"component-loader/core/storage"

	"github.com/hashicorp/go-multierror"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrPackageNotPublished is returned when no object matches a package name.
var ErrPackageNotPublished = errors.New("package not published")

// Importer loads a package that was fetched into dir.
type Importer func(packageName, dir string) error

// Service mirrors component libraries between the bucket and a local cache
// directory that is part of the loader search path.
type Service struct {
	client   storage.Client
	cfg      storage.Config
	codec    libname.Codec
	target   string
	importer Importer
	logger   *zap.Logger
	sf       singleflight.Group
}

// Option configures a Service.
type Option func(*Service)

// WithImporter makes Fetch import the package once it is cached.
func WithImporter(importer Importer) Option {
	return func(s *Service) {
		s.importer = importer
	}
}

// WithCodec sets the library filename codec and target subdirectory.
func WithCodec(codec libname.Codec, target string) Option {
	return func(s *Service) {
		s.codec = codec
		s.target = target
	}
}

// NewService creates a new repository service.
func NewService(client storage.Client, cfg storage.Config, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		client:   client,
		cfg:      cfg,
		codec:    libname.Native(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CacheDir returns the local cache directory.
func (s *Service) CacheDir() string {
	return s.cfg.CacheDir
}

// Bucket returns the bucket name.
func (s *Service) Bucket() string {
	return s.cfg.Bucket
}

// ObjectCandidates returns, in lookup order, the object keys that may hold packageName.
// They mirror the local candidate layout: {name, libname} in the package directory,
// then the same in the target subdirectory.
func (s *Service) ObjectCandidates(packageName string) []string {
	pkgDir, name := path.Split(filepath.ToSlash(packageName))
	keys := []string{
		s.cfg.ObjectKey(pkgDir, s.codec.FileName(name, false)),
		s.cfg.ObjectKey(pkgDir, s.codec.FileName(name, true)),
	}
	if s.target != "" {
		keys = append(keys,
			s.cfg.ObjectKey(pkgDir, s.target, s.codec.FileName(name, false)),
			s.cfg.ObjectKey(pkgDir, s.target, s.codec.FileName(name, true)))
	}
	return keys
}

// Fetch downloads packageName into the cache directory and returns the local file.
// Concurrent fetches of one package share a single download.
func (s *Service) Fetch(ctx context.Context, packageName string) (string, error) {
	result, err, shared := s.sf.Do(packageName, func() (interface{}, error) {
		return s.fetch(ctx, packageName)
	})
	if err != nil {
		return "", err
	}
	if shared {
		s.logger.Debug("Joined in-flight fetch", zap.String("package", packageName))
	}
	return result.(string), nil
}

func (s *Service) fetch(ctx context.Context, packageName string) (string, error) {
	var attempts *multierror.Error
	for _, key := range s.ObjectCandidates(packageName) {
		if _, err := s.client.StatObject(ctx, s.cfg.Bucket, key, minio.StatObjectOptions{}); err != nil {
			attempts = multierror.Append(attempts, fmt.Errorf("%s: %w", key, err))
			continue
		}
		local, err := s.download(ctx, key)
		if err != nil {
			return "", err
		}
		s.logger.Info("Fetched package", zap.String("package", packageName), zap.String("object", key), zap.String("file", local))
		if s.importer != nil {
			if err := s.importer(packageName, s.cfg.CacheDir); err != nil {
				return local, fmt.Errorf("import of fetched package %s: %w", packageName, err)
			}
		}
		return local, nil
	}
	return "", fmt.Errorf("%w: %s: %w", ErrPackageNotPublished, packageName, attempts.ErrorOrNil())
}

// SyncReport summarizes a Sync.
type SyncReport struct {
	Downloaded []string `json:"downloaded"`
	Failed     []string `json:"failed"`
}

// Sync downloads every published library into the cache directory.
func (s *Service) Sync(ctx context.Context) (*SyncReport, error) {
	keys, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	report := &SyncReport{Downloaded: []string{}, Failed: []string{}}
	for _, key := range keys {
		local, err := s.download(ctx, key)
		if err != nil {
			s.logger.Warn("Failed to sync library", zap.String("object", key), zap.Error(err))
			report.Failed = append(report.Failed, key)
			continue
		}
		report.Downloaded = append(report.Downloaded, local)
	}
	s.logger.Info("Repository synced",
		zap.Int("downloaded", len(report.Downloaded)),
		zap.Int("failed", len(report.Failed)))
	return report, nil
}

// List returns the keys of every published library.
func (s *Service) List(ctx context.Context) ([]string, error) {
	var keys []string
	for obj := range s.client.ListObjects(ctx, s.cfg.Bucket, minio.ListObjectsOptions{Prefix: s.cfg.ListPrefix(), Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", s.cfg.Bucket, obj.Err)
		}
		if s.codec.HasSuffix(path.Base(obj.Key)) {
			keys = append(keys, obj.Key)
		}
	}
	return keys, nil
}

// Publish uploads a local library under packageName, creating the bucket if needed.
// The object lands in the target subdirectory when one is configured.
func (s *Service) Publish(ctx context.Context, localPath, packageName string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	if err := s.EnsureBucket(ctx); err != nil {
		return "", err
	}

	pkgDir, name := path.Split(filepath.ToSlash(packageName))
	key := s.cfg.ObjectKey(pkgDir, s.target, s.codec.FileName(name, true))
	if _, err := s.client.PutObject(ctx, s.cfg.Bucket, key, f, info.Size(), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	}); err != nil {
		return "", fmt.Errorf("failed to publish %s: %w", key, err)
	}
	s.logger.Info("Published package", zap.String("package", packageName), zap.String("object", key))
	return key, nil
}

// EnsureBucket creates the bucket when it does not exist.
func (s *Service) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.cfg.Bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.cfg.Bucket, err)
	}
	s.logger.Info("Created bucket", zap.String("bucket", s.cfg.Bucket))
	return nil
}

// download copies the object key into the cache directory, keeping its path
// relative to the prefix. The file is renamed into place once complete.
func (s *Service) download(ctx context.Context, key string) (string, error) {
	local := s.cfg.LocalPath(key)
	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return "", err
	}

	obj, err := s.client.GetObject(ctx, s.cfg.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer obj.Close()

	tmp, err := os.CreateTemp(filepath.Dir(local), "."+filepath.Base(local)+".*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, obj); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to download %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), local); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return local, nil
}
