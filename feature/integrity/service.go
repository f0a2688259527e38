package integrity

import (
	"context"
	"fmt"

	"component-loader/core/loader"
	"component-loader/core/storage"
	"component-loader/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	loader *loader.Loader
	client storage.Client
	repo   storage.Config
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new integrity service. client and db may be nil when the
// repository or the journal is disabled.
func NewService(l *loader.Loader, client storage.Client, repo storage.Config, db *gorm.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{loader: l, client: client, repo: repo, db: db, logger: logger}
}

// CheckSearchPath inspects the effective search path for pathList.
func (s *Service) CheckSearchPath(pathList string) *checks.SearchPathReport {
	return checks.CheckSearchPath(s.loader.SearchPath(pathList), s.loader.Target(), s.loader.Codec().HasSuffix)
}

// FixSearchPath creates the missing search path directories.
func (s *Service) FixSearchPath(missing []string) error {
	return checks.FixSearchPath(missing, s.logger)
}

// CheckLibraries probes every library file of the effective search path.
// Go plugins stay mapped once opened, so probing maps every valid library.
func (s *Service) CheckLibraries(pathList string) *checks.LibrariesReport {
	return checks.ProbeLibraries(s.loader.Opener(), s.loader.Codec(), s.loader.SearchPath(pathList), s.loader.Target())
}

// CheckRepository verifies the package repository bucket.
func (s *Service) CheckRepository(ctx context.Context) (*checks.RepositoryReport, error) {
	if s.client == nil {
		return nil, fmt.Errorf("package repository is not configured")
	}
	return checks.CheckRepository(ctx, s.client, s.repo, s.loader.Codec())
}

// FixRepository creates the missing bucket.
func (s *Service) FixRepository(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("package repository is not configured")
	}
	return checks.FixRepository(ctx, s.client, s.repo.Bucket, s.logger)
}

// CheckJournal verifies the journal schema.
func (s *Service) CheckJournal() (*checks.JournalReport, error) {
	return checks.CheckJournal(s.db)
}
