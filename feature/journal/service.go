package journal

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultLimit is the number of events returned when no limit is given.
const DefaultLimit = 100

// Service reads the journal.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new journal service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, logger: logger}
}

// Query selects journal events.
type Query struct {
	Kind     string
	Library  string
	Instance string
	Limit    int
}

// Recent returns the newest events matching q, newest first.
func (s *Service) Recent(ctx context.Context, q Query) ([]LoaderEvent, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	tx := s.db.WithContext(ctx).Model(&LoaderEvent{})
	if q.Kind != "" {
		tx = tx.Where("kind = ?", q.Kind)
	}
	if q.Library != "" {
		tx = tx.Where("library = ?", q.Library)
	}
	if q.Instance != "" {
		tx = tx.Where("instance = ?", q.Instance)
	}
	var events []LoaderEvent
	if err := tx.Order("id DESC").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
