package journal

import (
	"strings"

	"component-loader/core/loader"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Recorder persists loader events. It implements loader.Observer.
// Write failures are logged and never reach the loader.
type Recorder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRecorder creates a recorder writing to db.
func NewRecorder(db *gorm.DB, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{db: db, logger: logger}
}

// Migrate creates or updates the loader_events table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&LoaderEvent{})
}

// LibraryLoaded implements loader.Observer.
func (r *Recorder) LibraryLoaded(lib loader.Library) {
	r.record(LoaderEvent{
		Kind:     KindLibraryLoaded,
		Library:  lib.ShortName,
		Path:     lib.Path,
		TypeName: strings.Join(lib.TypeNames, ","),
	})
}

// LibraryUnloaded implements loader.Observer.
func (r *Recorder) LibraryUnloaded(lib loader.Library) {
	r.record(LoaderEvent{
		Kind:    KindLibraryUnloaded,
		Library: lib.ShortName,
		Path:    lib.Path,
	})
}

// LoadFailed implements loader.Observer.
func (r *Recorder) LoadFailed(path string, err error) {
	r.record(LoaderEvent{
		Kind:   KindLoadFailed,
		Path:   path,
		Detail: err.Error(),
	})
}

// InstanceCreated implements loader.Observer.
func (r *Recorder) InstanceCreated(inst loader.Instance) {
	r.record(LoaderEvent{
		Kind:     KindInstanceCreated,
		TypeName: inst.TypeName,
		Instance: inst.Name,
	})
}

// InstanceDestroyed implements loader.Observer.
func (r *Recorder) InstanceDestroyed(inst loader.Instance) {
	r.record(LoaderEvent{
		Kind:     KindInstanceDestroyed,
		TypeName: inst.TypeName,
		Instance: inst.Name,
	})
}

func (r *Recorder) record(ev LoaderEvent) {
	if err := r.db.Create(&ev).Error; err != nil {
		r.logger.Warn("Failed to record loader event", zap.String("kind", ev.Kind), zap.Error(err))
	}
}
