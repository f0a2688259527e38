package journal

import "time"

// Event kinds.
const (
	KindLibraryLoaded     = "library_loaded"
	KindLibraryUnloaded   = "library_unloaded"
	KindLoadFailed        = "load_failed"
	KindInstanceCreated   = "instance_created"
	KindInstanceDestroyed = "instance_destroyed"
)

// LoaderEvent is one persisted loader state change.
type LoaderEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Kind      string    `gorm:"size:32;index;not null" json:"kind"`
	Library   string    `gorm:"size:255" json:"library,omitempty"`
	Path      string    `gorm:"size:1024" json:"path,omitempty"`
	TypeName  string    `gorm:"size:255" json:"type,omitempty"`
	Instance  string    `gorm:"size:255" json:"instance,omitempty"`
	Detail    string    `gorm:"type:text" json:"detail,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName overrides the table name used by LoaderEvent.
func (LoaderEvent) TableName() string {
	return "loader_events"
}

// Columns lists the columns the journal writes.
func Columns() []string {
	return []string{"id", "kind", "library", "path", "type_name", "instance", "detail", "created_at"}
}
