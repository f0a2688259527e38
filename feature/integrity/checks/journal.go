package checks

import (
	"fmt"

	"component-loader/core/database"
	"component-loader/feature/journal"

	"gorm.io/gorm"
)

// JournalReport describes the loader_events table.
type JournalReport struct {
	Table          string   `json:"table"`
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "missing_table", "error"
}

// CheckJournal verifies the journal table carries every column the recorder writes.
func CheckJournal(db *gorm.DB) (*JournalReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	table := journal.LoaderEvent{}.TableName()
	report := &JournalReport{Table: table, MissingColumns: []string{}, Status: "ok"}

	if !db.Migrator().HasTable(table) {
		report.Status = "missing_table"
		report.MissingColumns = journal.Columns()
		return report, nil
	}

	missing, err := database.MissingColumns(db, table, journal.Columns())
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		report.Status = "error"
		report.MissingColumns = missing
	}
	return report, nil
}
