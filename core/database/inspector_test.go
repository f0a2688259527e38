package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_events (id INTEGER PRIMARY KEY, kind TEXT, short_name TEXT)").Error
	require.NoError(t, err)

	columns, err := TableColumns(db, "test_events")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}
	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["kind"])
	assert.Equal(t, "text", colMap["short_name"])

	// PRAGMA table_info returns no rows for a missing table.
	cols, err := TableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE test_events (id INTEGER PRIMARY KEY, kind TEXT)").Error)

	missing, err := MissingColumns(db, "test_events", []string{"id", "Kind", "type_name", "detail"})
	require.NoError(t, err)
	assert.Equal(t, []string{"detail", "type_name"}, missing)
}

func TestTableColumns_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("ID", "BIGINT UNSIGNED", "NO", "PRI", nil, "auto_increment").
		AddRow("Kind", "VARCHAR(32)", "NO", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `loader_events`").WillReturnRows(rows)

	columns, err := TableColumns(db, "loader_events")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "id", columns[0].Field)
	assert.Equal(t, "bigint unsigned", columns[0].Type)
	assert.Equal(t, "varchar(32)", columns[1].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}
