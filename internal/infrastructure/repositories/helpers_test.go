package repositories

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createBlueprintTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE blueprints (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		fields TEXT NOT NULL DEFAULT '[]',
		tags TEXT DEFAULT '{}',
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createContractTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE contracts (
		id TEXT PRIMARY KEY,
		blueprint_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Created',
		data TEXT NOT NULL DEFAULT '{}',
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE contract_history (
		id TEXT PRIMARY KEY,
		contract_id TEXT NOT NULL,
		sequence INTEGER NOT NULL,
		status TEXT NOT NULL,
		changed_by_id TEXT NOT NULL,
		changed_by_name TEXT NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		changed_at DATETIME NOT NULL
	);`)
	mustExec(t, db, `CREATE UNIQUE INDEX idx_contract_history_seq ON contract_history(contract_id, sequence);`)
}

func createAllTables(t *testing.T, db *gorm.DB) {
	createBlueprintTable(t, db)
	createContractTables(t, db)
}
