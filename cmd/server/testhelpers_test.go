package main

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var sqliteSchema = []string{
	`CREATE TABLE blueprints (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		fields TEXT NOT NULL DEFAULT '[]',
		tags TEXT DEFAULT '{}',
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`,
	`CREATE TABLE contracts (
		id TEXT PRIMARY KEY,
		blueprint_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Created',
		data TEXT NOT NULL DEFAULT '{}',
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE contract_history (
		id TEXT PRIMARY KEY,
		contract_id TEXT NOT NULL,
		sequence INTEGER NOT NULL,
		status TEXT NOT NULL,
		changed_by_id TEXT NOT NULL,
		changed_by_name TEXT NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		changed_at DATETIME NOT NULL
	);`,
	`CREATE UNIQUE INDEX idx_contract_history_seq ON contract_history(contract_id, sequence);`,
}

func openTestDB(t *testing.T) (*gorm.DB, error) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return gorm.Open(sqlite.Open(fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())), &gorm.Config{})
}

func createSchema(db *gorm.DB) error {
	for _, stmt := range sqliteSchema {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
