package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema. Rows are never physically deleted, so
// there is no cleanup DDL; deleted entities stay behind their status flag.
func (db *DB) RunMigrations() error {
	migration := `
-- Commit ledger: existence only, one row per issued commit id. The
-- commit_id column on the entity tables is the join key grouping rows
-- written in the same logical transaction.
CREATE TABLE commits (
    commit_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    created TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (commit_id, user_id)
);
CREATE INDEX idx_user_commits ON commits(user_id);

-- Clients table
CREATE TABLE clients (
    uuid TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    note TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL CHECK(status IN ('active', 'deleted')),
    commit_id TEXT NOT NULL,
    changed TIMESTAMP NOT NULL
);
CREATE INDEX idx_user_clients ON clients(user_id);
CREATE INDEX idx_client_status ON clients(status);

-- Projects table
CREATE TABLE projects (
    uuid TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    client_uuid TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('active', 'deleted')),
    commit_id TEXT NOT NULL,
    changed TIMESTAMP NOT NULL,
    FOREIGN KEY (client_uuid) REFERENCES clients(uuid)
);
CREATE INDEX idx_user_projects ON projects(user_id);
CREATE INDEX idx_project_parent ON projects(client_uuid);
CREATE INDEX idx_project_status ON projects(status);

-- Tasks table
CREATE TABLE tasks (
    uuid TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    project_uuid TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('active', 'deleted')),
    commit_id TEXT NOT NULL,
    changed TIMESTAMP NOT NULL,
    FOREIGN KEY (project_uuid) REFERENCES projects(uuid)
);
CREATE INDEX idx_user_tasks ON tasks(user_id);
CREATE INDEX idx_task_parent ON tasks(project_uuid);
CREATE INDEX idx_task_status ON tasks(status);

-- Time entries table
CREATE TABLE times (
    uuid TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL DEFAULT '',
    task_uuid TEXT NOT NULL,
    start_time TIMESTAMP NOT NULL,
    end_time TIMESTAMP NOT NULL,
    note TEXT NOT NULL DEFAULT '',
    payment_status TEXT NOT NULL DEFAULT 'unpaid' CHECK(payment_status IN ('unpaid', 'paid')),
    status TEXT NOT NULL CHECK(status IN ('active', 'deleted')),
    commit_id TEXT NOT NULL,
    changed TIMESTAMP NOT NULL,
    FOREIGN KEY (task_uuid) REFERENCES tasks(uuid)
);
CREATE INDEX idx_user_times ON times(user_id);
CREATE INDEX idx_time_parent ON times(task_uuid);
CREATE INDEX idx_time_status ON times(status);
CREATE INDEX idx_time_start ON times(start_time);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
