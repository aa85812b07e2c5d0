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

// RunMigrations creates the schema. Snapshots are append-only: the composite
// (project_id, version) primary key makes version reuse impossible at the
// storage level, and a partial unique index holds the one-active-per-project
// invariant.
func (db *DB) RunMigrations() error {
	migration := `
-- Projects table
CREATE TABLE projects (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX idx_tenant_projects ON projects(tenant_id);

-- Modules table; node and edge sets are stored as JSON documents
CREATE TABLE modules (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    project_id TEXT NOT NULL,
    ord INTEGER NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('proposed', 'approved', 'modified', 'rejected')),
    confidence TEXT NOT NULL CHECK(confidence IN ('high', 'medium', 'low')),
    nodes TEXT NOT NULL,
    edges TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    modified_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (project_id) REFERENCES projects(id)
);
CREATE INDEX idx_tenant_modules ON modules(tenant_id);
CREATE INDEX idx_project_modules ON modules(project_id);
CREATE INDEX idx_module_status ON modules(status);

-- Versioned canonical snapshots, append-only
CREATE TABLE snapshots (
    tenant_id TEXT NOT NULL,
    project_id TEXT NOT NULL,
    version INTEGER NOT NULL CHECK(version >= 1),
    module_ids TEXT NOT NULL,
    nodes TEXT NOT NULL,
    edges TEXT NOT NULL,
    active INTEGER NOT NULL DEFAULT 0,
    created_by TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (project_id, version),
    FOREIGN KEY (project_id) REFERENCES projects(id)
);
CREATE INDEX idx_tenant_snapshots ON snapshots(tenant_id);
CREATE UNIQUE INDEX idx_one_active_snapshot ON snapshots(project_id) WHERE active = 1;

-- Review items raised by conflict detection
CREATE TABLE review_items (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    project_id TEXT NOT NULL,
    module_id TEXT NOT NULL,
    type TEXT NOT NULL,
    node_id TEXT NOT NULL DEFAULT '',
    message TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('pending', 'resolved')),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    resolved_at TIMESTAMP,
    FOREIGN KEY (project_id) REFERENCES projects(id),
    FOREIGN KEY (module_id) REFERENCES modules(id)
);
CREATE INDEX idx_tenant_reviews ON review_items(tenant_id);
CREATE INDEX idx_project_reviews ON review_items(project_id);
CREATE INDEX idx_module_reviews ON review_items(module_id);
CREATE INDEX idx_review_status ON review_items(status);

-- Audit log, append-only
CREATE TABLE audit_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    tenant_id TEXT NOT NULL,
    project_id TEXT NOT NULL,
    module_id TEXT,
    action TEXT NOT NULL,
    actor TEXT NOT NULL DEFAULT '',
    reason TEXT,
    metadata TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX idx_tenant_audit ON audit_log(tenant_id);
CREATE INDEX idx_project_audit ON audit_log(project_id);
CREATE INDEX idx_module_audit ON audit_log(module_id);
CREATE INDEX idx_audit_created_at ON audit_log(created_at);

-- API keys for authentication
CREATE TABLE api_keys (
    key_hash TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    last_used TIMESTAMP,
    description TEXT
);
CREATE INDEX idx_tenant_keys ON api_keys(tenant_id);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
