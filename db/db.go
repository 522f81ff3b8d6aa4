package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/m0n0x41d/quint-audit/errors"
)

// BusyTimeoutMS is how long a connection waits on a locked database.
const BusyTimeoutMS = 5000

const schema = `
CREATE TABLE IF NOT EXISTS holons (
	id TEXT PRIMARY KEY,
	type TEXT NOT NULL,
	kind TEXT,
	layer TEXT NOT NULL,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	context_id TEXT NOT NULL,
	scope TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS relations (
	source_id TEXT NOT NULL,
	target_id TEXT NOT NULL,
	relation_type TEXT NOT NULL,
	congruence_level INTEGER DEFAULT 3 CHECK(congruence_level BETWEEN 0 AND 3),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (source_id, target_id, relation_type)
);
CREATE TABLE IF NOT EXISTS audit_log (
	id TEXT PRIMARY KEY,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	tool_name TEXT NOT NULL,
	operation TEXT NOT NULL,
	actor TEXT NOT NULL,
	target_id TEXT,
	input_hash TEXT,
	result TEXT NOT NULL,
	details TEXT,
	context_id TEXT NOT NULL DEFAULT 'default'
);
CREATE INDEX IF NOT EXISTS idx_holons_context ON holons(context_id, created_at);
CREATE INDEX IF NOT EXISTS idx_relations_target ON relations(target_id, relation_type);
CREATE INDEX IF NOT EXISTS idx_relations_source ON relations(source_id, relation_type);
CREATE INDEX IF NOT EXISTS idx_audit_log_target ON audit_log(target_id);
`

// fileURI turns a filesystem path into a SQLite file: URI. Each segment is
// escaped so '?', '#' and '%' in directory names stay part of the path.
func fileURI(path string) string {
	segs := strings.Split(filepath.ToSlash(path), "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return "file:" + strings.Join(segs, "/")
}

// Open opens the SQLite database at path. Transactions begin IMMEDIATE so a
// read-modify-write sequence holds the write lock from its first statement.
func Open(path string, logger *zap.SugaredLogger) (*sql.DB, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	logger.Debugw("Opening database", "path", path)

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.StoreFailure(err, "create database directory")
		}
	}

	dsn := fmt.Sprintf("%s?_txlock=immediate&_busy_timeout=%d&_foreign_keys=on&_journal_mode=WAL",
		fileURI(path), BusyTimeoutMS)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.StoreFailure(err, "open database")
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, errors.StoreFailure(err, "open database")
	}

	return conn, nil
}

// Bootstrap creates the tables if they do not exist yet.
func Bootstrap(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		return errors.StoreFailure(err, "init schema")
	}
	return nil
}
