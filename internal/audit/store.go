// Package audit keeps the verbatim OCR responses next to what was extracted
// from them, in a local sqlite file. The raw payload is the only ground truth
// when a reviewer questions a scanned field.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/entity"
)

// Schema for the scan_audit table. Applied by Open.
const Schema = `
CREATE TABLE IF NOT EXISTS scan_audit (
	id TEXT PRIMARY KEY,
	file_name TEXT NOT NULL,
	raw_json BLOB NOT NULL,
	extracted_json BLOB NOT NULL,
	confidence REAL NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scan_audit_created ON scan_audit(created_at);
`

// Store persists scan audit rows to sqlite.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the audit database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init audit schema: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Record appends one audit row.
func (s *Store) Record(ctx context.Context, rec entity.ScanRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scan_audit (id, file_name, raw_json, extracted_json, confidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.FileName, rec.RawJSON, rec.ExtractedJSON, rec.Confidence,
		rec.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("record scan audit: %w", err)
	}
	s.logger.Info("audit.record.ok", "scan_id", rec.ID, "file_name", rec.FileName)
	return nil
}

// Recent returns the latest n audit rows, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]entity.ScanRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file_name, raw_json, extracted_json, confidence, created_at
		FROM scan_audit ORDER BY created_at DESC, id LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("list scan audit: %w", err)
	}
	defer rows.Close()

	var out []entity.ScanRecord
	for rows.Next() {
		var (
			rec entity.ScanRecord
			id  string
			ts  int64
		)
		if err := rows.Scan(&id, &rec.FileName, &rec.RawJSON, &rec.ExtractedJSON, &rec.Confidence, &ts); err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		rec.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse audit id: %w", err)
		}
		rec.CreatedAt = time.Unix(ts, 0).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
