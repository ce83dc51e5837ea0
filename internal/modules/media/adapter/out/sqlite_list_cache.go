package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/SdReum/classmood-cli/internal/modules/media/domain"
	mediaout "github.com/SdReum/classmood-cli/internal/modules/media/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteListCache struct {
	db *sql.DB
}

func NewSQLiteListCache(dbPath string) (mediaout.ListCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	c := &SQLiteListCache{db: db}
	if err := c.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *SQLiteListCache) ensureSchema(ctx context.Context) error {
	const ddl = `
PRAGMA busy_timeout = 5000;
CREATE TABLE IF NOT EXISTS cached_files (
  id INTEGER PRIMARY KEY,
  filename TEXT NOT NULL,
  uploaded_at TEXT NOT NULL
);
`
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create cached_files table: %w", err)
	}
	return nil
}

// Replace swaps the cached listing in one transaction, so readers never
// observe a half-written refresh.
func (c *SQLiteListCache) Replace(ctx context.Context, files []domain.File) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache refresh: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cached_files;`); err != nil {
		return fmt.Errorf("clear cached files: %w", err)
	}
	const stmt = `
INSERT INTO cached_files (id, filename, uploaded_at)
VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET filename = excluded.filename, uploaded_at = excluded.uploaded_at;
`
	for _, f := range files {
		if _, err := tx.ExecContext(ctx, stmt, f.ID, f.Filename, f.UploadedAt.UTC().Format(time.RFC3339Nano)); err != nil {
			return fmt.Errorf("cache file %d: %w", f.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cache refresh: %w", err)
	}
	return nil
}

func (c *SQLiteListCache) Files(ctx context.Context) ([]domain.File, error) {
	rows, err := c.db.QueryContext(ctx, `
SELECT id, filename, uploaded_at
FROM cached_files
ORDER BY uploaded_at DESC, id DESC;
`)
	if err != nil {
		return nil, fmt.Errorf("query cached files: %w", err)
	}
	defer rows.Close()

	out := make([]domain.File, 0)
	for rows.Next() {
		var (
			file domain.File
			raw  string
		)
		if err := rows.Scan(&file.ID, &file.Filename, &raw); err != nil {
			return nil, fmt.Errorf("scan cached file: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			file.UploadedAt = ts
		}
		out = append(out, file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cached files: %w", err)
	}
	return out, nil
}
