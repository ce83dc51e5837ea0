package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SdReum/classmood-cli/internal/modules/insights/domain"
	insightsout "github.com/SdReum/classmood-cli/internal/modules/insights/port/out"
	apperrors "github.com/SdReum/classmood-cli/internal/platform/errors"

	_ "modernc.org/sqlite"
)

// SQLiteSummaryStore keeps one row per analyzed file. It shares the
// database file with the media list cache and resolves display names
// from cached_files at read time, so summaries survive file renames
// without a write-path dependency on the media module.
type SQLiteSummaryStore struct {
	db *sql.DB
}

func NewSQLiteSummaryStore(dbPath string) (insightsout.SummaryStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s := &SQLiteSummaryStore{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteSummaryStore) ensureSchema(ctx context.Context) error {
	const ddl = `
PRAGMA busy_timeout = 5000;
CREATE TABLE IF NOT EXISTS engagement_summaries (
  file_id INTEGER PRIMARY KEY,
  points INTEGER NOT NULL,
  min_value REAL NOT NULL,
  max_value REAL NOT NULL,
  mean_value REAL NOT NULL,
  analyzed_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_summaries_mean ON engagement_summaries(mean_value);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create engagement_summaries table: %w", err)
	}
	return nil
}

func (s *SQLiteSummaryStore) Upsert(ctx context.Context, summary domain.Summary) error {
	const stmt = `
INSERT INTO engagement_summaries (file_id, points, min_value, max_value, mean_value, analyzed_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(file_id) DO UPDATE SET
  points = excluded.points,
  min_value = excluded.min_value,
  max_value = excluded.max_value,
  mean_value = excluded.mean_value,
  analyzed_at = excluded.analyzed_at;
`
	_, err := s.db.ExecContext(ctx, stmt,
		summary.FileID, summary.Points, summary.MinValue, summary.MaxValue, summary.MeanValue,
		summary.AnalyzedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("upsert summary for file %d: %w", summary.FileID, err)
	}
	return nil
}

func (s *SQLiteSummaryStore) Top(ctx context.Context, limit int) ([]domain.Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT file_id, points, min_value, max_value, mean_value, analyzed_at
FROM engagement_summaries
ORDER BY mean_value DESC, file_id ASC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top summaries: %w", err)
	}
	defer rows.Close()

	summaries, err := scanSummaries(rows)
	if err != nil {
		return nil, err
	}
	if err := s.attachFilenames(ctx, summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *SQLiteSummaryStore) ForFile(ctx context.Context, fileID int64) (domain.Summary, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT file_id, points, min_value, max_value, mean_value, analyzed_at
FROM engagement_summaries
WHERE file_id = ?;
`, fileID)
	summary, err := scanSummary(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Summary{}, fmt.Errorf("%w: no summary for file %d", apperrors.ErrNotFound, fileID)
		}
		return domain.Summary{}, fmt.Errorf("query summary for file %d: %w", fileID, err)
	}
	summaries := []domain.Summary{summary}
	if err := s.attachFilenames(ctx, summaries); err != nil {
		return domain.Summary{}, err
	}
	return summaries[0], nil
}

// attachFilenames fills display names from the media module's
// cached_files table. A missing table just means nothing was ever
// listed on this machine, which is not an error.
func (s *SQLiteSummaryStore) attachFilenames(ctx context.Context, summaries []domain.Summary) error {
	if len(summaries) == 0 {
		return nil
	}
	placeholders := make([]string, 0, len(summaries))
	args := make([]any, 0, len(summaries))
	for _, summary := range summaries {
		placeholders = append(placeholders, "?")
		args = append(args, summary.FileID)
	}
	query := fmt.Sprintf("SELECT id, filename FROM cached_files WHERE id IN (%s)", strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "no such table") {
			return nil
		}
		return fmt.Errorf("lookup filenames: %w", err)
	}
	defer rows.Close()

	names := map[int64]string{}
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return fmt.Errorf("scan filename: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate filenames: %w", err)
	}
	for i := range summaries {
		summaries[i].Filename = names[summaries[i].FileID]
	}
	return nil
}

func scanSummaries(rows *sql.Rows) ([]domain.Summary, error) {
	out := make([]domain.Summary, 0)
	for rows.Next() {
		summary, err := scanSummary(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		out = append(out, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summaries: %w", err)
	}
	return out, nil
}

func scanSummary(scan func(...any) error) (domain.Summary, error) {
	var (
		summary domain.Summary
		raw     string
	)
	if err := scan(&summary.FileID, &summary.Points, &summary.MinValue, &summary.MaxValue, &summary.MeanValue, &raw); err != nil {
		return domain.Summary{}, err
	}
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		summary.AnalyzedAt = ts
	}
	return summary, nil
}
