package out

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SdReum/classmood-cli/internal/modules/activity/domain"
	activityout "github.com/SdReum/classmood-cli/internal/modules/activity/port/out"
)

// FileActivityLog appends entries as JSON lines. Corrupt lines are
// skipped on read so one bad write never poisons the whole journal.
type FileActivityLog struct {
	path string
}

func NewFileActivityLog(dataDir string) activityout.ActivityLog {
	return &FileActivityLog{path: filepath.Join(dataDir, "activity.log")}
}

func (l *FileActivityLog) Append(_ context.Context, entry domain.Entry) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create activity dir: %w", err)
	}
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open activity log: %w", err)
	}
	defer file.Close()
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode activity entry: %w", err)
	}
	if _, err := file.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("write activity log: %w", err)
	}
	return nil
}

func (l *FileActivityLog) Tail(_ context.Context, limit int) ([]domain.Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	file, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Entry{}, nil
		}
		return nil, fmt.Errorf("open activity log: %w", err)
	}
	defer file.Close()

	buffer := make([]domain.Entry, 0, limit)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		entry := domain.Entry{}
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		if len(buffer) < limit {
			buffer = append(buffer, entry)
			continue
		}
		copy(buffer, buffer[1:])
		buffer[len(buffer)-1] = entry
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan activity log: %w", err)
	}
	return buffer, nil
}
