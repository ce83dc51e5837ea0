package domain

import (
	"fmt"
	"time"
)

// Summary is the engagement digest of one analyzed file. Filename is
// resolved from the cached listing at read time and may be empty when
// the file was never listed on this machine.
type Summary struct {
	FileID     int64
	Filename   string
	Points     int
	MinValue   float64
	MaxValue   float64
	MeanValue  float64
	AnalyzedAt time.Time
}

func (s Summary) Validate() error {
	if s.FileID <= 0 {
		return fmt.Errorf("file id is required")
	}
	if s.Points <= 0 {
		return fmt.Errorf("summary needs at least one point")
	}
	if s.MinValue > s.MaxValue {
		return fmt.Errorf("min %.3f exceeds max %.3f", s.MinValue, s.MaxValue)
	}
	return nil
}
