package dto

import "time"

type RecordInput struct {
	FileID int64
	Points int
	Min    float64
	Max    float64
	Mean   float64
}

type TopInput struct {
	Limit int
}

type SummaryOutput struct {
	FileID     int64
	Filename   string
	Points     int
	Min        float64
	Max        float64
	Mean       float64
	AnalyzedAt time.Time
}
