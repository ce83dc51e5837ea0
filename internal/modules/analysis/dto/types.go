package dto

import "github.com/SdReum/classmood-cli/internal/modules/analysis/domain"

type AnalyzeInput struct {
	FileID int64
}

// PointOutput keeps the backend's wire names, so a marshaled series
// round-trips through plugins unchanged.
type PointOutput struct {
	T     float64 `json:"t"`
	Value float64 `json:"value"`
}

type AnalyzeOutput struct {
	FileID int64
	Points int
	Min    float64
	Max    float64
	Mean   float64
}

type ChartInput struct {
	FileID int64
	// Width and Height override the default layout when positive.
	Width  int
	Height int
}

type ChartOutput struct {
	Plot   domain.Plot
	Points int
}

type ExportInput struct {
	FileID int64
	// Path of the PNG to write. Empty picks a default under the data dir.
	Path   string
	Width  int
	Height int
}

// ExportOutput.Path is empty when the series held no samples and no
// file was written.
type ExportOutput struct {
	Path   string
	Points int
}
