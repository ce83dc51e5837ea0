package domain

import (
	"sort"
	"time"
)

// File is one uploaded lecture artifact as the backend reports it.
type File struct {
	ID         int64
	Filename   string
	UploadedAt time.Time
}

type UploadResult struct {
	Filename   string
	StoredPath string
}

// SortNewestFirst orders files by upload time descending, newest at the
// top, with the id as a tiebreaker so equal timestamps stay stable.
func SortNewestFirst(files []File) {
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].UploadedAt.Equal(files[j].UploadedAt) {
			return files[i].ID > files[j].ID
		}
		return files[i].UploadedAt.After(files[j].UploadedAt)
	})
}

type PreviewKind string

const (
	PreviewPDF    PreviewKind = "pdf"
	PreviewText   PreviewKind = "text"
	PreviewBinary PreviewKind = "binary"
)

// Preview is a local, best-effort look inside a downloaded file.
type Preview struct {
	Kind      PreviewKind
	PageCount int
	Excerpt   string
}
