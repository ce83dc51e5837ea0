package dto

import "time"

type UploadInput struct {
	Paths []string
}

type UploadedFileOutput struct {
	Filename   string
	StoredPath string
}

type UploadOutput struct {
	Files []UploadedFileOutput
}

type FileOutput struct {
	ID         int64
	Filename   string
	UploadedAt time.Time
}

type DeleteInput struct {
	ID int64
	// Confirmed must be set by the caller after an explicit user
	// confirmation; an unconfirmed delete is aborted without touching
	// the backend.
	Confirmed bool
}

type DeleteOutput struct {
	Deleted bool
	Aborted bool
	// Files is the refreshed list; it is populated even when the delete
	// itself failed, because the refresh always runs exactly once.
	Files []FileOutput
}

type DownloadInput struct {
	ID  int64
	Dir string
}

type DownloadOutput struct {
	Path string
}

type OpenInput struct {
	ID int64
}

type OpenOutput struct {
	Path string
}

type PreviewInput struct {
	ID int64
}

type PreviewOutput struct {
	Kind      string
	PageCount int
	Excerpt   string
}
