package dto

import "time"

type RecordInput struct {
	Kind   string
	Detail string
}

type TailInput struct {
	Limit int
}

type EntryOutput struct {
	ID         string
	Kind       string
	Detail     string
	OccurredAt time.Time
}
