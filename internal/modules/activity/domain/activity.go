package domain

import (
	"fmt"
	"strings"
	"time"
)

type Kind string

const (
	KindLogin    Kind = "login"
	KindLogout   Kind = "logout"
	KindUpload   Kind = "upload"
	KindDelete   Kind = "delete"
	KindDownload Kind = "download"
	KindAnalyze  Kind = "analyze"
	KindPlugin   Kind = "plugin"
)

func (k Kind) Validate() error {
	switch k {
	case KindLogin, KindLogout, KindUpload, KindDelete, KindDownload, KindAnalyze, KindPlugin:
		return nil
	default:
		return fmt.Errorf("unknown activity kind: %s", k)
	}
}

// Entry is one line of the local activity journal. Entries only describe
// what this client did; the backend keeps no comparable record.
type Entry struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	Detail     string    `json:"detail"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("entry id is required")
	}
	if err := e.Kind.Validate(); err != nil {
		return err
	}
	if e.OccurredAt.IsZero() {
		return fmt.Errorf("entry timestamp is required")
	}
	return nil
}
