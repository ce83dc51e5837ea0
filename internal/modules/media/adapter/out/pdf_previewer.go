package out

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/SdReum/classmood-cli/internal/modules/media/domain"
	mediaout "github.com/SdReum/classmood-cli/internal/modules/media/port/out"
	"rsc.io/pdf"
)

const excerptLimit = 600

// LocalPreviewer inspects a downloaded file on disk. PDFs get a page
// count and first-page excerpt, readable text gets its head, anything
// else is reported as binary.
type LocalPreviewer struct{}

func NewLocalPreviewer() mediaout.Previewer {
	return &LocalPreviewer{}
}

func (p *LocalPreviewer) Preview(_ context.Context, path string) (domain.Preview, error) {
	head := make([]byte, 4096)
	file, err := os.Open(path)
	if err != nil {
		return domain.Preview{}, fmt.Errorf("open %s: %w", path, err)
	}
	n, readErr := file.Read(head)
	_ = file.Close()
	if readErr != nil && n == 0 {
		head = head[:0]
	} else {
		head = head[:n]
	}

	if bytes.HasPrefix(head, []byte("%PDF")) {
		return previewPDF(path)
	}
	if utf8.Valid(head) {
		return domain.Preview{Kind: domain.PreviewText, Excerpt: clipExcerpt(string(head))}, nil
	}
	return domain.Preview{Kind: domain.PreviewBinary}, nil
}

func previewPDF(path string) (domain.Preview, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return domain.Preview{}, fmt.Errorf("open pdf: %w", err)
	}
	total := doc.NumPage()
	preview := domain.Preview{Kind: domain.PreviewPDF, PageCount: total}
	if total == 0 {
		return preview, nil
	}
	page := doc.Page(1)
	if page.V.IsNull() {
		return preview, nil
	}
	content := page.Content()
	parts := make([]string, 0, len(content.Text))
	for _, text := range content.Text {
		if strings.TrimSpace(text.S) == "" {
			continue
		}
		parts = append(parts, text.S)
	}
	preview.Excerpt = clipExcerpt(strings.Join(parts, " "))
	return preview, nil
}

func clipExcerpt(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= excerptLimit {
		return s
	}
	clipped := s[:excerptLimit]
	for !utf8.ValidString(clipped) && len(clipped) > 0 {
		clipped = clipped[:len(clipped)-1]
	}
	return clipped + "..."
}
