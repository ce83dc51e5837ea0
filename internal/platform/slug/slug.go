package slug

import (
	"path/filepath"
	"regexp"
	"strings"
)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled"
	}
	return s
}

// Filename sanitizes a server-provided filename for the local disk,
// slugging the stem while keeping a recognizable extension.
func Filename(input string) string {
	base := filepath.Base(strings.TrimSpace(input))
	ext := strings.ToLower(filepath.Ext(base))
	stem := Make(strings.TrimSuffix(base, filepath.Ext(base)))
	if len(ext) > 1 && nonAlphaNum.MatchString(ext[1:]) {
		ext = ""
	}
	return stem + ext
}
