package pdfcreate

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrMissingOutputPath reports a request without a destination.
var ErrMissingOutputPath = errors.New("missing output_path")

// Validate checks that the request names a destination. Title and body are
// never rejected; see Normalized.
func (r Request) Validate() error {
	if strings.TrimSpace(r.OutputPath) == "" {
		return ErrMissingOutputPath
	}
	return nil
}

// Normalized returns a copy of r with invalid UTF-8 and control characters
// other than tab and line breaks removed from title and body.
func (r Request) Normalized() Request {
	r.Title = sanitizeText(r.Title)
	r.ContentMarkdown = sanitizeText(r.ContentMarkdown)
	return r
}

func isControlRune(r rune) bool {
	if r == '\n' || r == '\r' || r == '\t' {
		return false
	}
	return r < 0x20 || r == 0x7F
}

func sanitizeText(s string) string {
	clean := true
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if (r == utf8.RuneError && size == 1) || isControlRune(r) {
			clean = false
			break
		}
		i += size
	}
	if clean {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if (r == utf8.RuneError && size == 1) || isControlRune(r) {
			i += size
			continue
		}
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}
