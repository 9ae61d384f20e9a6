package pdfcreate

import "strings"

// StripFrontMatter removes a leading YAML (---), TOML (+++) or JSON (;;;)
// front matter block from a body. The block is only recognised when the
// line after the opening delimiter looks like metadata and a closing
// delimiter exists; otherwise body is returned unchanged.
func StripFrontMatter(body string) string {
	first, rest, ok := cutLine(body)
	if !ok {
		return body
	}
	delim, isFrontMatter := openingDelimiter(first)
	if !isFrontMatter {
		return body
	}
	second, _, ok := cutLine(rest)
	if !ok || !metadataLikely(second) {
		return body
	}
	for remaining := rest; remaining != ""; {
		line, next, _ := cutLine(remaining)
		if strings.TrimSpace(line) == delim {
			return next
		}
		remaining = next
	}
	return body
}

// cutLine splits off the first line, dropping its terminator and any
// trailing carriage return. ok is false for an empty input.
func cutLine(s string) (line, rest string, ok bool) {
	if s == "" {
		return "", "", false
	}
	line, rest, _ = strings.Cut(s, "\n")
	return strings.TrimSuffix(line, "\r"), rest, true
}

func openingDelimiter(line string) (string, bool) {
	switch trimmed := strings.TrimSpace(strings.TrimPrefix(line, "\ufeff")); trimmed {
	case "---", "+++", ";;;":
		return trimmed, true
	default:
		return "", false
	}
}

func metadataLikely(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return true
	}
	return strings.ContainsAny(trimmed, ":=")
}
