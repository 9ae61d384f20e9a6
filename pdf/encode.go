package pdf

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	"(", `\(`,
	")", `\)`,
)

// escapeLiteral escapes the delimiters of a PDF literal string.
func escapeLiteral(s string) string {
	return literalEscaper.Replace(s)
}

// encodeLatin1 converts s to ISO-8859-1, dropping runes it cannot represent.
// Decomposed sequences are not composed first, so a combining accent is
// dropped and its base letter kept.
func encodeLatin1(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if b, ok := charmap.ISO8859_1.EncodeRune(r); ok {
			out = append(out, b)
		}
	}
	return out
}
