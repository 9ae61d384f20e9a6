package pdf

import (
	"bytes"
	"testing"
)

func TestEscapeLiteral(t *testing.T) {
	cases := map[string]string{
		"plain":    "plain",
		"(x)":      `\(x\)`,
		`a\b`:      `a\\b`,
		`\(`:       `\\\(`,
		"":         "",
		"ü and )(": `ü and \)\(`,
	}
	for in, want := range cases {
		if got := escapeLiteral(in); got != want {
			t.Fatalf("escapeLiteral(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEncodeLatin1(t *testing.T) {
	cases := []struct {
		in   string
		want []byte
	}{
		{"ascii", []byte("ascii")},
		{"café", []byte("caf\xe9")},
		{"cafe\u0301", []byte("cafe")},
		{"€100", []byte("100")},
		{"日本語", []byte{}},
		{"\xff\xfe", []byte{}},
	}
	for _, tc := range cases {
		if got := encodeLatin1(tc.in); !bytes.Equal(got, tc.want) {
			t.Fatalf("encodeLatin1(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
