package pdf

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

const tabSize = 8

var newlineNormalizer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// SplitLines normalizes CRLF and CR line endings and splits text into
// logical lines.
func SplitLines(text string) []string {
	return strings.Split(newlineNormalizer.Replace(text), "\n")
}

// WrapLine wraps one logical line to at most width runes per sub-line,
// following Python's textwrap.wrap with default options: tabs expand to
// 8-column stops, ASCII whitespace becomes a space, words break after
// hyphens between letters, and a word longer than width fills the rest of
// the current sub-line before it is split. Whitespace is dropped at
// sub-line ends and at the start of continuation sub-lines, so leading
// indentation survives only on the first. A blank line yields a single
// empty sub-line. Width below 1 disables wrapping.
func WrapLine(line string, width int) []string {
	if width < 1 {
		width = math.MaxInt
	}
	lines := wrapChunks(splitChunks([]rune(mungeWhitespace(line))), width)
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

func isWrapSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// isBlankRune matches Python's str.isspace, which also covers the C0
// separators U+001C..U+001F.
func isBlankRune(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func isBlank(s string) bool {
	return strings.TrimFunc(s, isBlankRune) == ""
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

func isLetterRune(r rune) bool {
	return isWordRune(r) && !unicode.IsDigit(r)
}

func isWordPunct(r rune) bool {
	return isWordRune(r) || strings.ContainsRune(`!"'&.,?`, r)
}

func mungeWhitespace(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	col := 0
	for _, r := range line {
		switch {
		case r == '\t':
			pad := tabSize - col%tabSize
			b.WriteString(strings.Repeat(" ", pad))
			col += pad
		case r == '\n' || r == '\r':
			b.WriteByte(' ')
			col = 0
		case isWrapSpace(r):
			b.WriteByte(' ')
			col++
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}

// splitChunks cuts text into whitespace runs and words. Words end at
// whitespace, after a hyphen joining two letters, or before a run of two
// or more dashes that follows word punctuation.
func splitChunks(text []rune) []string {
	var chunks []string
	for i := 0; i < len(text); {
		j := chunkEnd(text, i)
		chunks = append(chunks, string(text[i:j]))
		i = j
	}
	return chunks
}

func chunkEnd(t []rune, i int) int {
	at := func(k int) rune {
		if k < 0 || k >= len(t) {
			return -1
		}
		return t[k]
	}
	if isWrapSpace(t[i]) {
		j := i + 1
		for j < len(t) && isWrapSpace(t[j]) {
			j++
		}
		return j
	}
	if isWordPunct(at(i - 1)) {
		if end, ok := dashRun(t, i); ok {
			return end
		}
	}
	for j := i + 1; ; j++ {
		if j >= len(t) || isWrapSpace(t[j]) {
			return j
		}
		if t[j] != '-' {
			continue
		}
		behind := (isLetterRune(at(j-2)) && isLetterRune(at(j-1))) ||
			(isLetterRune(at(j-3)) && at(j-2) == '-' && isLetterRune(at(j-1)))
		ahead := isLetterRune(at(j+1)) &&
			(isLetterRune(at(j+2)) || (at(j+2) == '-' && isLetterRune(at(j+3))))
		if behind && ahead {
			return j + 1
		}
		if isWordPunct(t[j-1]) {
			if _, ok := dashRun(t, j); ok {
				return j
			}
		}
	}
}

// dashRun reports the end of a run of two or more dashes at i that is
// followed by a word rune.
func dashRun(t []rune, i int) (int, bool) {
	j := i
	for j < len(t) && t[j] == '-' {
		j++
	}
	if j-i < 2 || j >= len(t) || !isWordRune(t[j]) {
		return 0, false
	}
	return j, true
}

func wrapChunks(chunks []string, width int) []string {
	var lines []string
	for len(chunks) > 0 {
		var cur []string
		curLen := 0
		if len(lines) > 0 && isBlank(chunks[0]) {
			chunks = chunks[1:]
		}
		for len(chunks) > 0 {
			n := utf8.RuneCountInString(chunks[0])
			if curLen+n > width {
				break
			}
			cur = append(cur, chunks[0])
			curLen += n
			chunks = chunks[1:]
		}
		if len(chunks) > 0 && utf8.RuneCountInString(chunks[0]) > width {
			var head string
			head, chunks[0] = breakLongWord(chunks[0], width-curLen)
			cur = append(cur, head)
		}
		if len(cur) > 0 && isBlank(cur[len(cur)-1]) {
			cur = cur[:len(cur)-1]
		}
		if len(cur) > 0 {
			lines = append(lines, strings.Join(cur, ""))
		}
	}
	return lines
}

// breakLongWord splits word so the head fits in spaceLeft runes, preferring
// to break after the last hyphen that has a non-hyphen before it.
func breakLongWord(word string, spaceLeft int) (head, tail string) {
	runes := []rune(word)
	end := spaceLeft
	if len(runes) > spaceLeft {
		prefix := runes[:spaceLeft]
		for h := len(prefix) - 1; h > 0; h-- {
			if prefix[h] != '-' {
				continue
			}
			if strings.Trim(string(prefix[:h]), "-") != "" {
				end = h + 1
			}
			break
		}
	}
	return string(runes[:end]), string(runes[end:])
}
