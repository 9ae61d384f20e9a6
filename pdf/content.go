package pdf

import (
	"strconv"
	"strings"
)

// fontResource is the resource name the page dictionary binds to object 5.
const fontResource = "/F1"

// BuildContentStream returns the page content stream showing title and body
// with cfg's layout. The stream is ISO-8859-1 encoded; runes outside that
// range are dropped. Content that overflows the page is not paginated.
func BuildContentStream(title, body string, cfg Config) []byte {
	ops := make([]string, 0, 8)
	ops = append(ops,
		"BT",
		fontResource+" "+formatNumber(cfg.TitleFontSize)+" Tf",
		formatNumber(cfg.MarginLeft)+" "+formatNumber(cfg.MarginTop)+" Td",
		showText(title),
	)

	if !isBlank(body) {
		lineDown := moveDown(cfg.LineHeight)
		ops = append(ops,
			fontResource+" "+formatNumber(cfg.BodyFontSize)+" Tf",
			moveDown(2*cfg.LineHeight),
		)
		for _, line := range SplitLines(body) {
			for i, sub := range WrapLine(line, cfg.WrapWidth) {
				if i > 0 {
					ops = append(ops, lineDown)
				}
				ops = append(ops, showText(sub))
			}
			ops = append(ops, lineDown)
		}
	}
	ops = append(ops, "ET")
	return encodeLatin1(strings.Join(ops, "\n"))
}

func showText(s string) string {
	return "(" + escapeLiteral(s) + ") Tj"
}

func moveDown(dy float64) string {
	return "0 -" + formatNumber(dy) + " Td"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
