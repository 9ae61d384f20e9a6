package pdf

import (
	"fmt"
	"strconv"
)

const header = "%PDF-1.4\n"

// xrefEntrySize is the fixed width of one cross-reference entry, line
// terminator included.
const xrefEntrySize = 20

// Layout records where each part of an assembled document starts.
type Layout struct {
	// Offsets holds the byte offset of "n 0 obj" at index n-1.
	Offsets [objectCount]int64
	// XRef is the byte offset of the "xref" keyword.
	XRef int64
}

// Assemble builds a complete single-page PDF document showing title and
// body. Zero fields in cfg take their DefaultConfig values; an invalid cfg
// falls back to DefaultConfig entirely so that Assemble never fails.
func Assemble(title, body string, cfg Config) []byte {
	data, _ := AssembleLayout(title, body, cfg)
	return data
}

// AssembleLayout is Assemble that also reports object and xref offsets.
func AssembleLayout(title, body string, cfg Config) ([]byte, Layout) {
	resolved, err := Resolve(cfg)
	if err != nil {
		resolved = DefaultConfig()
	}
	return assemble(documentObjects(title, body, resolved))
}

func assemble(objs [objectCount]object) ([]byte, Layout) {
	var layout Layout
	buf := make([]byte, 0, 1024)
	buf = append(buf, header...)

	for i, obj := range objs {
		layout.Offsets[i] = int64(len(buf))
		buf = strconv.AppendInt(buf, int64(i+1), 10)
		buf = append(buf, " 0 obj\n"...)
		buf = obj.appendBody(buf)
		buf = append(buf, "\nendobj\n"...)
	}

	layout.XRef = int64(len(buf))
	buf = append(buf, "xref\n"...)
	buf = fmt.Appendf(buf, "0 %d\n", objectCount+1)
	buf = append(buf, "0000000000 65535 f \n"...)
	for _, off := range layout.Offsets {
		buf = appendXRefEntry(buf, off)
	}

	buf = append(buf, "trailer\n"...)
	buf = fmt.Appendf(buf, "<< /Size %d /Root ", objectCount+1)
	buf = appendRef(buf, catalogObj)
	buf = append(buf, " >>\nstartxref\n"...)
	buf = strconv.AppendInt(buf, layout.XRef, 10)
	buf = append(buf, "\n%%EOF\n"...)
	return buf, layout
}

func appendXRefEntry(dst []byte, offset int64) []byte {
	return fmt.Appendf(dst, "%010d 00000 n \n", offset)
}
