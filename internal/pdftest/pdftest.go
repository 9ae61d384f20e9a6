// Package pdftest inspects classic-xref PDF files produced by this module.
// It is deliberately strict about the byte layout and only meant for tests.
package pdftest

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// XRefEntry is one parsed cross-reference table entry.
type XRefEntry struct {
	Offset     int64
	Generation int
	InUse      bool
}

// File is the parsed structure of a PDF file.
type File struct {
	Header    string
	StartXRef int64
	XRef      []XRefEntry
	Trailer   string
	// Objects maps object numbers to the bytes between "n 0 obj\n" and
	// "\nendobj".
	Objects map[int][]byte
}

var (
	sizeRe   = regexp.MustCompile(`/Size (\d+)`)
	rootRe   = regexp.MustCompile(`/Root (\d+) 0 R`)
	lengthRe = regexp.MustCompile(`^<< /Length (\d+) >>\nstream\n`)
)

// Parse reads the header, the xref table located through startxref, the
// trailer and every in-use object.
func Parse(data []byte) (*File, error) {
	nl := bytes.IndexByte(data, '\n')
	if nl < 0 {
		return nil, errors.New("pdftest: missing header line")
	}
	f := &File{Header: string(data[:nl]), Objects: make(map[int][]byte)}

	if !bytes.HasSuffix(data, []byte("\n%%EOF\n")) {
		return nil, errors.New("pdftest: missing %%EOF terminator")
	}
	sx := bytes.LastIndex(data, []byte("startxref\n"))
	if sx < 0 {
		return nil, errors.New("pdftest: missing startxref")
	}
	rest := data[sx+len("startxref\n"):]
	end := bytes.IndexByte(rest, '\n')
	pos, err := strconv.ParseInt(string(rest[:end]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("pdftest: startxref value: %w", err)
	}
	f.StartXRef = pos
	if pos < 0 || pos >= int64(len(data)) || !bytes.HasPrefix(data[pos:], []byte("xref\n")) {
		return nil, fmt.Errorf("pdftest: startxref %d does not point at xref", pos)
	}

	cur := data[pos+int64(len("xref\n")):]
	end = bytes.IndexByte(cur, '\n')
	var first, count int
	if _, err := fmt.Sscanf(string(cur[:end]), "%d %d", &first, &count); err != nil {
		return nil, fmt.Errorf("pdftest: xref subsection header: %w", err)
	}
	if first != 0 {
		return nil, fmt.Errorf("pdftest: xref subsection starts at %d", first)
	}
	cur = cur[end+1:]
	for i := 0; i < count; i++ {
		if len(cur) < 20 {
			return nil, fmt.Errorf("pdftest: xref entry %d truncated", i)
		}
		line := cur[:20]
		if line[10] != ' ' || line[16] != ' ' || line[18] != ' ' || line[19] != '\n' {
			return nil, fmt.Errorf("pdftest: xref entry %d malformed: %q", i, line)
		}
		off, err := strconv.ParseInt(string(line[:10]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("pdftest: xref entry %d offset: %w", i, err)
		}
		gen, err := strconv.Atoi(string(line[11:16]))
		if err != nil {
			return nil, fmt.Errorf("pdftest: xref entry %d generation: %w", i, err)
		}
		f.XRef = append(f.XRef, XRefEntry{Offset: off, Generation: gen, InUse: line[17] == 'n'})
		cur = cur[20:]
	}
	if !bytes.HasPrefix(cur, []byte("trailer\n")) {
		return nil, errors.New("pdftest: missing trailer after xref")
	}
	cur = cur[len("trailer\n"):]
	f.Trailer = string(cur[:bytes.Index(cur, []byte("\nstartxref"))])

	for num, entry := range f.XRef {
		if !entry.InUse {
			continue
		}
		marker := []byte(strconv.Itoa(num) + " 0 obj\n")
		if entry.Offset < 0 || entry.Offset >= pos || !bytes.HasPrefix(data[entry.Offset:], marker) {
			return nil, fmt.Errorf("pdftest: xref offset %d of object %d does not point at %q", entry.Offset, num, marker)
		}
		obj := data[entry.Offset+int64(len(marker)):]
		stop := bytes.Index(obj, []byte("\nendobj\n"))
		if stop < 0 {
			return nil, fmt.Errorf("pdftest: object %d has no endobj", num)
		}
		if m := lengthRe.FindSubmatch(obj); m != nil {
			// stream data may contain "endobj"; skip past it by length
			n, _ := strconv.Atoi(string(m[1]))
			streamEnd := len(m[0]) + n
			if streamEnd > len(obj) {
				return nil, fmt.Errorf("pdftest: object %d stream overruns file", num)
			}
			stop = streamEnd + bytes.Index(obj[streamEnd:], []byte("\nendobj\n"))
		}
		f.Objects[num] = obj[:stop]
	}
	return f, nil
}

// Check parses data and verifies the invariants every document from this
// module must satisfy: PDF header, contiguous in-use objects after a free
// object 0, /Size matching the table, /Root resolving and exact stream
// lengths.
func Check(data []byte) (*File, error) {
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if f.Header != "%PDF-1.4" {
		return nil, fmt.Errorf("pdftest: header %q", f.Header)
	}
	if len(f.XRef) == 0 || f.XRef[0].InUse || f.XRef[0].Generation != 65535 {
		return nil, errors.New("pdftest: object 0 must be the free list head")
	}
	for i, e := range f.XRef[1:] {
		if !e.InUse || e.Generation != 0 {
			return nil, fmt.Errorf("pdftest: object %d not in use with generation 0", i+1)
		}
	}
	m := sizeRe.FindStringSubmatch(f.Trailer)
	if m == nil || m[1] != strconv.Itoa(len(f.XRef)) {
		return nil, fmt.Errorf("pdftest: trailer /Size does not match %d entries: %q", len(f.XRef), f.Trailer)
	}
	m = rootRe.FindStringSubmatch(f.Trailer)
	if m == nil {
		return nil, fmt.Errorf("pdftest: trailer without /Root: %q", f.Trailer)
	}
	root, _ := strconv.Atoi(m[1])
	if _, ok := f.Objects[root]; !ok {
		return nil, fmt.Errorf("pdftest: /Root %d is not an object", root)
	}
	for num := range f.Objects {
		if _, _, err := f.Stream(num); err != nil && !errors.Is(err, ErrNotStream) {
			return nil, err
		}
	}
	return f, nil
}

// ErrNotStream reports an object without stream data.
var ErrNotStream = errors.New("pdftest: object is not a stream")

// Stream returns the declared /Length and the bytes between "stream\n" and
// "\nendstream" of object num.
func (f *File) Stream(num int) (int, []byte, error) {
	obj, ok := f.Objects[num]
	if !ok {
		return 0, nil, fmt.Errorf("pdftest: no object %d", num)
	}
	m := lengthRe.FindSubmatch(obj)
	if m == nil {
		return 0, nil, ErrNotStream
	}
	declared, _ := strconv.Atoi(string(m[1]))
	data := obj[len(m[0]):]
	if !bytes.HasSuffix(data, []byte("\nendstream")) {
		return 0, nil, fmt.Errorf("pdftest: object %d stream without endstream", num)
	}
	data = data[:len(data)-len("\nendstream")]
	if declared != len(data) {
		return 0, nil, fmt.Errorf("pdftest: object %d /Length %d, stream has %d bytes", num, declared, len(data))
	}
	return declared, data, nil
}
