package pdf

import "strconv"

// Object numbers of the fixed document layout.
const (
	catalogObj = 1
	pagesObj   = 2
	pageObj    = 3
	contentObj = 4
	fontObj    = 5

	objectCount = 5
)

// object is one of the five indirect objects the writer emits. The set is
// closed: catalog, pages, page, contentStream and font.
type object interface {
	appendBody(dst []byte) []byte
}

type catalog struct{}

func (catalog) appendBody(dst []byte) []byte {
	dst = append(dst, "<< /Type /Catalog /Pages "...)
	dst = appendRef(dst, pagesObj)
	return append(dst, " >>"...)
}

type pages struct{}

func (pages) appendBody(dst []byte) []byte {
	dst = append(dst, "<< /Type /Pages /Kids ["...)
	dst = appendRef(dst, pageObj)
	return append(dst, "] /Count 1 >>"...)
}

type page struct {
	width, height float64
}

func (p page) appendBody(dst []byte) []byte {
	dst = append(dst, "<< /Type /Page /Parent "...)
	dst = appendRef(dst, pagesObj)
	dst = append(dst, " /MediaBox [0 0 "...)
	dst = append(dst, formatNumber(p.width)...)
	dst = append(dst, ' ')
	dst = append(dst, formatNumber(p.height)...)
	dst = append(dst, "] /Contents "...)
	dst = appendRef(dst, contentObj)
	dst = append(dst, " /Resources << /Font << "+fontResource+" "...)
	dst = appendRef(dst, fontObj)
	return append(dst, " >> >> >>"...)
}

type contentStream struct {
	data []byte
}

func (c contentStream) appendBody(dst []byte) []byte {
	dst = append(dst, "<< /Length "...)
	dst = strconv.AppendInt(dst, int64(len(c.data)), 10)
	dst = append(dst, " >>\nstream\n"...)
	dst = append(dst, c.data...)
	return append(dst, "\nendstream"...)
}

type font struct {
	baseFont string
}

func (f font) appendBody(dst []byte) []byte {
	dst = append(dst, "<< /Type /Font /Subtype /Type1 /BaseFont /"...)
	dst = append(dst, f.baseFont...)
	return append(dst, " >>"...)
}

func appendRef(dst []byte, num int) []byte {
	dst = strconv.AppendInt(dst, int64(num), 10)
	return append(dst, " 0 R"...)
}

// documentObjects returns the objects in object-number order.
func documentObjects(title, body string, cfg Config) [objectCount]object {
	return [objectCount]object{
		catalog{},
		pages{},
		page{width: cfg.PageWidth, height: cfg.PageHeight},
		contentStream{data: BuildContentStream(title, body, cfg)},
		font{baseFont: cfg.BaseFont},
	}
}
