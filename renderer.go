package pdfcreate

import (
	"io"

	"pkt.systems/pdfcreate/pdf"
	"pkt.systems/pdfcreate/richpdf"
)

// Renderer turns a title and body into a PDF document.
type Renderer interface {
	Name() string
	RenderPDF(title, body string, w io.Writer) error
}

// Minimal renders with the built-in single-page writer. It only fails on
// an invalid Config or a failing writer.
type Minimal struct {
	Config pdf.Config
}

// Name implements Renderer.
func (Minimal) Name() string { return "minimal" }

// RenderPDF implements Renderer.
func (m Minimal) RenderPDF(title, body string, w io.Writer) error {
	return pdf.Render(pdf.RenderRequest{
		Title:  title,
		Body:   body,
		Writer: w,
		Config: m.Config,
	})
}

// Rich renders with an embedded TrueType font. It fails when no font can be
// found.
type Rich struct {
	Config richpdf.Config
	Font   *richpdf.Font
}

// Name implements Renderer.
func (Rich) Name() string { return "rich" }

// RenderPDF implements Renderer.
func (r Rich) RenderPDF(title, body string, w io.Writer) error {
	return richpdf.Render(richpdf.RenderRequest{
		Title:  title,
		Body:   body,
		Writer: w,
		Config: r.Config,
		Font:   r.Font,
	})
}

// DefaultRenderers returns the rich renderer followed by the minimal
// fallback, both with default configuration.
func DefaultRenderers() []Renderer {
	return []Renderer{Rich{}, Minimal{}}
}
