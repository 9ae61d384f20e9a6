package richpdf

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/unicode/norm"
	"pkt.systems/pdfcreate/pdf"
)

// fallbackFamily registers fonts whose name table carries no family.
const fallbackFamily = "richpdf"

// RenderRequest contains inputs for TrueType rendering. When Font is nil
// the font is located with FindFont.
type RenderRequest struct {
	Title  string
	Body   string
	Writer io.Writer
	Config Config
	Font   *Font
}

// Render writes a paginated PDF with the title and body set in an embedded
// TrueType font, so any script the font covers is preserved.
func Render(req RenderRequest) error {
	if req.Writer == nil {
		return errors.New("richpdf: writer is nil")
	}
	cfg := DefaultConfig()
	applyConfig(&cfg, req.Config)
	if cfg.MarginTop <= cfg.BottomMargin || cfg.MarginTop > cfg.PageHeight {
		return fmt.Errorf("richpdf: top margin %v must lie between bottom margin %v and page height %v",
			cfg.MarginTop, cfg.BottomMargin, cfg.PageHeight)
	}

	font := req.Font
	if font == nil {
		found, err := FindFont(cfg)
		if err != nil {
			return fmt.Errorf("richpdf: %w", err)
		}
		font = &found
	}

	title := norm.NFC.String(req.Title)
	doc := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: cfg.PageWidth, Ht: cfg.PageHeight},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle(title, true)
	doc.SetCreator("pdfcreate", true)
	family := font.Family
	if family == "" {
		family = fallbackFamily
	}
	doc.AddUTF8FontFromBytes(family, "", font.Data)
	if err := doc.Error(); err != nil {
		return fmt.Errorf("richpdf: font setup %s: %w", font.Path, err)
	}

	// fpdf measures y from the top edge; layout values are from the bottom.
	top := func(y float64) float64 { return cfg.PageHeight - y }

	doc.AddPage()
	doc.SetFont(family, "", cfg.TitleFontSize)
	doc.Text(cfg.MarginLeft, top(cfg.MarginTop), title)

	y := cfg.MarginTop - 2*cfg.LineHeight
	doc.SetFont(family, "", cfg.BodyFontSize)
	for _, line := range layoutLines(norm.NFC.String(req.Body), cfg.WrapWidth) {
		if y < cfg.BottomMargin {
			doc.AddPage()
			y = cfg.MarginTop
			doc.SetFont(family, "", cfg.BodyFontSize)
		}
		if line != "" {
			doc.Text(cfg.MarginLeft, top(y), line)
		}
		y -= cfg.LineHeight
	}

	if err := doc.Error(); err != nil {
		return fmt.Errorf("richpdf: layout: %w", err)
	}
	if err := doc.Output(req.Writer); err != nil {
		return fmt.Errorf("richpdf: output: %w", err)
	}
	return nil
}

// layoutLines wraps every logical line and follows it with a blank line.
func layoutLines(body string, width int) []string {
	var lines []string
	for _, line := range pdf.SplitLines(body) {
		lines = append(lines, pdf.WrapLine(line, width)...)
		lines = append(lines, "")
	}
	return lines
}
