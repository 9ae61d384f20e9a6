// Package pdf writes minimal single-page PDF documents without any PDF
// library.
//
// A document consists of exactly five indirect objects: the catalog, the
// page tree, one page, its content stream and a standard Type1 font. Objects
// are serialized in a single forward pass that records each object's byte
// offset, followed by a classic cross-reference table and trailer.
//
// Text is encoded as ISO-8859-1. Runes outside that range are dropped, so
// this writer is meant as the always-available fallback for Latin text; it
// neither embeds fonts nor paginates.
//
// Example:
//
//	err := pdf.Render(pdf.RenderRequest{
//		Title:  "Report",
//		Body:   "Line one\nLine two",
//		Writer: outFile,
//		Config: pdf.DefaultConfig(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
package pdf
