// Package richpdf renders a title and body to PDF with an embedded TrueType
// font, paginating as the body grows.
//
// It needs a font file on disk (see FindFont) and is therefore the preferred
// but fallible renderer; package pdf is the fallback that always succeeds.
package richpdf
