// Package pdfcreate turns a title and a body of text into a PDF file.
//
// Rendering runs a chain of renderers. The default chain first tries a
// TrueType renderer (package richpdf) that preserves any script the
// discovered font covers, and falls back to the built-in minimal writer
// (package pdf) when no usable font exists. Fallbacks are reported as
// warnings, never as errors.
//
// Core properties:
//   - The PDF is assembled in memory before anything touches the destination
//   - Output files are replaced atomically
//   - The fallback writer accepts any text and drops what Latin-1 cannot hold
//
// Example:
//
//	req, err := pdfcreate.DecodeRequest(os.Stdin)
//	if err != nil {
//		log.Fatal(err)
//	}
//	res, err := pdfcreate.Generate(ctx, req, pdfcreate.Options{
//		Warnf: func(format string, args ...any) {
//			fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
//		},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(res.Path, res.Bytes)
//
// The agent package exposes the same operation as an HTTP tool endpoint.
package pdfcreate
