// Package agent serves pdfcreate as a tool endpoint for chat agents.
//
// A model that wants a PDF emits a tool call such as
//
//	{"tool_call":{"name":"generate_pdf","args":{"title":"Q3","content_markdown":"...","filename":"q3.pdf"}}}
//
// which is posted to /tool-exec. The generated file is written below the
// public directory and served back under /generated/ or /generated_user/.
package agent
