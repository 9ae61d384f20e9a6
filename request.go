package pdfcreate

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// DefaultTitle is used when a request carries no title.
const DefaultTitle = "Untitled"

// Request is the JSON tool protocol accepted on stdin and by the agent
// server.
type Request struct {
	Title           string `json:"title"`
	ContentMarkdown string `json:"content_markdown"`
	OutputPath      string `json:"output_path"`
}

// DecodeRequest reads one JSON request object from r. A missing title and
// an explicit empty or whitespace-only title both become DefaultTitle, so a
// caller cannot ask for an untitled document.
func DecodeRequest(r io.Reader) (Request, error) {
	var req Request
	dec := json.NewDecoder(r)
	if err := dec.Decode(&req); err != nil {
		return Request{}, fmt.Errorf("pdfcreate: decode request: %w", err)
	}
	if strings.TrimSpace(req.Title) == "" {
		req.Title = DefaultTitle
	}
	return req, nil
}
