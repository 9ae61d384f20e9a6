package pdf

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrNoDestination reports a render request without a Writer.
	ErrNoDestination = errors.New("output destination is required")
	// ErrInvalidConfig reports unusable layout or font settings.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// RenderRequest contains inputs for PDF rendering.
type RenderRequest struct {
	Title  string
	Body   string
	Writer io.Writer
	Config Config
}

// Render writes a single-page PDF showing Title and Body to Writer. The
// document is assembled in memory and written in one call, so Writer never
// sees a partial document produced by this package.
func Render(req RenderRequest) error {
	if req.Writer == nil {
		return fmt.Errorf("pdf render: %w", ErrNoDestination)
	}
	cfg, err := Resolve(req.Config)
	if err != nil {
		return fmt.Errorf("pdf render: %w", err)
	}
	data, _ := assemble(documentObjects(req.Title, req.Body, cfg))
	n, err := req.Writer.Write(data)
	if err != nil {
		return fmt.Errorf("pdf render: output: %w", err)
	}
	if n != len(data) {
		return fmt.Errorf("pdf render: output: %w", io.ErrShortWrite)
	}
	return nil
}
