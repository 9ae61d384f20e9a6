package pdfcreate

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Options configures Render and Generate.
type Options struct {
	// Renderers are tried in order. Minimal is appended when the list does
	// not already end with it. Empty means DefaultRenderers.
	Renderers []Renderer
	// Warnf receives renderer failures that were recovered by falling back.
	Warnf func(format string, args ...any)
	// StripFrontMatter drops a leading metadata block from the body.
	StripFrontMatter bool
}

// Document is a rendered PDF held in memory.
type Document struct {
	Data     []byte
	Renderer string
	// Warnings lists the failures of renderers tried before Renderer.
	Warnings []error
}

// Result describes a PDF written by Generate.
type Result struct {
	Path     string
	Bytes    int
	Renderer string
	Warnings []error
}

// Render runs the renderer chain and returns the first document that
// renders completely. A failing renderer is reported as a warning and the
// next one is tried; only a failure of the last renderer is an error.
func Render(ctx context.Context, title, body string, opts Options) (Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.StripFrontMatter {
		body = StripFrontMatter(body)
	}
	var doc Document
	chain := rendererChain(opts.Renderers)
	var buf bytes.Buffer
	for i, r := range chain {
		if err := ctx.Err(); err != nil {
			return Document{}, fmt.Errorf("pdfcreate: %w", err)
		}
		buf.Reset()
		err := r.RenderPDF(title, body, &buf)
		if err == nil {
			doc.Data = bytes.Clone(buf.Bytes())
			doc.Renderer = r.Name()
			return doc, nil
		}
		if i == len(chain)-1 {
			return Document{}, fmt.Errorf("pdfcreate: %s renderer: %w", r.Name(), err)
		}
		doc.Warnings = append(doc.Warnings, fmt.Errorf("%s renderer: %w", r.Name(), err))
		if opts.Warnf != nil {
			opts.Warnf("%s renderer failed, falling back to %s: %v", r.Name(), chain[i+1].Name(), err)
		}
	}
	return Document{}, fmt.Errorf("pdfcreate: no renderer")
}

// Generate renders req and writes the PDF to req.OutputPath, creating parent
// directories. The file appears atomically: it is written to a temporary
// file in the same directory and renamed into place.
func Generate(ctx context.Context, req Request, opts Options) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := req.Validate(); err != nil {
		return Result{}, fmt.Errorf("pdfcreate: %w", err)
	}
	req = req.Normalized()
	doc, err := Render(ctx, req.Title, req.ContentMarkdown, opts)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("pdfcreate: %w", err)
	}
	if err := writeFileAtomic(req.OutputPath, doc.Data); err != nil {
		return Result{}, fmt.Errorf("pdfcreate: write %s: %w", req.OutputPath, err)
	}
	return Result{
		Path:     req.OutputPath,
		Bytes:    len(doc.Data),
		Renderer: doc.Renderer,
		Warnings: doc.Warnings,
	}, nil
}

func rendererChain(renderers []Renderer) []Renderer {
	if len(renderers) == 0 {
		return DefaultRenderers()
	}
	chain := make([]Renderer, 0, len(renderers)+1)
	for _, r := range renderers {
		if r != nil {
			chain = append(chain, r)
		}
	}
	if len(chain) == 0 {
		return DefaultRenderers()
	}
	if _, ok := chain[len(chain)-1].(Minimal); !ok {
		chain = append(chain, Minimal{})
	}
	return chain
}

func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
