package pdfcreate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pkt.systems/pdfcreate/internal/pdftest"
	"pkt.systems/pdfcreate/pdf"
	"pkt.systems/pdfcreate/richpdf"
)

type stubRenderer struct {
	name    string
	err     error
	partial bool
}

func (s stubRenderer) Name() string { return s.name }

func (s stubRenderer) RenderPDF(title, body string, w io.Writer) error {
	if s.partial {
		_, _ = io.WriteString(w, "%PDF-1.7\npartial")
	}
	if s.err != nil {
		return s.err
	}
	_, err := fmt.Fprintf(w, "%s:%s:%s", s.name, title, body)
	return err
}

func minimalBadConfig() pdf.Config {
	return pdf.Config{BaseFont: "Comic-Sans"}
}

func TestGenerateFallsBackToMinimal(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "dir", "report.pdf")
	var warnings []string
	res, err := Generate(context.Background(), Request{
		Title:           "Report",
		ContentMarkdown: "Line one\nLine two",
		OutputPath:      out,
	}, Options{
		Renderers: []Renderer{Rich{Config: richpdf.Config{FontDirs: []string{t.TempDir()}}}},
		Warnf: func(format string, args ...any) {
			warnings = append(warnings, fmt.Sprintf(format, args...))
		},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Renderer != "minimal" {
		t.Fatalf("renderer = %q, want minimal", res.Renderer)
	}
	if len(res.Warnings) != 1 || !errors.Is(res.Warnings[0], richpdf.ErrFontNotFound) {
		t.Fatalf("expected one font warning, got %v", res.Warnings)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "rich renderer failed, falling back to minimal") {
		t.Fatalf("unexpected warnings: %q", warnings)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if res.Bytes != len(data) || res.Path != out {
		t.Fatalf("result %+v does not describe %d bytes at %s", res, len(data), out)
	}
	if _, err := pdftest.Check(data); err != nil {
		t.Fatalf("output structure: %v", err)
	}
	if !bytes.Contains(data, []byte("(Line two) Tj")) {
		t.Fatalf("body missing from output")
	}
}

func TestGenerateUsesFirstSuccessfulRenderer(t *testing.T) {
	out := filepath.Join(t.TempDir(), "a.pdf")
	res, err := Generate(context.Background(), Request{Title: "T", ContentMarkdown: "B", OutputPath: out}, Options{
		Renderers: []Renderer{
			stubRenderer{name: "broken", err: errors.New("boom"), partial: true},
			stubRenderer{name: "ok"},
		},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Renderer != "ok" {
		t.Fatalf("renderer = %q, want ok", res.Renderer)
	}
	data, _ := os.ReadFile(out)
	if string(data) != "ok:T:B" {
		t.Fatalf("partial output leaked into file: %q", data)
	}
}

func TestGenerateRequiresOutputPath(t *testing.T) {
	_, err := Generate(context.Background(), Request{Title: "T"}, Options{})
	if !errors.Is(err, ErrMissingOutputPath) {
		t.Fatalf("expected ErrMissingOutputPath, got %v", err)
	}
}

func TestGenerateHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := filepath.Join(t.TempDir(), "a.pdf")
	_, err := Generate(ctx, Request{Title: "T", OutputPath: out}, Options{Renderers: []Renderer{Minimal{}}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("expected no output file, stat err=%v", err)
	}
}

func TestGenerateReplacesExistingFileWithoutTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "doc.pdf")
	if err := os.WriteFile(out, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := Generate(context.Background(), Request{Title: "T", OutputPath: out}, Options{Renderers: []Renderer{Minimal{}}}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "doc.pdf" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("unexpected directory contents: %v", names)
	}
	data, _ := os.ReadFile(out)
	if !bytes.HasPrefix(data, []byte("%PDF-1.4")) {
		t.Fatalf("file not replaced: %q", data)
	}
}

func TestGenerateReportsWriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, err := Generate(context.Background(), Request{Title: "T", OutputPath: filepath.Join(blocker, "out.pdf")}, Options{Renderers: []Renderer{Minimal{}}})
	if err == nil {
		t.Fatalf("expected error when the parent path is a file")
	}
	if !strings.HasPrefix(err.Error(), "pdfcreate: write ") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRenderLastRendererFailureIsError(t *testing.T) {
	_, err := Render(context.Background(), "T", "B", Options{
		Renderers: []Renderer{Minimal{Config: minimalBadConfig()}},
	})
	if err == nil || !strings.Contains(err.Error(), "minimal renderer") {
		t.Fatalf("expected minimal renderer error, got %v", err)
	}
}

func TestRendererChainAppendsMinimal(t *testing.T) {
	chain := rendererChain([]Renderer{stubRenderer{name: "x"}, nil})
	if len(chain) != 2 || chain[1].Name() != "minimal" {
		t.Fatalf("unexpected chain: %v", chain)
	}
	chain = rendererChain(nil)
	if len(chain) != 2 || chain[0].Name() != "rich" || chain[1].Name() != "minimal" {
		t.Fatalf("unexpected default chain: %v", chain)
	}
	chain = rendererChain([]Renderer{Minimal{}})
	if len(chain) != 1 {
		t.Fatalf("minimal should not be appended twice: %v", chain)
	}
}

func TestRenderStripsFrontMatter(t *testing.T) {
	doc, err := Render(context.Background(), "T", "---\ntitle: hidden\n---\nVisible", Options{
		Renderers:        []Renderer{stubRenderer{name: "echo"}},
		StripFrontMatter: true,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(doc.Data) != "echo:T:Visible" {
		t.Fatalf("unexpected document: %q", doc.Data)
	}
}
