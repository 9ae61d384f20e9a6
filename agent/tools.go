package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/pdfcreate"
)

const (
	// GeneratePDFTool is the name models use to request a PDF.
	GeneratePDFTool = "generate_pdf"

	primaryDirName  = "generated"
	fallbackDirName = "generated_user"
	defaultFilename = "output.pdf"
	probeFileName   = ".w.test"
)

// Tool executes one named tool call.
type Tool func(ctx context.Context, args map[string]any) (any, error)

// GeneratePDFResult is returned by the generate_pdf tool.
type GeneratePDFResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Bytes    int64  `json:"bytes"`
}

func (h *Handler) generatePDF(ctx context.Context, args map[string]any) (any, error) {
	title := stringArg(args, "title", pdfcreate.DefaultTitle)
	body := stringArg(args, "content_markdown", "")
	name := SanitizeFilename(stringArg(args, "filename", defaultFilename))

	dir, urlBase, err := outputDir(h.cfg.PublicDir)
	if err != nil {
		return nil, err
	}
	finalName := fmt.Sprintf("%d_%s", h.cfg.Now().UnixMilli(), name)
	outPath := filepath.Join(dir, finalName)

	ctx, cancel := context.WithTimeout(ctx, h.cfg.Timeout)
	defer cancel()
	res, err := pdfcreate.Generate(ctx, pdfcreate.Request{
		Title:           title,
		ContentMarkdown: body,
		OutputPath:      outPath,
	}, h.options())
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(res.Path)
	if err != nil {
		return nil, err
	}
	h.cfg.Logger.Printf("%s: wrote %s (%d bytes, %s renderer)", GeneratePDFTool, res.Path, info.Size(), res.Renderer)
	return GeneratePDFResult{
		URL:      urlBase + "/" + finalName,
		Filename: finalName,
		Bytes:    info.Size(),
	}, nil
}

func (h *Handler) options() pdfcreate.Options {
	opts := h.cfg.Options
	if opts.Warnf == nil {
		logger := h.cfg.Logger
		opts.Warnf = func(format string, args ...any) {
			logger.Printf("warning: "+format, args...)
		}
	}
	return opts
}

// SanitizeFilename keeps ASCII letters, digits, underscore, dot and dash,
// and makes sure the result ends in .pdf.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_' || r == '.' || r == '-':
			b.WriteRune(r)
		}
	}
	safe := b.String()
	if safe == "" {
		return defaultFilename
	}
	if !strings.HasSuffix(strings.ToLower(safe), ".pdf") {
		safe += ".pdf"
	}
	return safe
}

// outputDir prefers <public>/generated and falls back to
// <public>/generated_user when the former cannot be written.
func outputDir(publicDir string) (dir, urlBase string, err error) {
	primary := filepath.Join(publicDir, primaryDirName)
	if probeWritable(primary) == nil {
		return primary, "/" + primaryDirName, nil
	}
	fallback := filepath.Join(publicDir, fallbackDirName)
	if err := os.MkdirAll(fallback, 0o755); err != nil {
		return "", "", fmt.Errorf("output directory: %w", err)
	}
	return fallback, "/" + fallbackDirName, nil
}

func probeWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	probe := filepath.Join(dir, probeFileName)
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return err
	}
	return os.Remove(probe)
}

// stringArg mirrors loose JSON argument handling: missing, null, empty and
// false values take the default, anything else is formatted as text.
func stringArg(args map[string]any, key, def string) string {
	v, ok := args[key]
	if !ok || v == nil {
		return def
	}
	switch t := v.(type) {
	case string:
		if t == "" {
			return def
		}
		return t
	case bool:
		if !t {
			return def
		}
		return "true"
	case float64:
		if t == 0 {
			return def
		}
		return fmt.Sprint(t)
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return def
		}
		return string(data)
	}
}
