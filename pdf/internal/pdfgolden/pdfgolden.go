package pdfgolden

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"pkt.systems/pdfcreate/pdf"
)

// Sample identifies a text input used for PDF golden testing. The first line
// of the file is the title, everything after it is the body.
type Sample struct {
	Path string
	Name string
}

// FindTestdataRoot locates the pdf/testdata directory.
func FindTestdataRoot() (string, error) {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("pdfgolden: unable to resolve testdata path")
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "testdata"), nil
}

// CollectSamples finds all samples/*.txt files below root.
func CollectSamples(root string) ([]Sample, error) {
	var samples []Sample
	sampleRoot := filepath.Join(root, "samples")
	err := filepath.WalkDir(sampleRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".txt") {
			return nil
		}
		rel, err := filepath.Rel(sampleRoot, path)
		if err != nil {
			return err
		}
		base := strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))
		samples = append(samples, Sample{Path: path, Name: strings.ReplaceAll(base, "/", "__")})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].Name < samples[j].Name
	})
	return samples, nil
}

// LoadSample splits a sample file into title and body.
func LoadSample(path string) (title, body string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	title, body, _ = strings.Cut(string(data), "\n")
	return title, body, nil
}

// RenderSample renders a sample with the default configuration.
func RenderSample(sample Sample) ([]byte, error) {
	title, body, err := LoadSample(sample.Path)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := pdf.Render(pdf.RenderRequest{
		Title:  title,
		Body:   body,
		Writer: &out,
		Config: pdf.DefaultConfig(),
	}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// GoldenPath returns the golden PDF path for a sample name.
func GoldenPath(root, name string) string {
	return filepath.Join(root, "golden", name+".pdf")
}

// PDFToPPMCommand returns the pdftoppm command used to rasterize a PDF, as a
// check that an independent reader accepts the file.
func PDFToPPMCommand(nicePath, pdfPath, prefix string) *exec.Cmd {
	if nicePath != "" {
		return exec.Command(nicePath, "-n", "10", "pdftoppm", "-png", "-r", "36", pdfPath, prefix)
	}
	return exec.Command("pdftoppm", "-png", "-r", "36", pdfPath, prefix)
}

// WriteGolden writes data to dst, creating parent directories as needed.
func WriteGolden(dst string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("mkdir goldens: %w", err)
	}
	return os.WriteFile(dst, data, 0o644)
}
