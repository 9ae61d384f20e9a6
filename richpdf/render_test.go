package richpdf

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	lpdf "github.com/ledongthuc/pdf"
	"golang.org/x/image/font/gofont/goregular"
)

func goFont(t *testing.T) *Font {
	t.Helper()
	font, err := ParseFont("goregular.ttf", goregular.TTF)
	if err != nil {
		t.Fatalf("parse go font: %v", err)
	}
	return &font
}

func TestRenderWithEmbeddedFont(t *testing.T) {
	var out bytes.Buffer
	err := Render(RenderRequest{
		Title:  "Réport",
		Body:   "Line one\nLine two",
		Writer: &out,
		Font:   goFont(t),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out.Bytes(), []byte("%PDF-")) {
		t.Fatalf("unexpected pdf header: %q", out.Bytes()[:8])
	}
	if !bytes.Contains(out.Bytes(), []byte("/FontFile2")) {
		t.Fatalf("expected an embedded TrueType font program")
	}
}

func TestRenderPaginatesLongBodies(t *testing.T) {
	var out bytes.Buffer
	body := strings.Repeat("paragraph\n", 80)
	if err := Render(RenderRequest{Title: "Long", Body: body, Writer: &out, Font: goFont(t)}); err != nil {
		t.Fatalf("render: %v", err)
	}
	r, err := lpdf.NewReader(bytes.NewReader(out.Bytes()), int64(out.Len()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// 162 lines at 24pt between y=702 and y=60 fit 27 lines on the first page.
	if n := r.NumPage(); n < 5 {
		t.Fatalf("expected the body to span several pages, got %d", n)
	}
}

func TestRenderWithoutFontFails(t *testing.T) {
	var out bytes.Buffer
	err := Render(RenderRequest{
		Title:  "x",
		Writer: &out,
		Config: Config{FontDirs: []string{t.TempDir()}},
	})
	if !errors.Is(err, ErrFontNotFound) {
		t.Fatalf("expected ErrFontNotFound, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output when the font is missing")
	}
}

func TestRenderRejectsBadMargins(t *testing.T) {
	var out bytes.Buffer
	err := Render(RenderRequest{
		Title:  "x",
		Writer: &out,
		Font:   goFont(t),
		Config: Config{MarginTop: 50, BottomMargin: 60},
	})
	if err == nil {
		t.Fatalf("expected margin validation error")
	}
}

func TestRenderRequiresWriter(t *testing.T) {
	if err := Render(RenderRequest{Title: "x", Font: goFont(t)}); err == nil {
		t.Fatalf("expected error for nil writer")
	}
}

func TestLayoutLinesAddsParagraphGaps(t *testing.T) {
	got := layoutLines("one\r\ntwo", 36)
	want := []string{"one", "", "two", ""}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("layoutLines = %q, want %q", got, want)
	}
}

func TestFindFontDiscoversTrueTypeInDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "GoRegular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}
	font, err := FindFont(Config{FontDirs: []string{dir}})
	if err != nil {
		t.Fatalf("find font: %v", err)
	}
	if font.Path != path {
		t.Fatalf("font path = %q, want %q", font.Path, path)
	}
	if font.Family != "Go" {
		t.Fatalf("font family = %q, want %q", font.Family, "Go")
	}
}

func TestFindFontPrefersExplicitPaths(t *testing.T) {
	dir := t.TempDir()
	inDir := filepath.Join(dir, "NotoSansSC-Regular.ttf")
	explicit := filepath.Join(t.TempDir(), "custom.ttf")
	for _, p := range []string{inDir, explicit} {
		if err := os.WriteFile(p, goregular.TTF, 0o644); err != nil {
			t.Fatalf("write font: %v", err)
		}
	}
	font, err := FindFont(Config{FontPaths: []string{explicit}, FontDirs: []string{dir}})
	if err != nil {
		t.Fatalf("find font: %v", err)
	}
	if font.Path != explicit {
		t.Fatalf("font path = %q, want %q", font.Path, explicit)
	}
}

func TestFindFontSkipsUnsupportedFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "NotoSansSC-Regular.otf"), []byte("OTTO\x00\x0a"), 0o644); err != nil {
		t.Fatalf("write otf: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.ttf"), []byte("not a font"), 0o644); err != nil {
		t.Fatalf("write ttf: %v", err)
	}
	_, err := FindFont(Config{FontDirs: []string{dir}})
	if !errors.Is(err, ErrFontNotFound) {
		t.Fatalf("expected ErrFontNotFound, got %v", err)
	}
	if !errors.Is(err, ErrUnsupportedFont) {
		t.Fatalf("expected the unsupported-font reason to be kept, got %v", err)
	}

	good := filepath.Join(dir, "zz-good.ttf")
	if err := os.WriteFile(good, goregular.TTF, 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}
	font, err := FindFont(Config{FontDirs: []string{dir}})
	if err != nil {
		t.Fatalf("find font: %v", err)
	}
	if font.Path != good {
		t.Fatalf("font path = %q, want %q", font.Path, good)
	}
}

func TestRenderRegistersFontUnderItsFamily(t *testing.T) {
	named := goFont(t)
	if named.Family != "Go" {
		t.Fatalf("family = %q, want Go", named.Family)
	}
	unnamed := *named
	unnamed.Family = ""
	for _, font := range []*Font{named, &unnamed} {
		var out bytes.Buffer
		if err := Render(RenderRequest{Title: "Family", Body: "text", Writer: &out, Font: font}); err != nil {
			t.Fatalf("render with family %q: %v", font.Family, err)
		}
		if !bytes.Contains(out.Bytes(), []byte("/FontFile2")) {
			t.Fatalf("family %q: expected an embedded font program", font.Family)
		}
	}
}
