package richpdf

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/font/sfnt"
)

var (
	// ErrFontNotFound reports that no usable font file was found.
	ErrFontNotFound = errors.New("no usable font found")
	// ErrUnsupportedFont reports a font the renderer cannot embed, such as
	// an OpenType font with CFF outlines.
	ErrUnsupportedFont = errors.New("unsupported font")
)

// Font is a validated TrueType font ready to be embedded.
type Font struct {
	Path   string
	Family string
	Data   []byte
}

// LoadFont reads and validates a TrueType font file.
func LoadFont(path string) (Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Font{}, err
	}
	return ParseFont(path, data)
}

// ParseFont validates font data. Only TrueType outlines are accepted.
func ParseFont(path string, data []byte) (Font, error) {
	if bytes.HasPrefix(data, []byte("OTTO")) {
		return Font{}, fmt.Errorf("%s: %w: CFF outlines", path, ErrUnsupportedFont)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return Font{}, fmt.Errorf("%s: %w: %v", path, ErrUnsupportedFont, err)
	}
	family, err := f.Name(nil, sfnt.NameIDFamily)
	if err != nil || family == "" {
		family = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return Font{Path: path, Family: family, Data: data}, nil
}

// FindFont returns the first usable font among cfg.FontPaths, then the
// DefaultFontNames in each of cfg.FontDirs, then any other .ttf file in
// those directories.
func FindFont(cfg Config) (Font, error) {
	var problems []error
	for _, path := range candidatePaths(cfg) {
		font, err := LoadFont(path)
		if err == nil {
			return font, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			problems = append(problems, err)
		}
	}
	if len(problems) > 0 {
		return Font{}, fmt.Errorf("%w: %w", ErrFontNotFound, errors.Join(problems...))
	}
	return Font{}, fmt.Errorf("%w (searched %s)", ErrFontNotFound, strings.Join(searchList(cfg), ", "))
}

func candidatePaths(cfg Config) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(path string) {
		if path == "" || seen[path] {
			return
		}
		seen[path] = true
		out = append(out, path)
	}
	for _, path := range cfg.FontPaths {
		add(path)
	}
	for _, dir := range cfg.FontDirs {
		for _, name := range DefaultFontNames {
			add(filepath.Join(dir, name))
		}
		extra, _ := filepath.Glob(filepath.Join(dir, "*.ttf"))
		sort.Strings(extra)
		for _, path := range extra {
			add(path)
		}
	}
	return out
}

func searchList(cfg Config) []string {
	list := append([]string{}, cfg.FontPaths...)
	list = append(list, cfg.FontDirs...)
	if len(list) == 0 {
		return []string{"<none>"}
	}
	return list
}
