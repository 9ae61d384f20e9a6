package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/pdfcreate"
	"pkt.systems/pdfcreate/agent"
	"pkt.systems/pdfcreate/pdf"
	"pkt.systems/pdfcreate/richpdf"
	"pkt.systems/version"
)

const (
	stdoutPath   = "-"
	defaultWidth = 80
)

const usageIntro = "Input is a JSON request with title, content_markdown and output_path " +
	"fields, read from stdin or from a path, file:// or http(s):// URL. With --text " +
	"the input is the document body and --output names the destination."

func init() {
	version.SetDefaultModule("pkt.systems/pdfcreate")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	text          bool
	title         string
	outPath       string
	minimal       bool
	frontMatter   bool
	fonts         []string
	fontDirs      []string
	pageWidth     float64
	pageHeight    float64
	marginLeft    float64
	marginTop     float64
	lineHeight    float64
	titleSize     float64
	bodySize      float64
	wrapWidth     int
	richWrapWidth int
	baseFont      string
	serveAddr     string
	publicDir     string
	timeout       time.Duration
	showVersion   bool
}

func run(ctx context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	pdfDefaults := pdf.DefaultConfig()
	richDefaults := richpdf.DefaultConfig()
	agentDefaults := agent.DefaultConfig()

	flags := pflag.NewFlagSet("pdfcreate", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.BoolVar(&opts.text, "text", false, "Treat input as raw body text instead of a JSON request")
	flags.StringVarP(&opts.title, "title", "t", "", "Document title (overrides the request title)")
	flags.StringVarP(&opts.outPath, "output", "o", "", "Output PDF path, - for stdout (overrides output_path)")
	flags.BoolVar(&opts.minimal, "minimal", false, "Skip the TrueType renderer and use the built-in writer")
	flags.BoolVar(&opts.frontMatter, "strip-front-matter", false, "Drop a leading YAML, TOML or JSON front matter block from the body")
	flags.StringArrayVar(&opts.fonts, "font", nil, "TrueType font file to try first (repeatable)")
	flags.StringArrayVar(&opts.fontDirs, "font-dir", richDefaults.FontDirs, "Directory searched for fonts (repeatable)")
	flags.Float64Var(&opts.pageWidth, "page-width", pdfDefaults.PageWidth, "Page width in points")
	flags.Float64Var(&opts.pageHeight, "page-height", pdfDefaults.PageHeight, "Page height in points")
	flags.Float64Var(&opts.marginLeft, "margin-left", pdfDefaults.MarginLeft, "Left text position in points")
	flags.Float64Var(&opts.marginTop, "margin-top", pdfDefaults.MarginTop, "Title baseline in points from the page bottom")
	flags.Float64Var(&opts.lineHeight, "line-height", pdfDefaults.LineHeight, "Distance between body lines in points")
	flags.Float64Var(&opts.titleSize, "title-size", pdfDefaults.TitleFontSize, "Title font size in points")
	flags.Float64Var(&opts.bodySize, "body-size", pdfDefaults.BodyFontSize, "Body font size in points")
	flags.IntVar(&opts.wrapWidth, "wrap-width", pdfDefaults.WrapWidth, "Body wrap column for the built-in writer")
	flags.IntVar(&opts.richWrapWidth, "rich-wrap-width", richDefaults.WrapWidth, "Body wrap column for the TrueType renderer")
	flags.StringVar(&opts.baseFont, "base-font", pdfDefaults.BaseFont, "Standard Type1 font for the built-in writer")
	flags.StringVar(&opts.serveAddr, "serve", "", "Run the agent tool server on this address")
	flags.StringVar(&opts.publicDir, "public-dir", agentDefaults.PublicDir, "Directory holding generated files when serving")
	flags.DurationVar(&opts.timeout, "timeout", agentDefaults.Timeout, "Per tool call timeout when serving")
	flags.BoolVar(&opts.showVersion, "version", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: pdfcreate [flags] [input]\n")
		fmt.Fprintf(stderr, "\n%s\n", wordwrap.String(usageIntro, terminalWidth(stderr, defaultWidth)))
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(argv); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}

	if !pdf.IsStandardFont(opts.baseFont) {
		fmt.Fprintf(stderr, "unknown --base-font %q\n", opts.baseFont)
		return 2
	}

	genOpts := pdfcreate.Options{
		Renderers:        buildRenderers(opts),
		StripFrontMatter: opts.frontMatter,
		Warnf: func(format string, args ...any) {
			fmt.Fprintf(stderr, "warning: "+format+"\n", args...)
		},
	}

	if opts.serveAddr != "" {
		err := agent.ListenAndServe(ctx, opts.serveAddr, agent.Config{
			PublicDir: normalizePath(opts.publicDir),
			Timeout:   opts.timeout,
			Options:   genOpts,
		})
		if err != nil {
			fmt.Fprintf(stderr, "serve: %v\n", err)
			return 1
		}
		return 0
	}

	args := flags.Args()
	req, err := readRequest(ctx, opts, args, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "read input: %v\n", err)
		return 1
	}

	if req.OutputPath == stdoutPath {
		if isTerminal(stdout) {
			fmt.Fprintln(stderr, "refusing to write PDF to terminal; use -o/--output")
			return 2
		}
		req = req.Normalized()
		doc, err := pdfcreate.Render(ctx, req.Title, req.ContentMarkdown, genOpts)
		if err != nil {
			fmt.Fprintf(stderr, "render pdf: %v\n", err)
			return 1
		}
		if _, err := stdout.Write(doc.Data); err != nil {
			fmt.Fprintf(stderr, "write output: %v\n", err)
			return 1
		}
		return 0
	}

	if strings.TrimSpace(req.OutputPath) != "" {
		req.OutputPath = normalizePath(req.OutputPath)
	}
	if _, err := pdfcreate.Generate(ctx, req, genOpts); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	return 0
}

func buildRenderers(opts options) []pdfcreate.Renderer {
	minimal := pdfcreate.Minimal{Config: pdf.Config{
		PageWidth:     opts.pageWidth,
		PageHeight:    opts.pageHeight,
		MarginLeft:    opts.marginLeft,
		MarginTop:     opts.marginTop,
		LineHeight:    opts.lineHeight,
		TitleFontSize: opts.titleSize,
		BodyFontSize:  opts.bodySize,
		WrapWidth:     opts.wrapWidth,
		BaseFont:      opts.baseFont,
	}}
	if opts.minimal {
		return []pdfcreate.Renderer{minimal}
	}
	fonts := make([]string, 0, len(opts.fonts))
	for _, f := range opts.fonts {
		if f = strings.TrimSpace(f); f != "" {
			fonts = append(fonts, normalizePath(f))
		}
	}
	dirs := make([]string, 0, len(opts.fontDirs))
	for _, d := range opts.fontDirs {
		if d = strings.TrimSpace(d); d != "" {
			dirs = append(dirs, normalizePath(d))
		}
	}
	rich := pdfcreate.Rich{Config: richpdf.Config{
		PageWidth:     opts.pageWidth,
		PageHeight:    opts.pageHeight,
		MarginLeft:    opts.marginLeft,
		MarginTop:     opts.marginTop,
		LineHeight:    opts.lineHeight,
		TitleFontSize: opts.titleSize,
		BodyFontSize:  opts.bodySize,
		WrapWidth:     opts.richWrapWidth,
		FontPaths:     fonts,
		FontDirs:      dirs,
	}}
	return []pdfcreate.Renderer{rich, minimal}
}

// readRequest builds the request from the input and applies flag overrides.
func readRequest(ctx context.Context, opts options, args []string, stdin io.Reader) (pdfcreate.Request, error) {
	var req pdfcreate.Request
	if opts.text {
		reader, closer, err := openInputs(args, stdin)
		if err != nil {
			return req, err
		}
		if closer != nil {
			defer func() { _ = closer.Close() }()
		}
		body, err := io.ReadAll(reader)
		if err != nil {
			return req, err
		}
		req = pdfcreate.Request{Title: pdfcreate.DefaultTitle, ContentMarkdown: string(body)}
	} else {
		if len(args) > 1 {
			return req, fmt.Errorf("expected at most one JSON request, got %d inputs", len(args))
		}
		var err error
		req, err = decodeInput(ctx, args, stdin)
		if err != nil {
			return req, err
		}
	}
	if strings.TrimSpace(opts.title) != "" {
		req.Title = opts.title
	}
	if opts.outPath != "" {
		req.OutputPath = opts.outPath
	}
	return req, nil
}

func decodeInput(ctx context.Context, args []string, stdin io.Reader) (pdfcreate.Request, error) {
	if len(args) == 1 {
		if u, err := url.Parse(strings.TrimSpace(args[0])); err == nil {
			switch strings.ToLower(u.Scheme) {
			case "http", "https":
				return pdfcreate.FetchRequest(ctx, pdfcreate.HTTPRequestSource{URL: u.String()})
			}
		}
	}
	reader, closer, err := openInputs(args, stdin)
	if err != nil {
		return pdfcreate.Request{}, err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	return pdfcreate.DecodeRequest(reader)
}

type inputSource struct {
	open func() (io.Reader, io.Closer, error)
}

type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, err
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

// openInputs concatenates the named inputs, or returns stdin when there
// are none.
func openInputs(args []string, stdin io.Reader) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(raw)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	m := &multiInputReader{sources: sources}
	return m, m, nil
}

func makeInputSource(raw string) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	if raw == stdoutPath {
		return inputSource{}, fmt.Errorf("use no argument to read stdin")
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openURL(raw)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, resp.Body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	f, err := os.Open(normalizePath(path))
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func terminalWidth(w io.Writer, fallback int) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if width, err := strconv.Atoi(value); err == nil && width > 0 {
			return width
		}
	}
	return fallback
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
