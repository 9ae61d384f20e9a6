package richpdf

// Config holds layout and font discovery settings for the TrueType renderer.
type Config struct {
	PageWidth     float64
	PageHeight    float64
	MarginLeft    float64
	MarginTop     float64
	BottomMargin  float64
	LineHeight    float64
	TitleFontSize float64
	BodyFontSize  float64
	// WrapWidth counts runes; the default suits full-width glyphs.
	WrapWidth int
	// FontPaths are tried in order before FontDirs.
	FontPaths []string
	FontDirs  []string
}

// DefaultFontNames are the preferred font files looked up in each font
// directory, in order.
var DefaultFontNames = []string{
	"NotoSansSC-Regular.otf",
	"NotoSansSC-Regular.ttf",
	"SourceHanSansSC-Regular.otf",
	"SourceHanSansSC-Regular.ttf",
	"SmileySans-Oblique.ttf",
	"SmileySans-Oblique.otf",
}

// DefaultConfig returns a US Letter layout matching the minimal writer and
// looks for fonts in ./fonts.
func DefaultConfig() Config {
	return Config{
		PageWidth:     612,
		PageHeight:    792,
		MarginLeft:    50,
		MarginTop:     750,
		BottomMargin:  60,
		LineHeight:    24,
		TitleFontSize: 20,
		BodyFontSize:  12,
		WrapWidth:     36,
		FontDirs:      []string{"fonts"},
	}
}

func applyConfig(dst *Config, src Config) {
	if src.PageWidth > 0 {
		dst.PageWidth = src.PageWidth
	}
	if src.PageHeight > 0 {
		dst.PageHeight = src.PageHeight
	}
	if src.MarginLeft > 0 {
		dst.MarginLeft = src.MarginLeft
	}
	if src.MarginTop > 0 {
		dst.MarginTop = src.MarginTop
	}
	if src.BottomMargin > 0 {
		dst.BottomMargin = src.BottomMargin
	}
	if src.LineHeight > 0 {
		dst.LineHeight = src.LineHeight
	}
	if src.TitleFontSize > 0 {
		dst.TitleFontSize = src.TitleFontSize
	}
	if src.BodyFontSize > 0 {
		dst.BodyFontSize = src.BodyFontSize
	}
	if src.WrapWidth > 0 {
		dst.WrapWidth = src.WrapWidth
	}
	if len(src.FontPaths) > 0 {
		dst.FontPaths = src.FontPaths
	}
	if len(src.FontDirs) > 0 {
		dst.FontDirs = src.FontDirs
	}
}
