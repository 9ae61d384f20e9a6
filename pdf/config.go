package pdf

import "fmt"

// Config holds page layout and font settings for the minimal writer.
type Config struct {
	PageWidth     float64
	PageHeight    float64
	MarginLeft    float64
	MarginTop     float64
	LineHeight    float64
	TitleFontSize float64
	BodyFontSize  float64
	// WrapWidth is the column count body lines are wrapped at.
	WrapWidth int
	// BaseFont names one of the 14 standard Type1 fonts.
	BaseFont string
}

// DefaultConfig returns a US Letter page with Helvetica text.
func DefaultConfig() Config {
	return Config{
		PageWidth:     612,
		PageHeight:    792,
		MarginLeft:    50,
		MarginTop:     750,
		LineHeight:    24,
		TitleFontSize: 20,
		BodyFontSize:  12,
		WrapWidth:     90,
		BaseFont:      "Helvetica",
	}
}

// Resolve merges cfg over DefaultConfig and validates the result.
func Resolve(cfg Config) (Config, error) {
	out := DefaultConfig()
	applyConfig(&out, cfg)
	if err := out.validate(); err != nil {
		return Config{}, err
	}
	return out, nil
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
	if src.BaseFont != "" {
		dst.BaseFont = src.BaseFont
	}
}

func (c Config) validate() error {
	if c.PageWidth <= 0 || c.PageHeight <= 0 {
		return fmt.Errorf("%w: page size %vx%v", ErrInvalidConfig, c.PageWidth, c.PageHeight)
	}
	if c.MarginTop > c.PageHeight {
		return fmt.Errorf("%w: top margin %v outside page height %v", ErrInvalidConfig, c.MarginTop, c.PageHeight)
	}
	if c.TitleFontSize <= 0 || c.BodyFontSize <= 0 || c.LineHeight <= 0 {
		return fmt.Errorf("%w: font sizes and line height must be positive", ErrInvalidConfig)
	}
	if c.WrapWidth < 1 {
		return fmt.Errorf("%w: wrap width %d", ErrInvalidConfig, c.WrapWidth)
	}
	if !IsStandardFont(c.BaseFont) {
		return fmt.Errorf("%w: %q is not a standard Type1 font", ErrInvalidConfig, c.BaseFont)
	}
	return nil
}

// IsStandardFont reports whether name is one of the 14 fonts every PDF
// reader provides without embedding.
func IsStandardFont(name string) bool {
	switch name {
	case "Courier", "Courier-Bold", "Courier-Oblique", "Courier-BoldOblique",
		"Helvetica", "Helvetica-Bold", "Helvetica-Oblique", "Helvetica-BoldOblique",
		"Times-Roman", "Times-Bold", "Times-Italic", "Times-BoldItalic",
		"Symbol", "ZapfDingbats":
		return true
	default:
		return false
	}
}
