// Package datestamp stamps the capture date of photos onto the photos themselves.
package datestamp

import "image/color"

var (
	DefaultFontSize = 48
	DefaultQuality  = 95
	DefaultColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	DefaultAnchor   = BottomRight
)

// Config holds configuration for a datestamp run.
type Config struct {
	InDir   string
	Style   Style
	Quality int

	// Formats is the set of lowercase extensions (without the dot) considered candidates.
	Formats map[string]bool
	// Fonts are tried in order; the built-in bitmap face is used when none load.
	Fonts []FontLocator
	// Metadata reads the embedded metadata block of a file.
	Metadata MetadataReader
}

// DefaultConfig returns a config for inDir with the stock style.
func DefaultConfig(inDir string) *Config {
	return &Config{
		InDir: inDir,
		Style: Style{
			FontSize: DefaultFontSize,
			Color:    DefaultColor,
			Anchor:   DefaultAnchor,
		},
		Quality:  DefaultQuality,
		Formats:  SupportedFormats(),
		Fonts:    DefaultFontLocators(""),
		Metadata: ExifReader{},
	}
}

// SupportedFormats returns a fresh copy of the default candidate extensions.
func SupportedFormats() map[string]bool {
	return map[string]bool{
		"jpg":  true,
		"jpeg": true,
		"png":  true,
		"bmp":  true,
		"tiff": true,
		"tif":  true,
	}
}

func (c *Config) withDefaults() *Config {
	n := *c
	if n.Style.FontSize <= 0 {
		n.Style.FontSize = DefaultFontSize
	}
	if n.Style.Color == (color.RGBA{}) {
		n.Style.Color = DefaultColor
	}
	if n.Quality <= 0 || n.Quality > 100 {
		n.Quality = DefaultQuality
	}
	if n.Formats == nil {
		n.Formats = SupportedFormats()
	}
	if n.Fonts == nil {
		n.Fonts = DefaultFontLocators("")
	}
	if n.Metadata == nil {
		n.Metadata = ExifReader{}
	}
	return &n
}
