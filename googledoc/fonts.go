package googledoc

import (
	"strings"

	"google.golang.org/api/docs/v1"
)

var monospaceFonts = map[string]bool{
	"courier new":     true,
	"courier":         true,
	"consolas":        true,
	"roboto mono":     true,
	"source code pro": true,
	"inconsolata":     true,
	"ubuntu mono":     true,
	"pt mono":         true,
}

// IsMonospace determines whether a font is monospace (used for detecting
// code blocks)
func IsMonospace(font *docs.WeightedFontFamily) bool {
	if font == nil {
		return false
	}
	return monospaceFonts[strings.ToLower(font.FontFamily)]
}
