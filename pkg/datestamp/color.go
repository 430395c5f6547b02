package datestamp

import (
	"image/color"
	"strconv"
	"strings"
)

var palette = map[string]color.RGBA{
	"white":   {R: 255, G: 255, B: 255, A: 255},
	"black":   {R: 0, G: 0, B: 0, A: 255},
	"red":     {R: 255, G: 0, B: 0, A: 255},
	"green":   {R: 0, G: 255, B: 0, A: 255},
	"blue":    {R: 0, G: 0, B: 255, A: 255},
	"yellow":  {R: 255, G: 255, B: 0, A: 255},
	"cyan":    {R: 0, G: 255, B: 255, A: 255},
	"magenta": {R: 255, G: 0, B: 255, A: 255},
}

// ParseColor maps "#RRGGBB", "rgb(r,g,b)" or a palette name to a color.
// Anything it does not understand becomes white, so a typo never stops a batch.
func ParseColor(token string) color.RGBA {
	c, _ := ResolveColor(token)
	return c
}

// ResolveColor is ParseColor that also reports whether the token was understood.
func ResolveColor(token string) (color.RGBA, bool) {
	t := strings.TrimSpace(token)
	lt := strings.ToLower(t)

	switch {
	case strings.HasPrefix(t, "#"):
		if c, ok := parseHex(t[1:]); ok {
			return c, true
		}
	case strings.HasPrefix(lt, "rgb(") && strings.HasSuffix(lt, ")"):
		if c, ok := parseTriple(t[4 : len(t)-1]); ok {
			return c, true
		}
	default:
		if c, ok := palette[lt]; ok {
			return c, true
		}
	}

	return palette["white"], false
}

func parseHex(s string) (color.RGBA, bool) {
	if len(s) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
}

func parseTriple(s string) (color.RGBA, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return color.RGBA{}, false
	}

	var vs [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.RGBA{}, false
		}
		vs[i] = uint8(n)
	}
	return color.RGBA{R: vs[0], G: vs[1], B: vs[2], A: 255}, true
}
