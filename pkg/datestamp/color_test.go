package datestamp

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#FF0000", color.RGBA{R: 255, A: 255}, true},
		{"#00ff7f", color.RGBA{G: 255, B: 127, A: 255}, true},
		{"rgb(10, 20, 30)", color.RGBA{R: 10, G: 20, B: 30, A: 255}, true},
		{"rgb(0,0,0)", color.RGBA{A: 255}, true},
		{"RGB( 1 ,2, 3 )", color.RGBA{R: 1, G: 2, B: 3, A: 255}, true},
		{"BLUE", color.RGBA{B: 255, A: 255}, true},
		{"magenta", color.RGBA{R: 255, B: 255, A: 255}, true},
		{"  yellow ", color.RGBA{R: 255, G: 255, A: 255}, true},
		{"black", color.RGBA{A: 255}, true},
		// leniency: anything unrecognised is white, never an error
		{"not-a-color", white, false},
		{"", white, false},
		{"#FFF", white, false},
		{"#GGGGGG", white, false},
		{"#FF00001", white, false},
		{"rgb(256,0,0)", white, false},
		{"rgb(1,2)", white, false},
		{"rgb(-1,2,3)", white, false},
		{"rgb(a,b,c)", white, false},
		{"rgb(1,2,3", white, false},
		{"orange", white, false},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := ParseColor(tc.in); got != tc.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tc.in, got, tc.want)
			}
			if _, ok := ResolveColor(tc.in); ok != tc.ok {
				t.Errorf("ResolveColor(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			}
		})
	}
}
