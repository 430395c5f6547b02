package datestamp

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

var outlineColor = color.RGBA{A: 255}

// outline holds the one-pixel offsets drawn in black behind the label.
var outline = []image.Point{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// Measure returns the size of the ink bounding box of text in face.
func Measure(face font.Face, text string) (w, h int) {
	b, _ := font.BoundString(face, text)
	return (b.Max.X - b.Min.X).Ceil(), (b.Max.Y - b.Min.Y).Ceil()
}

// Render draws text with its ink box's top-left at p, outlined in black.
func Render(dst draw.Image, text string, face font.Face, c color.Color, p Placement) {
	b, _ := font.BoundString(face, text)
	// BoundString is relative to the dot; shift so the box starts at p
	dot := fixed.P(p.X, p.Y).Sub(b.Min)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(outlineColor),
		Face: face,
	}

	for _, o := range outline {
		d.Dot = dot.Add(fixed.P(o.X, o.Y))
		d.DrawString(text)
	}

	d.Src = image.NewUniform(c)
	d.Dot = dot
	d.DrawString(text)
}
