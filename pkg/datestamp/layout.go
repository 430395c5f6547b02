package datestamp

import "strings"

// Margin is the distance in pixels kept from each edge for non-centered anchors.
const Margin = 20

// Anchor is a named label position.
type Anchor string

const (
	TopLeft      Anchor = "top-left"
	TopCenter    Anchor = "top-center"
	TopRight     Anchor = "top-right"
	Center       Anchor = "center"
	BottomLeft   Anchor = "bottom-left"
	BottomCenter Anchor = "bottom-center"
	BottomRight  Anchor = "bottom-right"
)

// Anchors lists every valid anchor.
var Anchors = []Anchor{TopLeft, TopCenter, TopRight, Center, BottomLeft, BottomCenter, BottomRight}

// ParseAnchor resolves s to an anchor. Unknown names resolve to BottomRight with ok=false.
func ParseAnchor(s string) (Anchor, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range Anchors {
		if string(a) == s {
			return a, true
		}
	}
	return BottomRight, false
}

// Place returns the top-left origin for a textW x textH label on an imgW x imgH image.
// The result may fall outside the image when the label does not fit.
func Place(imgW, imgH, textW, textH int, a Anchor) Placement {
	a, _ = ParseAnchor(string(a))

	left := Margin
	hcenter := (imgW - textW) / 2
	right := imgW - textW - Margin
	top := Margin
	vcenter := (imgH - textH) / 2
	bottom := imgH - textH - Margin

	p := Placement{Width: textW, Height: textH}
	switch a {
	case TopLeft:
		p.X, p.Y = left, top
	case TopCenter:
		p.X, p.Y = hcenter, top
	case TopRight:
		p.X, p.Y = right, top
	case Center:
		p.X, p.Y = hcenter, vcenter
	case BottomLeft:
		p.X, p.Y = left, bottom
	case BottomCenter:
		p.X, p.Y = hcenter, bottom
	default:
		p.X, p.Y = right, bottom
	}
	return p
}
