package datestamp

import (
	"fmt"
	"image"
	"image/color"
)

// Metadata is an embedded metadata block: tag name to raw string value.
type Metadata map[string]string

// Asset is a decoded image plus whatever metadata it carried.
type Asset struct {
	Path     string
	Image    image.Image
	Width    int
	Height   int
	Metadata Metadata
}

// CaptureDate is the calendar day a photo was taken.
type CaptureDate struct {
	Year  int
	Month int
	Day   int
}

func (d CaptureDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Style describes how the date label is drawn. It is shared read-only across a run.
type Style struct {
	FontSize int
	Color    color.RGBA
	Anchor   Anchor
}

// Placement is where a label lands, in pixels.
type Placement struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Status is the result class of processing one file.
type Status int

const (
	Watermarked Status = iota
	SkippedNoDate
	Failed
)

func (s Status) String() string {
	switch s {
	case Watermarked:
		return "watermarked"
	case SkippedNoDate:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the per-file result of a run.
type Outcome struct {
	Path   string
	Status Status
	Date   CaptureDate
	Err    error
}

// Summary tallies a run.
type Summary struct {
	Total       int
	Watermarked int
	Skipped     int
	Failed      int
	OutDir      string
	Outcomes    []Outcome
}

func (s *Summary) add(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	switch o.Status {
	case Watermarked:
		s.Watermarked++
	case SkippedNoDate:
		s.Skipped++
	case Failed:
		s.Failed++
	}
}

func (s *Summary) String() string {
	return fmt.Sprintf("processed %d/%d images watermarked (skipped %d, failed %d)", s.Watermarked, s.Total, s.Skipped, s.Failed)
}
