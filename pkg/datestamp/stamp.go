package datestamp

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/imgio"
	"golang.org/x/image/font"
	"golang.org/x/image/tiff"
	"k8s.io/klog/v2"
)

// Stamper watermarks single files with a fixed style.
type Stamper struct {
	Style    Style
	Face     font.Face
	Metadata MetadataReader
	Quality  int
}

// Stamp decodes in, reads its capture date and, when one is found, writes a labelled copy to out.
// Errors are reported through the returned Outcome, never as a panic.
func (s *Stamper) Stamp(in string, out string) (o Outcome) {
	o = Outcome{Path: in}
	defer func() {
		if r := recover(); r != nil {
			o.Status = Failed
			o.Err = fmt.Errorf("panic: %v", r)
		}
	}()

	img, err := imgio.Open(in)
	if err != nil {
		return failed(o, fmt.Errorf("imgio.Open: %w", err))
	}

	md, err := s.Metadata.ReadMetadata(in)
	if err != nil {
		return failed(o, fmt.Errorf("read metadata: %w", err))
	}

	d, ok := ExtractDate(md)
	if !ok {
		o.Status = SkippedNoDate
		return o
	}
	o.Date = d

	a := &Asset{Path: in, Image: img, Width: img.Bounds().Dx(), Height: img.Bounds().Dy(), Metadata: md}
	labelled := s.label(a, d.String())

	enc, err := encoderFor(out, s.Quality)
	if err != nil {
		return failed(o, err)
	}
	if err := save(out, labelled, enc); err != nil {
		return failed(o, fmt.Errorf("save: %w", err))
	}

	o.Status = Watermarked
	return o
}

func failed(o Outcome, err error) Outcome {
	o.Status = Failed
	o.Err = err
	return o
}

// label returns an RGBA copy of the asset with text drawn on it.
func (s *Stamper) label(a *Asset, text string) image.Image {
	rgba := clone.AsRGBA(a.Image)

	w, h := Measure(s.Face, text)
	p := Place(a.Width, a.Height, w, h, s.Style.Anchor)
	klog.V(1).Infof("%s: %q %dx%d at (%d,%d) on %dx%d", a.Path, text, w, h, p.X, p.Y, a.Width, a.Height)

	// placement is relative to the image's own origin
	origin := rgba.Bounds().Min
	p.X += origin.X
	p.Y += origin.Y
	Render(rgba, text, s.Face, s.Style.Color, p)
	return rgba
}

func tiffEncoder() imgio.Encoder {
	return func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
}

// encoderFor picks an encoder matching the container implied by path's extension.
func encoderFor(path string, quality int) (imgio.Encoder, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "jpg", "jpeg":
		return imgio.JPEGEncoder(quality), nil
	case "png":
		return imgio.PNGEncoder(), nil
	case "bmp":
		return imgio.BMPEncoder(), nil
	case "tif", "tiff":
		return tiffEncoder(), nil
	default:
		return nil, fmt.Errorf("no encoder for %q", filepath.Ext(path))
	}
}

// save encodes img to a temporary file next to path and renames it into place,
// so path is either fully written or untouched.
func save(path string, img image.Image, enc imgio.Encoder) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmp := f.Name()

	if err := enc(f, img); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
