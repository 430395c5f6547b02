package datestamp

import (
	"fmt"
	"os"
	"runtime"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"k8s.io/klog/v2"
)

// FontLocator names a scalable font and knows how to load its bytes.
type FontLocator struct {
	Name string
	Load func() ([]byte, error)
}

// FontFile locates a font on disk.
func FontFile(path string) FontLocator {
	return FontLocator{Name: path, Load: func() ([]byte, error) { return os.ReadFile(path) }}
}

// FontBytes wraps an in-memory font.
func FontBytes(name string, bs []byte) FontLocator {
	return FontLocator{Name: name, Load: func() ([]byte, error) { return bs, nil }}
}

// DefaultFontLocators returns the platform font search list, with user first when set.
func DefaultFontLocators(user string) []FontLocator {
	ls := []FontLocator{}
	if user != "" {
		ls = append(ls, FontFile(user))
	}

	paths := []string{
		"/System/Library/Fonts/Helvetica.ttc",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
	}
	if runtime.GOOS == "windows" {
		paths = []string{`C:\Windows\Fonts\arial.ttf`}
	}
	for _, p := range paths {
		ls = append(ls, FontFile(p))
	}
	return ls
}

// LoadFace returns a face of the given point size from the first locator that loads.
// When none do, it returns the fixed-size built-in bitmap face with scalable=false.
func LoadFace(size int, locators []FontLocator) (face font.Face, scalable bool) {
	for _, l := range locators {
		f, err := openFace(l, size)
		if err != nil {
			klog.V(1).Infof("font %s unavailable: %v", l.Name, err)
			continue
		}
		klog.V(1).Infof("using font %s at %dpt", l.Name, size)
		return f, true
	}

	klog.Warningf("no scalable font found, using built-in %dx%d bitmap font", 7, 13)
	return basicfont.Face7x13, false
}

func openFace(l FontLocator, size int) (font.Face, error) {
	bs, err := l.Load()
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	// single fonts parse as a collection of one
	c, err := opentype.ParseCollection(bs)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	f, err := c.Font(0)
	if err != nil {
		return nil, fmt.Errorf("font 0: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return face, nil
}
