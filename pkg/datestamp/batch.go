package datestamp

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/klog/v2"
)

// OutDir returns the output directory for inDir: <inDir>/<base(inDir)>_watermark.
func OutDir(inDir string) string {
	clean := filepath.Clean(inDir)
	base := filepath.Base(clean)
	if abs, err := filepath.Abs(clean); err == nil {
		base = filepath.Base(abs)
	}
	return filepath.Join(clean, base+"_watermark")
}

// Run stamps every candidate image in c.InDir. Per-file problems are recorded in the
// summary; the returned error is reserved for problems that stop the whole run.
func Run(c *Config) (*Summary, error) {
	c = c.withDefaults()

	st, err := os.Stat(c.InDir)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", c.InDir)
	}

	outDir := OutDir(c.InDir)
	klog.Infof("stamp: %s -> %s", c.InDir, outDir)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}

	paths, err := Find(c.InDir, c.Formats)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}

	s := &Summary{Total: len(paths), OutDir: outDir}
	if len(paths) == 0 {
		klog.Infof("no supported image files found in %s", c.InDir)
		return s, nil
	}
	klog.Infof("found %d images to process", len(paths))

	face, _ := LoadFace(c.Style.FontSize, c.Fonts)
	stamper := &Stamper{Style: c.Style, Face: face, Metadata: c.Metadata, Quality: c.Quality}

	for _, p := range paths {
		out := filepath.Join(outDir, filepath.Base(p))
		o := stamper.Stamp(p, out)

		switch o.Status {
		case Watermarked:
			klog.Infof("watermarked: %s -> %s (%s)", filepath.Base(p), out, o.Date)
		case SkippedNoDate:
			klog.Infof("no capture date found for %s, skipping", filepath.Base(p))
		case Failed:
			klog.Errorf("error processing %s: %v", p, o.Err)
		}
		s.add(o)
	}

	klog.Infof("%s", s)
	return s, nil
}
