// datestamp stamps the EXIF capture date onto each photo in a directory.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"

	"github.com/tstromberg/datestamp/pkg/datestamp"
)

var (
	fontSize  = flag.Int("font-size", datestamp.DefaultFontSize, "font size for the date label")
	colorFlag = flag.String("color", "white", "label color: white, black, red, green, blue, yellow, cyan, magenta, #RRGGBB or rgb(r,g,b)")
	position  = flag.String("position", string(datestamp.DefaultAnchor), "label position: "+anchorNames())
	fontPath  = flag.String("font", "", "path to a TTF/OTF/TTC font to try before the system fonts")
	quality   = flag.Int("quality", datestamp.DefaultQuality, "JPEG output quality (1-100)")
	useTool   = flag.Bool("exiftool", false, "read metadata with the exiftool binary instead of the built-in EXIF reader")
	watchFlag = flag.Bool("watch", false, "watch the input directory and re-stamp when images change")
)

// settle is how long the input directory must be quiet before a rerun in watch mode.
var settle = 2 * time.Second

func anchorNames() string {
	ns := []string{}
	for _, a := range datestamp.Anchors {
		ns = append(ns, string(a))
	}
	return strings.Join(ns, ", ")
}

// parseInterspersed parses args with fs, accepting flags before and after positional arguments.
// Everything after a bare "--" is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	pos := []string{}
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return pos, nil
		}
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(pos, rest...), nil
		}
		pos = append(pos, rest[0])
		args = rest[1:]
	}
}

func main() {
	klog.InitFlags(nil)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <input_dir> [flags]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	args, err := parseInterspersed(flag.CommandLine, os.Args[1:])
	if err != nil {
		klog.Exitf("parse flags: %v", err)
	}

	if len(args) != 1 {
		flag.Usage()
		klog.Exitf("expected exactly one input directory, got %d arguments", len(args))
	}
	inDir := args[0]

	st, err := os.Stat(inDir)
	if err != nil || !st.IsDir() {
		klog.Exitf("%s is not a valid directory", inDir)
	}

	if *fontSize <= 0 {
		klog.Exitf("--font-size must be positive, got %d", *fontSize)
	}

	c := datestamp.DefaultConfig(inDir)
	c.Style.FontSize = *fontSize
	c.Quality = *quality
	c.Fonts = datestamp.DefaultFontLocators(*fontPath)

	col, ok := datestamp.ResolveColor(*colorFlag)
	if !ok {
		klog.Warningf("unknown color %q, using white", *colorFlag)
	}
	c.Style.Color = col

	a, ok := datestamp.ParseAnchor(*position)
	if !ok {
		klog.Warningf("unknown position %q, using %s", *position, a)
	}
	c.Style.Anchor = a

	if *useTool {
		et, err := datestamp.NewExiftool()
		if err != nil {
			klog.Exitf("exiftool failed: %v", err)
		}
		defer func() {
			if err := et.Close(); err != nil {
				klog.Errorf("failed to close exiftool: %v", err)
			}
		}()
		c.Metadata = et
	}

	klog.Infof("input directory: %s", inDir)
	klog.Infof("font size: %d", c.Style.FontSize)
	klog.Infof("color: %s (%d,%d,%d)", *colorFlag, col.R, col.G, col.B)
	klog.Infof("position: %s", a)

	if err := run(c); err != nil {
		klog.Exitf("stamp failed: %v", err)
	}

	if *watchFlag {
		if err := watch(c); err != nil {
			klog.Exitf("watch failed: %v", err)
		}
	}
}

func run(c *datestamp.Config) error {
	s, err := datestamp.Run(c)
	if err != nil {
		return err
	}

	fmt.Printf("\nProcessing complete: %d/%d images watermarked", s.Watermarked, s.Total)
	if s.Skipped > 0 || s.Failed > 0 {
		fmt.Printf(" (%d skipped, %d failed)", s.Skipped, s.Failed)
	}
	fmt.Printf("\nOutput directory: %s\n", s.OutDir)
	return nil
}

// watch reruns the batch whenever a candidate image in the input directory changes.
func watch(c *datestamp.Config) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(c.InDir); err != nil {
		return fmt.Errorf("add %s: %w", c.InDir, err)
	}
	klog.Infof("watching %s for changes ...", c.InDir)

	formats := c.Formats
	if formats == nil {
		formats = datestamp.SupportedFormats()
	}

	timer := time.NewTimer(settle)
	timer.Stop()

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !datestamp.IsCandidate(event.Name, formats) {
				continue
			}
			klog.V(1).Infof("event: %s", event)
			timer.Reset(settle)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			klog.Errorf("watch error: %v", err)
		case <-timer.C:
			if err := run(c); err != nil {
				klog.Errorf("stamp failed: %v", err)
			}
		}
	}
}
