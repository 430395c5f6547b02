package datestamp

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/barasher/go-exiftool"
	"github.com/rwcarlsen/goexif/exif"
	"k8s.io/klog/v2"
)

var exifDate = "2006:01:02 15:04:05"

// dateFields are tried in order; each entry lists the names the same field goes by.
var dateFields = [][]string{
	{string(exif.DateTimeOriginal)},
	{string(exif.DateTimeDigitized), "CreateDate"},
	{string(exif.DateTime), "ModifyDate"},
}

// MetadataReader reads the embedded metadata block of an image file.
// A nil Metadata with a nil error means the file carries no metadata.
type MetadataReader interface {
	ReadMetadata(path string) (Metadata, error)
}

// ExtractDate returns the capture date held in md. The first candidate field that
// parses wins; unparseable values are ignored.
func ExtractDate(md Metadata) (CaptureDate, bool) {
	for _, names := range dateFields {
		for _, n := range names {
			v, ok := md[n]
			if !ok {
				continue
			}
			v = strings.TrimRight(v, "\x00")
			if len(v) != len(exifDate) {
				klog.V(1).Infof("ignoring %s=%q: not in %q form", n, v, exifDate)
				continue
			}
			t, err := time.Parse(exifDate, v)
			if err != nil {
				klog.V(1).Infof("ignoring %s=%q: %v", n, v, err)
				continue
			}
			return CaptureDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, true
		}
	}
	return CaptureDate{}, false
}

// ExifReader reads EXIF blocks from JPEG, TIFF and PNG (eXIf chunk) files in pure Go.
type ExifReader struct{}

func (ExifReader) ReadMetadata(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var r io.Reader = br
	if sig, _ := br.Peek(len(pngSignature)); bytes.Equal(sig, []byte(pngSignature)) {
		payload, err := pngExif(br)
		if err != nil {
			klog.V(1).Infof("png chunks in %s: %v", path, err)
		}
		if payload == nil {
			return nil, nil
		}
		r = bytes.NewReader(payload)
	}

	x, err := exif.Decode(r)
	if x == nil {
		// no APP1 marker, no exif header, or not a TIFF: nothing embedded
		klog.V(1).Infof("no exif in %s: %v", path, err)
		return nil, nil
	}
	if err != nil {
		klog.Warningf("partial exif in %s: %v", path, err)
	}

	md := Metadata{}
	for _, names := range dateFields {
		tag, err := x.Get(exif.FieldName(names[0]))
		if err != nil {
			continue
		}
		s, err := tag.StringVal()
		if err != nil {
			klog.V(1).Infof("%s in %s: %v", names[0], path, err)
			continue
		}
		md[names[0]] = s
	}
	return md, nil
}

const (
	pngSignature = "\x89PNG\r\n\x1a\n"
	maxExifChunk = 1 << 20
)

// pngExif returns the TIFF payload of the eXIf chunk in a PNG stream, or nil when there is none.
func pngExif(r io.Reader) ([]byte, error) {
	if _, err := io.CopyN(io.Discard, r, int64(len(pngSignature))); err != nil {
		return nil, fmt.Errorf("signature: %w", err)
	}

	var hdr [8]byte
	for {
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return nil, fmt.Errorf("chunk header: %w", err)
		}
		n := int64(binary.BigEndian.Uint32(hdr[:4]))
		switch string(hdr[4:]) {
		case "eXIf":
			if n > maxExifChunk {
				return nil, fmt.Errorf("eXIf chunk of %d bytes", n)
			}
			bs := make([]byte, n)
			if _, err := io.ReadFull(r, bs); err != nil {
				return nil, fmt.Errorf("eXIf: %w", err)
			}
			// some writers keep the JPEG APP1 prefix
			return bytes.TrimPrefix(bs, []byte("Exif\x00\x00")), nil
		case "IEND":
			return nil, nil
		}
		// data + crc
		if _, err := io.CopyN(io.Discard, r, n+4); err != nil {
			return nil, fmt.Errorf("skip %s: %w", hdr[4:], err)
		}
	}
}

// Exiftool reads metadata through a long-running exiftool process.
type Exiftool struct {
	et *exiftool.Exiftool
}

// NewExiftool starts exiftool. Close must be called when done.
func NewExiftool() (*Exiftool, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("exiftool: %w", err)
	}
	return &Exiftool{et: et}, nil
}

func (e *Exiftool) ReadMetadata(path string) (Metadata, error) {
	fis := e.et.ExtractMetadata(path)
	if len(fis) == 0 {
		return nil, fmt.Errorf("extract fail for %q: no result", path)
	}
	fi := fis[0]
	if fi.Err != nil {
		return nil, fmt.Errorf("extract fail for %q: %w", path, fi.Err)
	}

	md := Metadata{}
	for _, names := range dateFields {
		for _, n := range names {
			s, err := fi.GetString(n)
			if errors.Is(err, exiftool.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				klog.V(1).Infof("unable to get %s for %s: %v", n, path, err)
				continue
			}
			md[n] = s
		}
	}
	return md, nil
}

func (e *Exiftool) Close() error {
	return e.et.Close()
}
