package datestamp

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

const (
	tagDateTime          = 0x0132
	tagExifIFDPointer    = 0x8769
	tagDateTimeOriginal  = 0x9003
	tagDateTimeDigitized = 0x9004
)

// testFonts never touches the fonts installed on the machine.
var testFonts = []FontLocator{FontBytes("goregular", goregular.TTF)}

// exifTIFF builds a little-endian TIFF block holding ASCII tags. Tags at or above
// 0x9000 go into the Exif sub-IFD, the rest into IFD0.
func exifTIFF(tags map[uint16]string) []byte {
	var ifd0, sub []uint16
	for t := range tags {
		if t >= 0x9000 {
			sub = append(sub, t)
		} else {
			ifd0 = append(ifd0, t)
		}
	}
	sort.Slice(ifd0, func(i, j int) bool { return ifd0[i] < ifd0[j] })
	sort.Slice(sub, func(i, j int) bool { return sub[i] < sub[j] })

	n0 := len(ifd0)
	if len(sub) > 0 {
		n0++
	}
	ifd0Off := 8
	subOff := ifd0Off + 2 + 12*n0 + 4
	dataOff := subOff
	if len(sub) > 0 {
		dataOff += 2 + 12*len(sub) + 4
	}

	le := binary.LittleEndian
	var data bytes.Buffer
	put := func(b *bytes.Buffer, v any) {
		if err := binary.Write(b, le, v); err != nil {
			panic(err)
		}
	}
	entry := func(b *bytes.Buffer, tag uint16, val string) {
		v := append([]byte(val), 0)
		put(b, tag)
		put(b, uint16(2)) // ASCII
		put(b, uint32(len(v)))
		if len(v) <= 4 {
			pad := make([]byte, 4)
			copy(pad, v)
			b.Write(pad)
			return
		}
		put(b, uint32(dataOff+data.Len()))
		data.Write(v)
	}

	var out bytes.Buffer
	out.WriteString("II")
	put(&out, uint16(42))
	put(&out, uint32(ifd0Off))

	put(&out, uint16(n0))
	for _, t := range ifd0 {
		entry(&out, t, tags[t])
	}
	if len(sub) > 0 {
		put(&out, uint16(tagExifIFDPointer))
		put(&out, uint16(4)) // LONG
		put(&out, uint32(1))
		put(&out, uint32(subOff))
	}
	put(&out, uint32(0))

	if len(sub) > 0 {
		put(&out, uint16(len(sub)))
		for _, t := range sub {
			entry(&out, t, tags[t])
		}
		put(&out, uint32(0))
	}

	out.Write(data.Bytes())
	return out.Bytes()
}

func testImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// jpegWithExif encodes img as JPEG and splices an APP1 Exif segment after SOI.
func jpegWithExif(t *testing.T, img image.Image, tags map[uint16]string) []byte {
	t.Helper()
	var enc bytes.Buffer
	if err := jpeg.Encode(&enc, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("jpeg encode: %v", err)
	}
	if tags == nil {
		return enc.Bytes()
	}

	payload := append([]byte("Exif\x00\x00"), exifTIFF(tags)...)
	var out bytes.Buffer
	out.Write([]byte{0xFF, 0xD8, 0xFF, 0xE1})
	if err := binary.Write(&out, binary.BigEndian, uint16(len(payload)+2)); err != nil {
		t.Fatalf("write length: %v", err)
	}
	out.Write(payload)
	out.Write(enc.Bytes()[2:])
	return out.Bytes()
}

func writeJPEG(t *testing.T, path string, tags map[uint16]string) {
	t.Helper()
	bs := jpegWithExif(t, testImage(320, 240, color.RGBA{R: 90, G: 140, B: 200, A: 255}), tags)
	if err := os.WriteFile(path, bs, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, testImage(200, 100, color.RGBA{R: 30, G: 30, B: 30, A: 255})); err != nil {
		t.Fatalf("png encode: %v", err)
	}
}

// pngWithExif encodes img as PNG and inserts an eXIf chunk after IHDR. With app1 set the
// payload keeps the "Exif\x00\x00" prefix some writers emit.
func pngWithExif(t *testing.T, img image.Image, tags map[uint16]string, app1 bool) []byte {
	t.Helper()
	var enc bytes.Buffer
	if err := png.Encode(&enc, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}

	data := exifTIFF(tags)
	if app1 {
		data = append([]byte("Exif\x00\x00"), data...)
	}
	body := append([]byte("eXIf"), data...)

	var chunk bytes.Buffer
	if err := binary.Write(&chunk, binary.BigEndian, uint32(len(data))); err != nil {
		t.Fatalf("write length: %v", err)
	}
	chunk.Write(body)
	if err := binary.Write(&chunk, binary.BigEndian, crc32.ChecksumIEEE(body)); err != nil {
		t.Fatalf("write crc: %v", err)
	}

	// signature (8) + IHDR (4 length, 4 type, 13 data, 4 crc)
	bs := enc.Bytes()
	out := append([]byte{}, bs[:33]...)
	out = append(out, chunk.Bytes()...)
	return append(out, bs[33:]...)
}

func dated(original string) map[uint16]string {
	return map[uint16]string{tagDateTimeOriginal: original}
}

// photoDir creates <tmp>/<name> holding two dated JPEGs, one undated PNG and a text file.
func photoDir(t *testing.T, name string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeJPEG(t, filepath.Join(dir, "a.jpg"), dated("2021:07:04 10:11:12"))
	writeJPEG(t, filepath.Join(dir, "B.JPEG"), map[uint16]string{
		tagDateTime:          "2019:01:01 00:00:00",
		tagDateTimeDigitized: "2020:02:29 23:59:59",
	})
	writePNG(t, filepath.Join(dir, "c.png"))
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}
	return dir
}
