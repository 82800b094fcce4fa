package texture

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func tgaHeader(imageType byte, w, h int, bpp, descriptor byte) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	hdr[17] = descriptor
	return hdr
}

func colorMapped() []byte {
	h := tgaHeader(TGATypeUncompressed, 1, 1, 24, 0)
	h[1] = 1
	return h
}

func bgr(c color.RGBA) []byte { return []byte{c.B, c.G, c.R} }

func TestDecodeTGAUncompressed(t *testing.T) {
	// bottom-to-top: first row in the file is the bottom row
	data := tgaHeader(TGATypeUncompressed, 2, 2, 24, 0)
	for _, c := range []color.RGBA{red, green, blue, white} {
		data = append(data, bgr(c)...)
	}

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	want := map[image.Point]color.RGBA{
		{0, 1}: red, {1, 1}: green,
		{0, 0}: blue, {1, 0}: white,
	}
	for p, c := range want {
		if got := img.RGBAAt(p.X, p.Y); got != c {
			t.Errorf("pixel %v = %v, want %v", p, got, c)
		}
	}
}

func TestDecodeTGATopToBottomAlpha(t *testing.T) {
	data := tgaHeader(TGATypeUncompressed, 1, 2, 32, 0x20)
	data = append(data, 0, 0, 255, 128) // red, half alpha
	data = append(data, 255, 0, 0, 255) // blue

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 255, A: 128}) {
		t.Errorf("top pixel = %v", got)
	}
	if got := img.RGBAAt(0, 1); got != blue {
		t.Errorf("bottom pixel = %v", got)
	}
}

func TestDecodeTGARLE(t *testing.T) {
	data := tgaHeader(TGATypeRLE, 3, 1, 24, 0)
	data = append(data, 0x81) // run of 2
	data = append(data, bgr(red)...)
	data = append(data, 0x00) // 1 raw pixel
	data = append(data, bgr(green)...)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	for x, c := range []color.RGBA{red, red, green} {
		if got := img.RGBAAt(x, 0); got != c {
			t.Errorf("pixel %d = %v, want %v", x, got, c)
		}
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", colorMapped()},
		{"grayscale type", tgaHeader(3, 1, 1, 24, 0)},
		{"16 bit", tgaHeader(TGATypeUncompressed, 1, 1, 16, 0)},
		{"truncated raw", append(tgaHeader(TGATypeUncompressed, 2, 1, 24, 0), 1, 2, 3)},
		{"truncated rle", append(tgaHeader(TGATypeRLE, 2, 1, 24, 0), 0x81)},
		{"zero size", tgaHeader(TGATypeUncompressed, 0, 0, 32, 0)},
		{"zero width", tgaHeader(TGATypeRLE, 0, 4, 24, 0)},
		{"zero height", tgaHeader(TGATypeUncompressed, 4, 0, 24, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}

	_, err := DecodeTGA(append(tgaHeader(TGATypeUncompressed, 2, 1, 24, 0), 1, 2, 3))
	if !errors.Is(err, ErrTGATruncated) {
		t.Errorf("truncated data error = %v, want ErrTGATruncated", err)
	}

	_, err = DecodeTGA(tgaHeader(TGATypeUncompressed, 0, 0, 32, 0))
	if !errors.Is(err, ErrEmptyImage) {
		t.Errorf("0x0 error = %v, want ErrEmptyImage", err)
	}
}

// topBottom is a 1x2 image with red on top and blue below.
func topBottom() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.SetRGBA(0, 0, red)
	img.SetRGBA(0, 1, blue)
	return img
}

func TestLoadFlipsRows(t *testing.T) {
	dir := t.TempDir()

	encoders := map[string]func(f *os.File) error{
		"a.png": func(f *os.File) error { return png.Encode(f, topBottom()) },
		"a.bmp": func(f *os.File) error { return bmp.Encode(f, topBottom()) },
	}
	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			f, err := os.Create(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := encode(f); err != nil {
				t.Fatal(err)
			}
			f.Close()

			img, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got := img.RGBAAt(0, 0); got != blue {
				t.Errorf("row 0 = %v, want the bottom (blue)", got)
			}
			if got := img.RGBAAt(0, 1); got != red {
				t.Errorf("row 1 = %v, want the top (red)", got)
			}
		})
	}
}

func TestLoadTGAByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.TGA")
	data := tgaHeader(TGATypeUncompressed, 1, 1, 24, 0)
	data = append(data, bgr(green)...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != green {
		t.Errorf("pixel = %v, want green", got)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("missing file should fail")
	}
	junk := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(junk, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(junk); err == nil {
		t.Error("undecodable file should fail")
	}

	empty := filepath.Join(dir, "empty.tga")
	if err := os.WriteFile(empty, tgaHeader(TGATypeUncompressed, 0, 0, 32, 0), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(empty); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("Load(0x0 tga) error = %v, want ErrEmptyImage", err)
	}
}

func TestToRGBAOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.SetRGBA(2, 3, green)
	sub := src.SubImage(image.Rect(2, 2, 4, 4))

	got := ToRGBA(sub)
	if got.Rect.Min != (image.Point{}) || got.Rect.Dx() != 2 || got.Rect.Dy() != 2 {
		t.Fatalf("bounds = %v", got.Rect)
	}
	if c := got.RGBAAt(0, 1); c != green {
		t.Errorf("pixel = %v, want green", c)
	}
}

func TestWhite(t *testing.T) {
	img := White()
	if img.Rect.Dx() != 1 || img.Rect.Dy() != 1 || img.RGBAAt(0, 0) != white {
		t.Errorf("White() = %v %v", img.Rect, img.RGBAAt(0, 0))
	}
}
