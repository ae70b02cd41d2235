package bmp

import (
	"bytes"
	"image"
	"image/color"
	"os"

	"github.com/bodgit/bmp8/palette"
	"github.com/ericpauley/go-quantize/quantize"
)

// Image is a decoded bitmap: a header, a palette and a width by height
// array of palette indices stored top-down, row-major, with no row
// padding. Width, height and the index array are kept consistent at
// construction; the header carries the last decoded or encoded wire
// fields and is recomputed from scratch whenever the image is encoded.
type Image struct {
	Header  Header
	Palette palette.Palette

	// Pix holds one palette index per pixel; the pixel at (x, y) is
	// Pix[y*width+x] with row 0 the visually topmost row.
	Pix []uint8

	width, height int
}

// New returns a zero-filled image of the given dimensions using the
// supplied quantization target as its palette. A target without
// exactly 256 entries is ignored in favor of the built-in default
// palette.
func New(width, height int, target palette.Palette) (*Image, error) {
	if width < 0 || height < 0 {
		return nil, errDimensions
	}

	p := target.Clone()
	if !p.Canonical() {
		p = palette.Default()
	}

	return &Image{
		Header:  headerFor(width, height),
		Palette: p,
		Pix:     make([]uint8, width*height),
		width:   width,
		height:  height,
	}, nil
}

// Width returns the image width in pixels.
func (m *Image) Width() int {
	return m.width
}

// Height returns the image height in pixels, always positive.
func (m *Image) Height() int {
	return m.height
}

// At returns the palette index of the pixel at (x, y).
func (m *Image) At(x, y int) (uint8, error) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0, ErrBounds
	}
	return m.Pix[y*m.width+x], nil
}

// Set stores a palette index at (x, y).
func (m *Image) Set(x, y int, index uint8) error {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return ErrBounds
	}
	m.Pix[y*m.width+x] = index
	return nil
}

// Bytes encodes the image, including the 14-byte file header, and
// returns the resulting file contents.
func (m *Image) Bytes() ([]byte, error) {
	b := new(bytes.Buffer)
	if err := Encode(b, m); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// WriteFile encodes the image to the named file.
func (m *Image) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := Encode(f, m); err != nil {
		return err
	}
	return f.Close()
}

// Paletted returns the image as an image.Paletted sharing no storage
// with the receiver.
func (m *Image) Paletted() *image.Paletted {
	pm := image.NewPaletted(image.Rect(0, 0, m.width, m.height), m.Palette.ColorPalette())
	for y := 0; y < m.height; y++ {
		copy(pm.Pix[y*pm.Stride:y*pm.Stride+m.width], m.Pix[y*m.width:(y+1)*m.width])
	}
	return pm
}

// FromImage converts any image into the canonical indexed form. With a
// canonical 256 entry target every pixel is mapped onto it directly;
// otherwise the palette is taken from the source image when it is
// already paletted, or derived with a median cut quantizer, padded to
// 256 entries, and used as the target.
func FromImage(src image.Image, target palette.Palette) (*Image, error) {
	b := src.Bounds()

	p := target.Clone()
	if !p.Canonical() {
		if pm, ok := src.(*image.Paletted); ok && len(pm.Palette) <= palette.Entries {
			p = palette.FromColors(pm.Palette).Padded()
		} else {
			q := quantize.MedianCutQuantizer{}
			p = palette.FromColors(q.Quantize(make(color.Palette, 0, palette.Entries), src)).Padded()
		}
	}

	m, err := New(b.Dx(), b.Dy(), p)
	if err != nil {
		return nil, err
	}

	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			r, g, b2, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			c := palette.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b2 >> 8)}
			m.Pix[y*m.width+x] = p.Nearest(c)
		}
	}

	return m, nil
}
