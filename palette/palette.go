/*
Package palette implements the 256 color palettes used by the BMP codec
along with the nearest-color quantizer that maps arbitrary colors onto
them.
*/
package palette

import (
	"image/color"
	"math"
)

// Entries defines the number of colors in a canonical palette. Pixel
// values in a decoded image are indices into a palette of this size.
const Entries = 256

// RGB is a single palette entry.
type RGB struct {
	R, G, B uint8
}

// RGBA implements the color.Color interface.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{c.R, c.G, c.B, 0xff}.RGBA()
}

// Palette is an ordered sequence of up to 256 RGB entries. A canonical
// palette has exactly 256; shorter palettes occur when reading color
// tables from foreign files.
type Palette []RGB

// Canonical reports whether the palette has exactly 256 entries and is
// therefore usable as a quantization target.
func (p Palette) Canonical() bool {
	return len(p) == Entries
}

// Clone returns a copy of the palette.
func (p Palette) Clone() Palette {
	q := make(Palette, len(p))
	copy(q, p)
	return q
}

// Padded returns the palette extended to 256 entries with black. The
// receiver is returned unchanged if it is already canonical or longer.
func (p Palette) Padded() Palette {
	if len(p) >= Entries {
		return p
	}
	q := make(Palette, Entries)
	copy(q, p)
	return q
}

// Equal reports whether two palettes hold the same entries in the same
// order, comparing element-wise and stopping at the first difference.
func (p Palette) Equal(q Palette) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// maxDistance is the largest possible Euclidean distance between two
// colors in RGB space, sqrt(255^2 * 3).
var maxDistance = math.Sqrt(3 * 255 * 255)

// Nearest returns the index of the palette entry closest to c under
// Euclidean distance in RGB space. Entries are scanned in order; an
// entry exactly equal to c wins immediately, otherwise only a strictly
// smaller distance displaces the running minimum, so on ties the lowest
// index is returned. The result is deterministic given palette order.
func (p Palette) Nearest(c RGB) uint8 {
	var (
		best  = maxDistance
		index uint8
	)
	for i, e := range p {
		if e == c {
			return uint8(i)
		}
		dr := float64(int(e.R) - int(c.R))
		dg := float64(int(e.G) - int(c.G))
		db := float64(int(e.B) - int(c.B))
		if d := math.Sqrt(dr*dr + dg*dg + db*db); d < best {
			best, index = d, uint8(i)
		}
	}
	return index
}

// ColorPalette returns the palette as a color.Palette for use with the
// standard image packages.
func (p Palette) ColorPalette() color.Palette {
	cp := make(color.Palette, len(p))
	for i, e := range p {
		cp[i] = color.RGBA{e.R, e.G, e.B, 0xff}
	}
	return cp
}

// FromColors converts a color.Palette, discarding alpha. Palettes longer
// than 256 entries are truncated.
func FromColors(cp color.Palette) Palette {
	if len(cp) > Entries {
		cp = cp[:Entries]
	}
	p := make(Palette, len(cp))
	for i, c := range cp {
		r, g, b, _ := c.RGBA()
		p[i] = RGB{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
	}
	return p
}

// base16 holds the first sixteen entries of the default palette.
var base16 = [16]RGB{
	{0x00, 0x00, 0x00}, {0x80, 0x00, 0x00}, {0x00, 0x80, 0x00}, {0x80, 0x80, 0x00},
	{0x00, 0x00, 0x80}, {0x80, 0x00, 0x80}, {0x00, 0x80, 0x80}, {0xc0, 0xc0, 0xc0},
	{0x80, 0x80, 0x80}, {0xff, 0x00, 0x00}, {0x00, 0xff, 0x00}, {0xff, 0xff, 0x00},
	{0x00, 0x00, 0xff}, {0xff, 0x00, 0xff}, {0x00, 0xff, 0xff}, {0xff, 0xff, 0xff},
}

// cubeLevel maps a 0-5 cube coordinate to its channel value.
func cubeLevel(n int) uint8 {
	if n == 0 {
		return 0
	}
	return uint8(40*n + 55)
}

// Default returns the built-in canonical palette: sixteen base colors,
// a 6x6x6 color cube at indices 16-231 and a 24-step gray ramp at
// 232-255. Callers own the returned copy.
func Default() Palette {
	p := make(Palette, Entries)
	copy(p, base16[:])
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p[16+36*r+6*g+b] = RGB{cubeLevel(r), cubeLevel(g), cubeLevel(b)}
			}
		}
	}
	for i := 0; i < 24; i++ {
		v := uint8(8 + 10*i)
		p[232+i] = RGB{v, v, v}
	}
	return p
}
