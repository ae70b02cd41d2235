package bmp

import (
	"io"

	"github.com/bodgit/bmp8/palette"
)

type decoder struct {
	r io.Reader

	header Header
	target palette.Palette
	source palette.Palette

	width, height int
}

// readColorTable reads the source color table when one is present. A
// ColorsUsed of zero on an 8-bit source means an implicit full table;
// a 24-bit source without an explicit count carries no table at all.
// Entries are stored as B, G, R plus a reserved byte.
func (d *decoder) readColorTable() error {
	count := int(d.header.ColorsUsed)
	if count == 0 {
		if d.header.BitCount != 8 {
			return nil
		}
		count = palette.Entries
	}

	var tmp [tableEntrySize]byte
	d.source = make(palette.Palette, count)
	for i := range d.source {
		if err := readFull(d.r, tmp[:]); err != nil {
			return err
		}
		d.source[i] = palette.RGB{R: tmp[2], G: tmp[1], B: tmp[0]}
	}
	return nil
}

// canonicalRow maps a wire row index to its row in the top-down
// canonical array.
func (d *decoder) canonicalRow(y int) int {
	if d.header.topDown() {
		return y
	}
	return d.height - 1 - y
}

// decode8 reads the padded 8-bit rows and reorders them top-down. The
// raw samples are palette indices; remapping onto the target palette,
// when needed, happens afterwards.
func (d *decoder) decode8() ([]uint8, error) {
	stride := (d.width + 3) &^ 3

	raw := make([]byte, stride*d.height)
	if err := readFull(d.r, raw); err != nil {
		return nil, err
	}

	pix := make([]uint8, d.width*d.height)
	for y := 0; y < d.height; y++ {
		row := d.canonicalRow(y)
		copy(pix[row*d.width:(row+1)*d.width], raw[y*stride:y*stride+d.width])
	}
	return pix, nil
}

// decode24 reads the padded 24-bit rows, mapping every B, G, R sample
// onto the target palette as it goes. The padding after the final row
// may legitimately be absent.
func (d *decoder) decode24(target palette.Palette) ([]uint8, error) {
	rowBytes := 3 * d.width
	pad := -rowBytes & 3

	pix := make([]uint8, d.width*d.height)
	row := make([]byte, rowBytes)
	var padBuf [3]byte

	for y := 0; y < d.height; y++ {
		if err := readFull(d.r, row); err != nil {
			return nil, err
		}

		out := pix[d.canonicalRow(y)*d.width:]
		for x := 0; x < d.width; x++ {
			c := palette.RGB{R: row[3*x+2], G: row[3*x+1], B: row[3*x]}
			out[x] = target.Nearest(c)
		}

		if pad == 0 {
			continue
		}
		if err := readFull(d.r, padBuf[:pad]); err != nil {
			if y == d.height-1 && err == io.ErrUnexpectedEOF {
				break
			}
			return nil, err
		}
	}
	return pix, nil
}

func (d *decoder) decode(fileMode bool) (*Image, error) {
	var err error
	if d.header, err = readHeader(d.r, fileMode); err != nil {
		return nil, err
	}

	if (d.header.BitCount != 8 && d.header.BitCount != 24) || d.header.Compression != 0 {
		return nil, ErrUnsupported
	}

	d.width, d.height = d.header.dimensions()

	if err := d.readColorTable(); err != nil {
		return nil, err
	}

	if d.header.BitCount == 24 {
		target := d.target
		if target == nil {
			target = palette.Default()
		}
		pix, err := d.decode24(target)
		if err != nil {
			return nil, err
		}
		return d.result(target, pix), nil
	}

	source := d.source.Padded()

	pix, err := d.decode8()
	if err != nil {
		return nil, err
	}

	// Raw samples pass through untouched only when the source table
	// already matches the target entry for entry.
	if d.target != nil && source.Equal(d.target) {
		return d.result(source, pix), nil
	}

	target := d.target
	if target == nil {
		target = palette.Default()
	}
	for i, s := range pix {
		pix[i] = target.Nearest(source[s])
	}
	return d.result(target, pix), nil
}

func (d *decoder) result(p palette.Palette, pix []uint8) *Image {
	return &Image{
		Header:  d.header,
		Palette: p,
		Pix:     pix,
		width:   d.width,
		height:  d.height,
	}
}

// Decode reads a bitmap from r, including its 14-byte file header, and
// returns it normalized to top-down 8-bit palette indices. A canonical
// 256 entry target palette becomes the palette of the result and any
// source colors outside it are mapped to their nearest entry; passing
// nil (or a palette of the wrong size) quantizes against the built-in
// default palette instead. Sources that are not uncompressed 8-bit or
// 24-bit bitmaps return ErrUnsupported.
func Decode(r io.Reader, target palette.Palette) (*Image, error) {
	d := decoder{r: r}
	if target.Canonical() {
		d.target = target.Clone()
	}
	return d.decode(true)
}

// DecodeRaw is Decode for bitmaps stored without the 14-byte file
// header, as when the info header is embedded in some larger
// structure.
func DecodeRaw(r io.Reader, target palette.Palette) (*Image, error) {
	d := decoder{r: r}
	if target.Canonical() {
		d.target = target.Clone()
	}
	return d.decode(false)
}
