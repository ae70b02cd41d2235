package bmp

import (
	"io"

	"github.com/bodgit/bmp8/palette"
)

type encoder struct {
	w io.Writer
}

// headerFor builds the header for an encoded image of the given
// dimensions. Every field is derived from the current state; nothing
// is carried over from the header the image was decoded with.
func headerFor(width, height int) Header {
	stride := (width + 3) &^ 3
	return Header{
		Type:       signature,
		FileSize:   uint32(encodedDataOffset + stride*height),
		DataOffset: encodedDataOffset,
		HeaderSize: infoHeaderSize,
		Width:      int32(width),
		Height:     int32(height),
		Planes:     1,
		BitCount:   8,
		SizeImage:  uint32(width * height),
	}
}

// writeColorTable writes the full 256 entry table, 4 bytes per entry
// as B, G, R and a reserved zero byte. A shorter palette is padded
// with black.
func (e *encoder) writeColorTable(p palette.Palette) error {
	var b [tableSize]byte
	for i, c := range p.Padded() {
		b[i*tableEntrySize] = c.B
		b[i*tableEntrySize+1] = c.G
		b[i*tableEntrySize+2] = c.R
	}
	_, err := e.w.Write(b[:])
	return err
}

// encode writes the image as an 8-bit, bottom-up, uncompressed bitmap.
// Rows are emitted from the visually bottommost up, reversing the
// canonical top-down array, with zero bytes in the padding columns.
func (e *encoder) encode(m *Image, fileMode bool) error {
	h := headerFor(m.width, m.height)

	if err := writeHeader(e.w, h, fileMode); err != nil {
		return err
	}

	if err := e.writeColorTable(m.Palette); err != nil {
		return err
	}

	stride := (m.width + 3) &^ 3
	row := make([]byte, stride)
	for y := m.height - 1; y >= 0; y-- {
		copy(row, m.Pix[y*m.width:(y+1)*m.width])
		if _, err := e.w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// Encode writes the image m to w as a complete bitmap file, 14-byte
// file header included. The output is always 8-bit, bottom-up and
// uncompressed whatever depth m was decoded from.
func Encode(w io.Writer, m *Image) error {
	e := encoder{w: w}
	return e.encode(m, true)
}

// EncodeRaw is Encode without the 14-byte file header: the output
// starts directly at the info header.
func EncodeRaw(w io.Writer, m *Image) error {
	e := encoder{w: w}
	return e.encode(m, false)
}
