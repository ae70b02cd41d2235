/*
Package bmp implements a decoder and encoder for uncompressed Windows
bitmaps restricted to the 8-bit indexed and 24-bit true color variants.

Decoded images are always normalized to 8-bit palette indices stored
top-down with no row padding, whatever the on-disk layout was; colors
that are not present in the target palette are mapped onto it with a
nearest-neighbor search in RGB space. The encoder always emits an
8-bit, bottom-up, uncompressed bitmap with a full 256 entry color
table.
*/
package bmp

import (
	"errors"
	"io"

	"github.com/bodgit/bmp8/palette"
)

const (
	fileHeaderSize = 14
	infoHeaderSize = 40

	// DataOffset written in raw mode headers, where no 14-byte file
	// header precedes the info header on the wire.
	rawDataOffset = fileHeaderSize + infoHeaderSize

	tableEntrySize = 4
	tableSize      = palette.Entries * tableEntrySize

	// The encoder records the pixel data as starting at 44 bytes of
	// headers plus the color table. This matches the output format
	// produced by existing tools; the decoder reads sequentially and
	// never seeks to it.
	encodedDataOffset = 44 + tableSize
)

var (
	// ErrUnsupported is returned when the source is not an
	// uncompressed 8-bit or 24-bit bitmap.
	ErrUnsupported = errors.New("bmp: unsupported format")

	// ErrBounds is returned by At and Set when a coordinate falls
	// outside the image.
	ErrBounds = errors.New("bmp: coordinate out of range")

	errDimensions = errors.New("bmp: invalid dimensions")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}
