package bmp

import (
	"encoding/binary"
	"io"
)

// signature is the "BM" type tag, little-endian.
const signature = 0x4d42

// Header mirrors the BMP file header followed by the 40-byte info
// header. Height is signed: a negative value means the pixel rows are
// stored top-down on the wire, a positive one bottom-up; the magnitude
// is the pixel height either way.
type Header struct {
	Type            uint16
	FileSize        uint32
	Reserved        uint32
	DataOffset      uint32
	HeaderSize      uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitCount        uint16
	Compression     uint32
	SizeImage       uint32
	XPelsPerMeter   int32
	YPelsPerMeter   int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// topDown reports whether the pixel rows are stored top-down on the
// wire.
func (h Header) topDown() bool {
	return h.Height < 0
}

// dimensions returns the storage width and height, both non-negative.
func (h Header) dimensions() (width, height int) {
	width, height = int(h.Width), int(h.Height)
	if width < 0 {
		width = -width
	}
	if height < 0 {
		height = -height
	}
	return
}

// fileHeader is the wire form of the optional 14-byte file header.
type fileHeader struct {
	Type       uint16
	FileSize   uint32
	Reserved   uint32
	DataOffset uint32
}

// infoHeader is the wire form of the 40-byte info header, minus the
// leading size field which is read separately.
type infoHeader struct {
	Width           int32
	Height          int32
	Planes          uint16
	BitCount        uint16
	Compression     uint32
	SizeImage       uint32
	XPelsPerMeter   int32
	YPelsPerMeter   int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// readHeader reads a header from r. In file mode the 14-byte file
// header is consumed first; in raw mode its fields take fixed
// defaults. No validation happens here, malformed fields surface as
// decode failures later.
func readHeader(r io.Reader, fileMode bool) (Header, error) {
	var h Header

	if fileMode {
		var fh fileHeader
		if err := binary.Read(r, binary.LittleEndian, &fh); err != nil {
			return Header{}, err
		}
		h.Type = fh.Type
		h.FileSize = fh.FileSize
		h.Reserved = fh.Reserved
		h.DataOffset = fh.DataOffset
	} else {
		h.Type = signature
		h.DataOffset = rawDataOffset
	}

	if err := binary.Read(r, binary.LittleEndian, &h.HeaderSize); err != nil {
		return Header{}, err
	}

	var ih infoHeader
	if err := binary.Read(r, binary.LittleEndian, &ih); err != nil {
		return Header{}, err
	}
	h.Width = ih.Width
	h.Height = ih.Height
	h.Planes = ih.Planes
	h.BitCount = ih.BitCount
	h.Compression = ih.Compression
	h.SizeImage = ih.SizeImage
	h.XPelsPerMeter = ih.XPelsPerMeter
	h.YPelsPerMeter = ih.YPelsPerMeter
	h.ColorsUsed = ih.ColorsUsed
	h.ColorsImportant = ih.ColorsImportant

	return h, nil
}

// writeHeader writes h to w, optionally preceded by the 14-byte file
// header.
func writeHeader(w io.Writer, h Header, fileMode bool) error {
	if fileMode {
		fh := fileHeader{
			Type:       h.Type,
			FileSize:   h.FileSize,
			Reserved:   h.Reserved,
			DataOffset: h.DataOffset,
		}
		if err := binary.Write(w, binary.LittleEndian, &fh); err != nil {
			return err
		}
	}

	if err := binary.Write(w, binary.LittleEndian, h.HeaderSize); err != nil {
		return err
	}

	ih := infoHeader{
		Width:           h.Width,
		Height:          h.Height,
		Planes:          h.Planes,
		BitCount:        h.BitCount,
		Compression:     h.Compression,
		SizeImage:       h.SizeImage,
		XPelsPerMeter:   h.XPelsPerMeter,
		YPelsPerMeter:   h.YPelsPerMeter,
		ColorsUsed:      h.ColorsUsed,
		ColorsImportant: h.ColorsImportant,
	}
	return binary.Write(w, binary.LittleEndian, &ih)
}
