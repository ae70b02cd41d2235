package bmp

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/bodgit/bmp8/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u16(b []byte, off int) uint16 { return binary.LittleEndian.Uint16(b[off:]) }
func u32(b []byte, off int) uint32 { return binary.LittleEndian.Uint32(b[off:]) }

func TestEncodeHeader(t *testing.T) {
	m, err := New(5, 3, palette.Default())
	require.NoError(t, err)

	b, err := m.Bytes()
	require.NoError(t, err)

	// Width 5 pads to a stride of 8.
	require.Len(t, b, fileHeaderSize+infoHeaderSize+tableSize+8*3)

	assert.Equal(t, "BM", string(b[0:2]))
	assert.Equal(t, uint32(encodedDataOffset+8*3), u32(b, 2))
	assert.Equal(t, uint32(0), u32(b, 6))
	assert.Equal(t, uint32(encodedDataOffset), u32(b, 10))
	assert.Equal(t, uint32(infoHeaderSize), u32(b, 14))
	assert.Equal(t, uint32(5), u32(b, 18))
	assert.Equal(t, uint32(3), u32(b, 22))
	assert.Equal(t, uint16(1), u16(b, 26))
	assert.Equal(t, uint16(8), u16(b, 28))
	assert.Equal(t, uint32(0), u32(b, 30))
	assert.Equal(t, uint32(15), u32(b, 34))
	assert.Equal(t, uint32(0), u32(b, 38))
	assert.Equal(t, uint32(0), u32(b, 42))
	assert.Equal(t, uint32(0), u32(b, 46))
	assert.Equal(t, uint32(0), u32(b, 50))
}

func TestEncodeColorTable(t *testing.T) {
	pal := palette.Default()
	m, err := New(1, 1, pal)
	require.NoError(t, err)

	b, err := m.Bytes()
	require.NoError(t, err)

	table := b[fileHeaderSize+infoHeaderSize:]
	for i, c := range pal {
		assert.Equal(t, []byte{c.B, c.G, c.R, 0}, table[i*tableEntrySize:(i+1)*tableEntrySize], "entry %d", i)
	}
}

func TestEncodeBottomUpWithPadding(t *testing.T) {
	m, err := New(2, 2, palette.Default())
	require.NoError(t, err)
	m.Pix = []uint8{1, 2, 3, 4}

	b, err := m.Bytes()
	require.NoError(t, err)

	data := b[fileHeaderSize+infoHeaderSize+tableSize:]
	// Bottom row first, padded to the four byte stride with zeros.
	assert.Equal(t, []byte{3, 4, 0, 0, 1, 2, 0, 0}, data)
}

func TestEncodeRaw(t *testing.T) {
	m, err := New(1, 1, palette.Default())
	require.NoError(t, err)
	m.Pix[0] = 42

	b := new(bytes.Buffer)
	require.NoError(t, EncodeRaw(b, m))

	require.Len(t, b.Bytes(), infoHeaderSize+tableSize+4)
	assert.Equal(t, uint32(infoHeaderSize), u32(b.Bytes(), 0))

	got, err := DecodeRaw(bytes.NewReader(b.Bytes()), m.Palette)
	require.NoError(t, err)
	assert.Equal(t, m.Pix, got.Pix)
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"stride equals width", 8, 4},
		{"odd width", 5, 3},
		{"single pixel", 1, 1},
		{"single row", 7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pal := palette.Default()
			m, err := New(tt.width, tt.height, pal)
			require.NoError(t, err)

			rnd := rand.New(rand.NewSource(42))
			for i := range m.Pix {
				m.Pix[i] = uint8(rnd.Intn(256))
			}

			b, err := m.Bytes()
			require.NoError(t, err)

			got, err := Decode(bytes.NewReader(b), pal)
			require.NoError(t, err)

			assert.Equal(t, m.Width(), got.Width())
			assert.Equal(t, m.Height(), got.Height())
			assert.Equal(t, m.Pix, got.Pix)
			assert.True(t, pal.Equal(got.Palette))
		})
	}
}

func TestRoundTripZeroHeight(t *testing.T) {
	m, err := New(4, 0, palette.Default())
	require.NoError(t, err)

	b, err := m.Bytes()
	require.NoError(t, err)

	got, err := Decode(bytes.NewReader(b), m.Palette)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Height())
	assert.Empty(t, got.Pix)
}
