package palette

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p := Default()
	require.Len(t, p, Entries)

	assert.Equal(t, RGB{0, 0, 0}, p[0])
	assert.Equal(t, RGB{255, 255, 255}, p[15])
	assert.Equal(t, RGB{0, 0, 0}, p[16])
	assert.Equal(t, RGB{255, 0, 0}, p[196])
	assert.Equal(t, RGB{255, 255, 255}, p[231])
	assert.Equal(t, RGB{8, 8, 8}, p[232])
	assert.Equal(t, RGB{238, 238, 238}, p[255])
}

func TestDefaultIsACopy(t *testing.T) {
	p := Default()
	p[0] = RGB{1, 2, 3}
	assert.Equal(t, RGB{0, 0, 0}, Default()[0])
}

func TestNearestExactMatch(t *testing.T) {
	p := Default()
	// Index 100 is inside the color cube with no earlier duplicate.
	c := p[100]
	assert.Equal(t, uint8(100), p.Nearest(c))
}

func TestNearestFirstDuplicateWins(t *testing.T) {
	// White appears at index 15 and again at 231.
	p := Default()
	assert.Equal(t, uint8(15), p.Nearest(RGB{255, 255, 255}))
}

func TestNearestTieLowestIndex(t *testing.T) {
	p := make(Palette, Entries)
	for i := range p {
		p[i] = RGB{200, 200, 200}
	}
	// Equidistant from the input; the first must win.
	p[3] = RGB{10, 0, 0}
	p[7] = RGB{0, 10, 0}

	assert.Equal(t, uint8(3), p.Nearest(RGB{0, 0, 0}))
}

func TestNearestLaterStrictlyCloserWins(t *testing.T) {
	p := make(Palette, Entries)
	for i := range p {
		p[i] = RGB{200, 200, 200}
	}
	p[3] = RGB{100, 0, 0}
	p[7] = RGB{0, 10, 0}

	assert.Equal(t, uint8(7), p.Nearest(RGB{0, 0, 0}))
}

func sqDist(a, b RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

func TestNearestLaw(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	p := make(Palette, Entries)
	for i := range p {
		p[i] = RGB{uint8(rnd.Intn(256)), uint8(rnd.Intn(256)), uint8(rnd.Intn(256))}
	}

	for n := 0; n < 1000; n++ {
		c := RGB{uint8(rnd.Intn(256)), uint8(rnd.Intn(256)), uint8(rnd.Intn(256))}
		got := p.Nearest(c)
		best := sqDist(p[got], c)
		for i := range p {
			d := sqDist(p[i], c)
			require.True(t, best <= d, "index %d is closer than returned index %d for %v", i, got, c)
			if d == best {
				require.True(t, int(got) <= i, "tie at index %d not broken towards lowest index %d", i, got)
			}
		}
	}
}

func TestEqual(t *testing.T) {
	p := Default()
	q := Default()
	assert.True(t, p.Equal(q))

	q[200] = RGB{1, 2, 3}
	assert.False(t, p.Equal(q))

	assert.False(t, p.Equal(p[:255]))
	assert.True(t, Palette(nil).Equal(Palette{}))
}

func TestPadded(t *testing.T) {
	p := Palette{{R: 1, G: 2, B: 3}}
	q := p.Padded()
	require.Len(t, q, Entries)
	assert.Equal(t, RGB{1, 2, 3}, q[0])
	assert.Equal(t, RGB{0, 0, 0}, q[1])
	assert.Equal(t, RGB{0, 0, 0}, q[255])

	full := Default()
	assert.Equal(t, full, full.Padded())
}

func TestCanonical(t *testing.T) {
	assert.True(t, Default().Canonical())
	assert.False(t, Palette(nil).Canonical())
	assert.False(t, Default()[:100].Canonical())
}

func TestClone(t *testing.T) {
	p := Default()
	q := p.Clone()
	q[0] = RGB{9, 9, 9}
	assert.Equal(t, RGB{0, 0, 0}, p[0])
}
