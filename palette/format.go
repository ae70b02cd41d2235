package palette

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
)

var (
	errOddLength = errors.New("palette: binary form is not a multiple of 3 bytes")
	errTooLong   = errors.New("palette: more than 256 entries")
	errSignature = errors.New("palette: missing JASC-PAL signature")
	errVersion   = errors.New("palette: unsupported JASC-PAL version")
)

// MarshalBinary encodes the palette as 3 bytes per entry, R, G, B in
// index order. It implements the encoding.BinaryMarshaler interface.
func (p Palette) MarshalBinary() ([]byte, error) {
	if len(p) > Entries {
		return nil, errTooLong
	}
	b := make([]byte, 0, len(p)*3)
	for _, e := range p {
		b = append(b, e.R, e.G, e.B)
	}
	return b, nil
}

// UnmarshalBinary decodes the form produced by MarshalBinary. It
// implements the encoding.BinaryUnmarshaler interface.
func (p *Palette) UnmarshalBinary(b []byte) error {
	if len(b)%3 != 0 {
		return errOddLength
	}
	if len(b)/3 > Entries {
		return errTooLong
	}
	q := make(Palette, len(b)/3)
	for i := range q {
		q[i] = RGB{b[3*i], b[3*i+1], b[3*i+2]}
	}
	*p = q
	return nil
}

// MarshalText encodes the palette in the JASC-PAL text format. It
// implements the encoding.TextMarshaler interface.
func (p Palette) MarshalText() ([]byte, error) {
	if len(p) > Entries {
		return nil, errTooLong
	}
	b := new(bytes.Buffer)
	fmt.Fprintf(b, "JASC-PAL\r\n0100\r\n%d\r\n", len(p))
	for _, e := range p {
		fmt.Fprintf(b, "%d %d %d\r\n", e.R, e.G, e.B)
	}
	return b.Bytes(), nil
}

// UnmarshalText decodes a JASC-PAL palette file. It implements the
// encoding.TextUnmarshaler interface.
func (p *Palette) UnmarshalText(text []byte) error {
	s := bufio.NewScanner(bytes.NewReader(text))

	line := func() (string, bool) {
		for s.Scan() {
			if t := strings.TrimSpace(s.Text()); t != "" {
				return t, true
			}
		}
		return "", false
	}

	if t, ok := line(); !ok || t != "JASC-PAL" {
		return errSignature
	}
	if t, ok := line(); !ok || t != "0100" {
		return errVersion
	}

	t, ok := line()
	if !ok {
		return errors.New("palette: missing color count")
	}
	var count int
	if _, err := fmt.Sscanf(t, "%d", &count); err != nil || count < 0 {
		return fmt.Errorf("palette: invalid color count %q", t)
	}
	if count > Entries {
		return errTooLong
	}

	q := make(Palette, count)
	for i := range q {
		t, ok := line()
		if !ok {
			return fmt.Errorf("palette: expected %d entries, got %d", count, i)
		}
		var r, g, b int
		if _, err := fmt.Sscanf(t, "%d %d %d", &r, &g, &b); err != nil {
			return fmt.Errorf("palette: entry %d: %q", i, t)
		}
		if r < 0 || r > 255 || g < 0 || g > 255 || b < 0 || b > 255 {
			return fmt.Errorf("palette: entry %d out of range: %q", i, t)
		}
		q[i] = RGB{uint8(r), uint8(g), uint8(b)}
	}

	*p = q
	return s.Err()
}
