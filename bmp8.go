/*
Package bmp8 is a library for converting images to the canonical 8-bit
indexed BMP format, with a store of named quantization palettes.
*/
package bmp8

import "log"

type Converter struct {
	db     *PaletteDB
	logger *log.Logger
}

// New returns a Converter backed by the palette database in file. An
// empty file name leaves the Converter without a store; conversions
// then use the built-in default palette.
func New(file string, logger *log.Logger) (*Converter, error) {
	c := &Converter{
		logger: logger,
	}
	if file != "" {
		db, err := NewPaletteDB(file)
		if err != nil {
			return nil, err
		}
		c.db = db
	}
	return c, nil
}

// DB returns the underlying palette database, which may be nil.
func (c *Converter) DB() *PaletteDB {
	return c.db
}

func (c *Converter) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}
