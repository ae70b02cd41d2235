package bmp8

import (
	"crypto/sha1"
	"database/sql"
	"fmt"

	"github.com/bodgit/bmp8/palette"
	_ "github.com/mattn/go-sqlite3"
)

// PaletteDB stores named 256 entry palettes in a SQLite database. The
// palette colors are kept as the raw 768 byte R, G, B blob along with
// its SHA1 so identical palettes under different names are easy to
// spot.
type PaletteDB struct {
	db *sql.DB
}

func NewPaletteDB(file string) (*PaletteDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS palette (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, sha1 TEXT NOT NULL, colors BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	return &PaletteDB{
		db: db,
	}, nil
}

func (db *PaletteDB) Close() error {
	return db.db.Close()
}

// Put stores a palette under the given name, replacing any palette
// already stored under it.
func (db *PaletteDB) Put(name string, p palette.Palette) error {
	b, err := p.MarshalBinary()
	if err != nil {
		return err
	}

	_, err = db.db.Exec("INSERT INTO palette (name, sha1, colors) VALUES (?, ?, ?) ON CONFLICT(name) DO UPDATE SET sha1 = excluded.sha1, colors = excluded.colors", name, fmt.Sprintf("%x", sha1.Sum(b)), b)
	return err
}

// Palette returns the palette stored under name, or nil if there is no
// such palette.
func (db *PaletteDB) Palette(name string) (palette.Palette, error) {
	var b []byte
	switch err := db.db.QueryRow("SELECT colors FROM palette WHERE name = ?", name).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
	default:
		return nil, err
	}

	var p palette.Palette
	if err := p.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return p, nil
}

// Names returns the stored palette names in sorted order.
func (db *PaletteDB) Names() ([]string, error) {
	rows, err := db.db.Query("SELECT name FROM palette ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Remove deletes the palette stored under name. Removing a name that
// does not exist is not an error.
func (db *PaletteDB) Remove(name string) error {
	_, err := db.db.Exec("DELETE FROM palette WHERE name = ?", name)
	return err
}
