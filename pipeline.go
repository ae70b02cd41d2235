package bmp8

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/bmp8/bmp"
	"github.com/bodgit/bmp8/palette"
)

var convertExt = map[string]struct{}{
	".bmp":  {},
	".gif":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
}

// target resolves a palette name through the store. An empty name
// means no target palette, leaving the codec to fall back to the
// built-in default.
func (c *Converter) target(name string) (palette.Palette, error) {
	if name == "" {
		return nil, nil
	}
	if c.db == nil {
		return nil, errors.New("bmp8: no palette database")
	}

	p, err := c.db.Palette(name)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("bmp8: no palette named %q", name)
	}
	if !p.Canonical() {
		return nil, fmt.Errorf("bmp8: palette %q has %d colors, want %d", name, len(p), palette.Entries)
	}
	return p, nil
}

// convertFile decodes one image file, of any registered format, into
// the canonical indexed form.
func convertFile(file string, target palette.Palette) (*bmp.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(file), ".bmp") {
		return bmp.Decode(f, target)
	}

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return bmp.FromImage(m, target)
}

// Convert converts a single image file to an 8-bit BMP at out. An
// empty out derives the output name from the input by swapping the
// extension for .bmp.
func (c *Converter) Convert(file, out, paletteName string) error {
	target, err := c.target(paletteName)
	if err != nil {
		return err
	}

	m, err := convertFile(file, target)
	if err != nil {
		return err
	}

	if out == "" {
		out = strings.TrimSuffix(file, filepath.Ext(file)) + ".bmp"
	}
	return m.WriteFile(out)
}

func (c *Converter) findImages(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() {
				return nil
			}

			if _, ok := convertExt[strings.ToLower(filepath.Ext(file))]; !ok {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (c *Converter) convertWorker(ctx context.Context, in <-chan string, target palette.Palette) (<-chan error, error) {
	// Each worker quantizes against its own copy of the target
	// palette; the codec itself makes no concurrency guarantees.
	target = target.Clone()

	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			m, err := convertFile(file, target)
			if err != nil {
				if err == bmp.ErrUnsupported {
					c.logger.Printf("Skipping \"%s\": %v\n", file, err)
					continue
				}
				errc <- err
				return
			}

			out := strings.TrimSuffix(file, filepath.Ext(file)) + ".bmp"
			if err := m.WriteFile(out); err != nil {
				errc <- err
				return
			}
			c.logger.Printf("Converted \"%s\"\n", file)
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks the directory tree rooted at path and converts every
// supported image it finds to an 8-bit BMP alongside the original.
func (c *Converter) Scan(path, paletteName string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	target, err := c.target(paletteName)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := c.findImages(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < 10; i++ {
		errc, err := c.convertWorker(ctx, files, target)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
