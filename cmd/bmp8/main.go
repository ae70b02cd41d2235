package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/bmp8"
	"github.com/bodgit/bmp8/bmp"
	"github.com/bodgit/bmp8/palette"
	"github.com/urfave/cli/v2"
)

const defaultDB = "bmp8.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version, V",
		Usage: "print the version",
	}
}

func newConverter(c *cli.Context) (*bmp8.Converter, error) {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return bmp8.New(c.String("db"), logger)
}

func printInfo(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := bmp.Decode(f, nil)
	if err != nil {
		return err
	}

	h := m.Header
	fmt.Printf("file:        %s\n", file)
	fmt.Printf("dimensions:  %dx%d\n", m.Width(), m.Height())
	fmt.Printf("bit depth:   %d\n", h.BitCount)
	fmt.Printf("compression: %d\n", h.Compression)
	fmt.Printf("colors used: %d\n", h.ColorsUsed)
	orientation := "bottom-up"
	if h.Height < 0 {
		orientation = "top-down"
	}
	fmt.Printf("orientation: %s\n", orientation)

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "bmp8"
	app.Usage = "8-bit indexed BMP conversion utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"BMP8_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to palette database",
		},
		&cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "convert",
			Usage:     "Convert an image to an 8-bit BMP",
			ArgsUsage: "FILE...",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "palette",
					Usage: "name of the target palette",
				},
				&cli.StringFlag{
					Name:  "output",
					Usage: "output file, only with a single input",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				if c.String("output") != "" && c.NArg() > 1 {
					return cli.NewExitError("cannot use --output with multiple inputs", 1)
				}

				m, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				for _, file := range c.Args().Slice() {
					if err := m.Convert(file, c.String("output"), c.String("palette")); err != nil {
						return cli.NewExitError(err, 1)
					}
				}

				return nil
			},
		},
		{
			Name:      "scan",
			Usage:     "Convert every image under a directory tree",
			ArgsUsage: "DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "palette",
					Usage: "name of the target palette",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				if err := m.Scan(c.Args().First(), c.String("palette")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "info",
			Usage:     "Print the header of a BMP file",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				if err := printInfo(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "palette",
			Usage: "Manage the palette database",
			Subcommands: []*cli.Command{
				{
					Name:      "import",
					Usage:     "Import a JASC-PAL palette file",
					ArgsUsage: "FILE",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "name",
							Usage: "name to store the palette under",
						},
					},
					Action: func(c *cli.Context) error {
						if c.NArg() < 1 {
							cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
						}

						file := c.Args().First()
						b, err := ioutil.ReadFile(file)
						if err != nil {
							return cli.NewExitError(err, 1)
						}

						var p palette.Palette
						if err := p.UnmarshalText(b); err != nil {
							return cli.NewExitError(err, 1)
						}

						name := c.String("name")
						if name == "" {
							name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
						}

						m, err := newConverter(c)
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer m.Close()

						if err := m.DB().Put(name, p); err != nil {
							return cli.NewExitError(err, 1)
						}

						return nil
					},
				},
				{
					Name:      "export",
					Usage:     "Export a stored palette as JASC-PAL",
					ArgsUsage: "NAME FILE",
					Action: func(c *cli.Context) error {
						if c.NArg() < 2 {
							cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
						}

						m, err := newConverter(c)
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer m.Close()

						p, err := m.DB().Palette(c.Args().Get(0))
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						if p == nil {
							return cli.NewExitError(fmt.Sprintf("no palette named %q", c.Args().Get(0)), 1)
						}

						b, err := p.MarshalText()
						if err != nil {
							return cli.NewExitError(err, 1)
						}

						if err := ioutil.WriteFile(c.Args().Get(1), b, 0644); err != nil {
							return cli.NewExitError(err, 1)
						}

						return nil
					},
				},
				{
					Name:  "list",
					Usage: "List the stored palettes",
					Action: func(c *cli.Context) error {
						m, err := newConverter(c)
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer m.Close()

						names, err := m.DB().Names()
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						for _, name := range names {
							fmt.Println(name)
						}

						return nil
					},
				},
				{
					Name:      "remove",
					Usage:     "Remove a stored palette",
					ArgsUsage: "NAME",
					Action: func(c *cli.Context) error {
						if c.NArg() < 1 {
							cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
						}

						m, err := newConverter(c)
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer m.Close()

						if err := m.DB().Remove(c.Args().First()); err != nil {
							return cli.NewExitError(err, 1)
						}

						return nil
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
