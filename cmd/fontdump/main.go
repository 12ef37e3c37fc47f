// Command fontdump loads a font file and prints a summary of its
// container format, table directory, and (for the first glyph) its
// decoded outline segment count.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/fontist/fontisan-sub002/cff"
	"github.com/fontist/fontisan-sub002/internal/flog"
	"github.com/fontist/fontisan-sub002/outline"
	"github.com/fontist/fontisan-sub002/sfnt"
	"github.com/fontist/fontisan-sub002/sfnt/tables"
)

func main() {
	var (
		verbose    = flag.Bool("v", false, "enable debug logging")
		metaOnly   = flag.Bool("metadata-only", false, "open in metadata-only mode")
		collection = flag.Bool("collection", false, "treat the input as a TTC/OTC/multi-font dfont")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] font-file\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	if *verbose {
		flog.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var opts []sfnt.Option
	if *metaOnly {
		opts = append(opts, sfnt.WithMode(sfnt.Metadata))
	}

	if *collection {
		if err := dumpCollection(path, opts); err != nil {
			fmt.Fprintln(os.Stderr, "fontdump:", err)
			os.Exit(1)
		}
		return
	}
	if err := dumpFont(path, opts); err != nil {
		fmt.Fprintln(os.Stderr, "fontdump:", err)
		os.Exit(1)
	}
}

func dumpCollection(path string, opts []sfnt.Option) error {
	c, err := sfnt.OpenCollection(path, opts...)
	if err != nil {
		return err
	}
	defer c.Close()
	fmt.Printf("%s: collection with %d fonts\n", path, c.NumFonts())
	for i := 0; i < c.NumFonts(); i++ {
		f, err := c.Font(i)
		if err != nil {
			return err
		}
		fmt.Printf("  [%d] %d tables, postscript=%v\n", i, f.NumTables(), f.IsPostScript())
	}
	return nil
}

func dumpFont(path string, opts []sfnt.Option) error {
	f, err := sfnt.Open(path, opts...)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Printf("%s: %d tables, postscript=%v\n", path, f.NumTables(), f.IsPostScript())
	for _, e := range f.Directory {
		fmt.Printf("  %-4s  offset=%-10d length=%d\n", e.Tag, e.Offset, e.Length)
	}

	if n, err := f.Name(); err == nil {
		if full, ok := n.EnglishName(tables.NameIDFull); ok {
			fmt.Printf("full name: %s\n", full)
		}
	}

	if f.IsPostScript() {
		return dumpFirstCFFGlyph(f)
	}
	return dumpFirstGlyfGlyph(f)
}

func dumpFirstCFFGlyph(f *sfnt.Font) error {
	raw, err := f.CFFBytes()
	if err != nil {
		return err
	}
	file, err := cff.Parse(raw)
	if err != nil {
		return err
	}
	if file.CharStrings.Count() == 0 {
		return nil
	}
	o, err := outline.FromCFF(file.CharStrings.Item(0), file.Subrs())
	if err != nil {
		return err
	}
	fmt.Printf("glyph 0: %d segments, advance=%v\n", len(o.Segments), o.AdvanceWidth)
	return nil
}

func dumpFirstGlyfGlyph(f *sfnt.Font) error {
	glyf, err := f.GlyfBytes()
	if err != nil {
		return err
	}
	loca, err := f.Loca()
	if err != nil {
		return err
	}
	hmtx, err := f.Hmtx()
	if err != nil {
		return err
	}
	o, err := outline.FromGlyf(glyf, loca.Offsets, 0, float64(hmtx.AdvanceWidth(0)))
	if err != nil {
		return err
	}
	fmt.Printf("glyph 0: %d segments, advance=%v\n", len(o.Segments), o.AdvanceWidth)
	return nil
}
