package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/fwojciec/vidinfo"
)

// Run executes the formats command.
func (c *FormatsCmd) Run(deps *Dependencies) error {
	info, err := deps.Extractor.Extract(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vidinfo.ErrorMessage(err))
		return err
	}

	title := info.ID
	if info.Title != nil {
		title = *info.Title
	}
	fmt.Fprintf(deps.Stdout, "%s [%s] %s\n\n", info.Extractor, info.ID, title)
	writeFormats(deps.Stdout, info.Formats)
	return nil
}

// writeFormats prints formats as an aligned table.
func writeFormats(w io.Writer, formats []vidinfo.Format) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPROTO\tKIND\tRESOLUTION\tFPS\tKBPS\tCODECS\tURL")
	for _, f := range formats {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			f.FormatID, f.Protocol, orDash(string(f.Kind)), resolution(f),
			floatOrDash(f.FPS), floatOrDash(f.Quality), strOrDash(f.Codecs), f.URL)
	}
	_ = tw.Flush()
}

func resolution(f vidinfo.Format) string {
	if f.Width == nil || f.Height == nil {
		return "-"
	}
	return fmt.Sprintf("%dx%d", *f.Width, *f.Height)
}

func floatOrDash(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func strOrDash(v *string) string {
	if v == nil {
		return "-"
	}
	return orDash(*v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
