package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fwojciec/vidinfo"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := vidinfo.MediaFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Extractor != "" {
		filter.Extractor = &c.Extractor
	}

	entries, err := deps.Media.FindMediaInfos(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vidinfo.ErrorMessage(err))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No media found. Use 'vidinfo extract --save' to add some.")
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, e := range entries {
		title := ""
		if e.Info != nil && e.Info.Title != nil {
			title = *e.Info.Title
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			e.Extractor, e.MediaID, e.ExtractedAt.Local().Format(time.DateTime), title)
	}
	return tw.Flush()
}
