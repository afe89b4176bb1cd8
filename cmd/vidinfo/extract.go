package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/extract"
)

// Run executes the extract command. Each successful result is printed as
// one JSON line on stdout; failures are reported on stderr and the command
// fails if any locator failed.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	if c.Save && deps.Media == nil {
		return vidinfo.Errorf(vidinfo.EINTERNAL, "catalog not configured")
	}

	results := deps.Extractor.ExtractAll(deps.Ctx, c.URLs, c.Concurrency, nil)

	enc := json.NewEncoder(deps.Stdout)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", r.Locator, vidinfo.ErrorMessage(r.Err))
			continue
		}
		if err := enc.Encode(r.Info); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		if r.Duplicate {
			continue
		}
		if deps.Writer != nil {
			path, err := deps.Writer.WriteInfo(deps.Ctx, r.Info)
			if err != nil {
				failed++
				fmt.Fprintf(deps.Stderr, "error: %s: %s\n", r.Locator, vidinfo.ErrorMessage(err))
			} else {
				fmt.Fprintf(deps.Stderr, "wrote %s\n", path)
			}
		}
		if c.Save {
			if err := c.save(deps, r); err != nil {
				failed++
				fmt.Fprintf(deps.Stderr, "error: %s: %s\n", r.Locator, vidinfo.ErrorMessage(err))
			}
		}
	}

	if failed > 0 {
		return vidinfo.Errorf(vidinfo.EEXTRACT, "%d of %d URLs failed", failed, len(results))
	}
	return nil
}

func (c *ExtractCmd) save(deps *Dependencies, r extract.Result) error {
	changed, err := deps.Media.SaveMediaInfo(deps.Ctx, r.Info)
	if err != nil {
		return err
	}
	if changed {
		fmt.Fprintf(deps.Stderr, "saved %s %s\n", r.Info.Extractor, r.Info.ID)
	} else {
		fmt.Fprintf(deps.Stderr, "unchanged %s %s\n", r.Info.Extractor, r.Info.ID)
	}
	return nil
}
