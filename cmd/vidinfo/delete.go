package main

import (
	"fmt"

	"github.com/fwojciec/vidinfo"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return vidinfo.Errorf(vidinfo.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Media.DeleteMediaInfo(deps.Ctx, c.Extractor, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vidinfo.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %s %s\n", c.Extractor, c.ID)
	return nil
}
