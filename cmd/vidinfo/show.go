package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/vidinfo"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	entry, err := deps.Media.FindMediaInfoByID(deps.Ctx, c.Extractor, c.ID)
	if err != nil {
		if vidinfo.ErrorCode(err) == vidinfo.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: %s %s not found. Use 'vidinfo list' to see cataloged media.\n", c.Extractor, c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", vidinfo.ErrorMessage(err))
		}
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(entry)
}
