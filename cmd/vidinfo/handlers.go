package main

import "fmt"

// Run executes the handlers command.
func (c *HandlersCmd) Run(deps *Dependencies) error {
	for i, h := range deps.Router.Handlers() {
		fmt.Fprintf(deps.Stdout, "%d  %s\n", i+1, h.Name())
	}
	return nil
}
