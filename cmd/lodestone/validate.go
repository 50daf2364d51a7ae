package main

import (
	"fmt"

	"github.com/fwojciec/lodestone"
)

// Run executes the validate command.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	names := c.Names
	if len(names) == 0 {
		var err error
		names, err = deps.Definitions.List(deps.Ctx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", lodestone.ErrorMessage(err))
			return err
		}
	}

	if len(names) == 0 {
		fmt.Fprintln(deps.Stdout, "No definition sets found.")
		return nil
	}

	failed := 0
	for _, name := range names {
		set, err := deps.Definitions.Definitions(deps.Ctx, name)
		if err != nil {
			failed++
			fmt.Fprintf(deps.Stdout, "%s: %s (%s)\n", name, lodestone.ErrorMessage(err), lodestone.ErrorCode(err))
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s: ok (%d fields)\n", name, len(set))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d definition set(s) invalid", failed, len(names))
	}
	return nil
}
