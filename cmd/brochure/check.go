package main

import (
	"fmt"

	"github.com/fwojciec/brochure"
)

// Run executes the check command. It sends a trivial prompt to each
// configured provider and reports whether a response came back.
func (c *CheckCmd) Run(deps *Dependencies) error {
	names := deps.Providers.List()
	if c.Provider != "" {
		if _, err := deps.Providers.Get(c.Provider); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", brochure.ErrorMessage(err))
			return err
		}
		names = []string{c.Provider}
	}

	prompt := &brochure.Prompt{
		System: "You are a connectivity check. Reply with a single word.",
		User:   "Say OK.",
	}

	var failed bool
	for _, name := range names {
		provider, err := deps.Providers.Get(name)
		if err != nil {
			return err
		}
		if _, err := provider.Complete(deps.Ctx, prompt, provider.DefaultModel()); err != nil {
			fmt.Fprintf(deps.Stdout, "%s: FAILED (%s)\n", name, brochure.ErrorMessage(err))
			failed = true
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s: OK\n", name)
	}

	if failed {
		return brochure.Errorf(brochure.ENETWORK, "one or more providers failed the connectivity check")
	}
	return nil
}
