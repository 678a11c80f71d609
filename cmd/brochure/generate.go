package main

import (
	"fmt"

	"github.com/fwojciec/brochure"
	"github.com/fwojciec/brochure/generate"
)

// Run executes the generate command.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	opts := brochure.GenerationOptions{
		Language:     c.Language,
		UseFewShot:   c.FewShot,
		Stream:       c.Stream,
		SaveMetadata: c.Metadata,
		Provider:     c.Provider,
		Model:        c.Model,
	}

	deps.Generator.LinkLimit = c.Links

	req := generate.Request{
		CompanyName: c.Name,
		WebsiteURL:  c.URL,
		Options:     opts,
		Progress: func(event generate.ProgressEvent) {
			switch event.State {
			case generate.StateScrapingLanding:
				fmt.Fprintf(deps.Stderr, "Scraping %s...\n", event.URL)
			case generate.StateScrapingLinks:
				fmt.Fprintln(deps.Stderr, "Scraping relevant sub-pages...")
			case generate.StateInvokingModel:
				fmt.Fprintf(deps.Stderr, "Generating brochure with %s...\n", c.Provider)
			}
		},
	}
	if c.Stream {
		req.Chunks = func(chunk string) {
			fmt.Fprint(deps.Stdout, chunk)
		}
	}

	result, err := deps.Generator.Generate(deps.Ctx, req)
	if result != nil && opts.SaveMetadata {
		if path, werr := deps.Writer.WriteMetadata(deps.Ctx, result); werr != nil {
			fmt.Fprintf(deps.Stderr, "warning: metadata not saved: %s\n", brochure.ErrorMessage(werr))
		} else {
			fmt.Fprintf(deps.Stderr, "Metadata saved to %s\n", path)
		}
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", brochure.ErrorMessage(err))
		return err
	}

	if c.Stream {
		fmt.Fprintln(deps.Stdout)
	} else {
		fmt.Fprintln(deps.Stdout, result.Content)
	}

	if err := deps.Writer.WriteResult(deps.Ctx, result); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", brochure.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stderr, "Brochure saved to %s\n", result.FilePath)
	return nil
}
