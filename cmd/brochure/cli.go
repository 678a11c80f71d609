package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/brochure"
	"github.com/fwojciec/brochure/fs"
	"github.com/fwojciec/brochure/generate"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    brochure.Config
	Logger    *slog.Logger
	Languages *brochure.Languages
	Providers *brochure.ProviderRegistry
	Generator *generate.Generator
	Writer    *fs.Writer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Generate  GenerateCmd  `cmd:"" help:"Generate a brochure for a company website"`
	Languages LanguagesCmd `cmd:"" help:"List supported output languages"`
	Check     CheckCmd     `cmd:"" help:"Verify provider connectivity"`
	Cleanup   CleanupCmd   `cmd:"" help:"Remove generated files older than a cutoff"`
}

// GenerateCmd is the "generate" subcommand.
type GenerateCmd struct {
	Name     string `arg:"" help:"Company name"`
	URL      string `arg:"" help:"Company website URL"`
	Language string `short:"l" default:"en" help:"Output language code"`
	Provider string `short:"p" default:"openai" help:"Model provider"`
	Model    string `short:"m" help:"Model identifier (provider default when empty)"`
	Stream   bool   `short:"s" help:"Stream output as it is generated"`
	FewShot  bool   `name:"few-shot" help:"Include example brochures in the prompt"`
	Metadata bool   `help:"Save a JSON metadata sidecar"`
	Output   string `short:"o" help:"Output directory (overrides BROCHURE_OUTPUT_DIR)"`
	Links    int    `default:"3" help:"Maximum sub-pages to scrape"`
}

// LanguagesCmd is the "languages" subcommand.
type LanguagesCmd struct{}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	Provider string `arg:"" optional:"" help:"Provider to check (all configured when empty)"`
}

// CleanupCmd is the "cleanup" subcommand.
type CleanupCmd struct {
	Days int `default:"30" help:"Remove files older than this many days"`
}
