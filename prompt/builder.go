// Package prompt assembles system and user prompts for brochure
// generation, including per-language few-shot example sets.
package prompt

import (
	"fmt"
	"log/slog"

	"github.com/fwojciec/brochure"
)

// systemPrompt fixes the assistant's role. The target language instruction
// is appended per request.
const systemPrompt = "You are an assistant that analyzes the contents of several relevant pages from a company website " +
	"and creates a short brochure about the company for prospective customers, investors and recruits. Respond in markdown. " +
	"Include details of company culture, customers and careers/jobs if you have the information."

// DefaultMaxExampleLength caps each few-shot example side so examples never
// dominate the token budget.
const DefaultMaxExampleLength = 2000

// Ensure Builder implements brochure.PromptBuilder at compile time.
var _ brochure.PromptBuilder = (*Builder)(nil)

// Builder assembles prompts from extracted content.
type Builder struct {
	languages        *brochure.Languages
	maxPromptLength  int
	maxExampleLength int
	logger           *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithMaxPromptLength sets the overall prompt budget in characters.
// This is distinct from the per-page extraction budget.
func WithMaxPromptLength(n int) Option {
	return func(b *Builder) {
		b.maxPromptLength = n
	}
}

// WithMaxExampleLength caps each few-shot example side in characters.
func WithMaxExampleLength(n int) Option {
	return func(b *Builder) {
		b.maxExampleLength = n
	}
}

// WithLogger sets the logger used to report few-shot language fallbacks.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder creates a Builder over the given language registry.
func NewBuilder(languages *brochure.Languages, opts ...Option) *Builder {
	b := &Builder{
		languages:        languages,
		maxPromptLength:  brochure.DefaultMaxPromptLength,
		maxExampleLength: DefaultMaxExampleLength,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the prompt for the given extraction and options.
//
// When the requested language has no few-shot set the English set is used
// and the fallback is logged; requests never fail on a missing set. The
// combined extraction text is bounded so the whole prompt stays within the
// configured budget, dropping later sub-pages before trimming the landing
// page. When the budget is too tight to hold both examples and page content,
// the examples are dropped first.
func (b *Builder) Build(companyName string, extraction *brochure.Extraction, opts brochure.GenerationOptions) (*brochure.Prompt, error) {
	lang, err := b.languages.Get(opts.Language)
	if err != nil {
		return nil, err
	}

	system := systemPrompt
	if lang.Code != "en" {
		system += fmt.Sprintf(" IMPORTANT: Respond in %s.", lang.Name)
	} else {
		system += fmt.Sprintf(" Respond in %s.", lang.Name)
	}

	var examples []brochure.FewShotExample
	fewShotLang := ""
	if opts.UseFewShot {
		set, setLang := b.fewShotSet(lang.Code)
		examples = set
		fewShotLang = setLang
	}

	header := fmt.Sprintf("You are looking at a company called: %s\n", brochure.FormatCompanyName(companyName))
	header += "Here are the contents of its landing page and other relevant pages; " +
		"use this information to build a short brochure of the company in markdown.\n"

	contentBudget := b.maxPromptLength - len(system) - len(header)
	exampleSize := 0
	for _, ex := range examples {
		exampleSize += len(ex.Input) + len(ex.Output)
	}
	if len(examples) > 0 && contentBudget-exampleSize <= 0 {
		// Page content takes priority over examples when the budget is
		// too tight to hold both.
		if b.logger != nil {
			b.logger.Info("few-shot dropped",
				"language", fewShotLang,
				"budget", b.maxPromptLength,
			)
		}
		examples = nil
		fewShotLang = ""
		exampleSize = 0
	}
	contentBudget -= exampleSize
	if contentBudget < 0 {
		contentBudget = 0
	}

	user := header + extraction.CombinedText(contentBudget)

	return &brochure.Prompt{
		System:          system,
		User:            user,
		FewShot:         examples,
		FewShotLanguage: fewShotLang,
	}, nil
}

// fewShotSet returns the example set for a language code, falling back to
// the English set when the language has none. The fallback is explicit and
// logged rather than silent.
func (b *Builder) fewShotSet(code string) ([]brochure.FewShotExample, string) {
	set, ok := fewShotExamples[code]
	if !ok {
		if b.logger != nil {
			b.logger.Info("few-shot fallback",
				"requested", code,
				"used", "en",
			)
		}
		set = fewShotExamples["en"]
		code = "en"
	}

	capped := make([]brochure.FewShotExample, len(set))
	for i, ex := range set {
		capped[i] = brochure.FewShotExample{
			Input:  brochure.TruncateText(ex.Input, b.maxExampleLength),
			Output: brochure.TruncateText(ex.Output, b.maxExampleLength),
		}
	}
	return capped, code
}

// HasFewShotSet reports whether a dedicated few-shot set exists for the
// language code.
func HasFewShotSet(code string) bool {
	_, ok := fewShotExamples[code]
	return ok
}

// FewShotLanguages returns the codes that have a dedicated example set.
func FewShotLanguages() []string {
	codes := make([]string, 0, len(fewShotExamples))
	for code := range fewShotExamples {
		codes = append(codes, code)
	}
	return codes
}
