package mock

import (
	"github.com/fwojciec/brochure"
)

var _ brochure.PromptBuilder = (*PromptBuilder)(nil)

// PromptBuilder is a mock implementation of brochure.PromptBuilder.
type PromptBuilder struct {
	BuildFn func(companyName string, extraction *brochure.Extraction, opts brochure.GenerationOptions) (*brochure.Prompt, error)
}

func (b *PromptBuilder) Build(companyName string, extraction *brochure.Extraction, opts brochure.GenerationOptions) (*brochure.Prompt, error) {
	return b.BuildFn(companyName, extraction, opts)
}
