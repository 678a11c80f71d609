package brochure

// Prompt is an assembled system + user prompt pair ready for a provider.
type Prompt struct {
	System string
	User   string

	// FewShot holds the example pairs interpolated before the real
	// request, in order. Empty when few-shot prompting is disabled.
	FewShot []FewShotExample

	// FewShotLanguage is the code of the language whose example set was
	// used. It differs from the requested language when the builder fell
	// back to the English set.
	FewShotLanguage string
}

// Chars returns the total prompt size in characters, counting the system
// prompt, the example pairs and the user prompt.
func (p *Prompt) Chars() int {
	n := len(p.System) + len(p.User)
	for _, ex := range p.FewShot {
		n += len(ex.Input) + len(ex.Output)
	}
	return n
}

// FewShotExample is one example input/output pair used to steer the model's
// output format.
type FewShotExample struct {
	Input  string // summarized page contents
	Output string // the brochure the model should have produced
}

// PromptBuilder assembles prompts from extracted content.
type PromptBuilder interface {
	// Build returns the prompt for the given extraction and options.
	// The target language's display name is embedded in the system
	// prompt. When the language has no few-shot set the English set is
	// used; the fallback is recorded in Prompt.FewShotLanguage.
	Build(companyName string, extraction *Extraction, opts GenerationOptions) (*Prompt, error)
}
