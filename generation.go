package brochure

import (
	"context"
	"strings"
	"time"
)

// GenerationOptions controls a single brochure generation call.
// Options are validated once and treated as immutable afterwards.
type GenerationOptions struct {
	Language     string `json:"language"`     // registry code, e.g. "en"
	UseFewShot   bool   `json:"useFewShot"`   // include example pairs in the prompt
	Stream       bool   `json:"stream"`       // forward chunks as they arrive
	SaveMetadata bool   `json:"saveMetadata"` // persist a metadata sidecar
	Provider     string `json:"provider"`     // registry identifier, e.g. "openai"
	Model        string `json:"model"`        // provider model id; empty uses the provider default
}

// Validate returns an error if the options reference an unknown language or
// an empty provider. Provider existence is checked against the registry at
// call time.
func (o *GenerationOptions) Validate(languages *Languages) error {
	if o.Provider == "" {
		return Errorf(ECONFIG, "provider required")
	}
	if _, err := languages.Get(o.Language); err != nil {
		return err
	}
	return nil
}

// GenerationMetadata records what happened during a generation run.
// It is write-once: the orchestrator builds it at completion (success or
// terminal failure) and hands it to the caller for optional persistence.
type GenerationMetadata struct {
	ID           string        `json:"id"`
	CompanyName  string        `json:"companyName"`
	WebsiteURL   string        `json:"websiteUrl"`
	Provider     string        `json:"provider"`
	Model        string        `json:"model"`
	Language     string        `json:"language"`
	StartedAt    time.Time     `json:"startedAt"`
	Duration     time.Duration `json:"duration"`
	PromptChars  int           `json:"promptChars"`
	ContentChars int           `json:"contentChars"`
	WordCount    int           `json:"wordCount"`
	SubpageCount int           `json:"subpageCount"`
	RetryCount   int           `json:"retryCount"`
	Success      bool          `json:"success"`
}

// GenerationResult is the outcome of a successful generation. The caller
// owns it exclusively; the orchestrator holds no reference after returning.
type GenerationResult struct {
	Content  string             `json:"content"`
	FilePath string             `json:"filePath,omitempty"`
	Metadata GenerationMetadata `json:"metadata"`
}

// ResultWriter persists a generation result. Implementations set
// result.FilePath to the location of the saved brochure.
type ResultWriter interface {
	WriteResult(ctx context.Context, result *GenerationResult) error
}

// FormatCompanyName normalizes a user-supplied company name for prompt
// embedding: surrounding whitespace is trimmed and interior runs collapsed.
func FormatCompanyName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
