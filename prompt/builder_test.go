package prompt_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/fwojciec/brochure"
	"github.com/fwojciec/brochure/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExtraction() *brochure.Extraction {
	return &brochure.Extraction{
		Landing: &brochure.ScrapedPage{
			URL:   "https://acme.example",
			Title: "Acme",
			Text:  "We make everything.",
		},
		Subpages: []*brochure.ScrapedPage{
			{URL: "https://acme.example/about", Title: "About", Text: "Founded long ago."},
		},
	}
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	t.Run("embeds company name and page content", func(t *testing.T) {
		t.Parallel()

		builder := prompt.NewBuilder(brochure.DefaultLanguages())
		p, err := builder.Build("  Acme   Corp ", testExtraction(), brochure.GenerationOptions{Language: "en"})
		require.NoError(t, err)

		assert.Contains(t, p.User, "You are looking at a company called: Acme Corp")
		assert.Contains(t, p.User, "We make everything.")
		assert.Contains(t, p.User, "https://acme.example/about")
	})

	t.Run("english gets plain language instruction", func(t *testing.T) {
		t.Parallel()

		builder := prompt.NewBuilder(brochure.DefaultLanguages())
		p, err := builder.Build("Acme", testExtraction(), brochure.GenerationOptions{Language: "en"})
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(p.System, "Respond in English."))
		assert.NotContains(t, p.System, "IMPORTANT: Respond in English.")
	})

	t.Run("non-english gets emphasized language instruction", func(t *testing.T) {
		t.Parallel()

		builder := prompt.NewBuilder(brochure.DefaultLanguages())
		p, err := builder.Build("Acme", testExtraction(), brochure.GenerationOptions{Language: "de"})
		require.NoError(t, err)

		assert.Contains(t, p.System, "IMPORTANT: Respond in German.")
	})

	t.Run("unknown language returns ECONFIG", func(t *testing.T) {
		t.Parallel()

		builder := prompt.NewBuilder(brochure.DefaultLanguages())
		_, err := builder.Build("Acme", testExtraction(), brochure.GenerationOptions{Language: "xx"})
		require.Error(t, err)
		assert.Equal(t, brochure.ECONFIG, brochure.ErrorCode(err))
	})

	t.Run("few-shot disabled by default", func(t *testing.T) {
		t.Parallel()

		builder := prompt.NewBuilder(brochure.DefaultLanguages())
		p, err := builder.Build("Acme", testExtraction(), brochure.GenerationOptions{Language: "en"})
		require.NoError(t, err)

		assert.Empty(t, p.FewShot)
		assert.Empty(t, p.FewShotLanguage)
	})

	t.Run("few-shot uses dedicated set when available", func(t *testing.T) {
		t.Parallel()

		builder := prompt.NewBuilder(brochure.DefaultLanguages())
		p, err := builder.Build("Acme", testExtraction(), brochure.GenerationOptions{Language: "es", UseFewShot: true})
		require.NoError(t, err)

		require.NotEmpty(t, p.FewShot)
		assert.Equal(t, "es", p.FewShotLanguage)
	})

	t.Run("few-shot falls back to english and logs it", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		builder := prompt.NewBuilder(brochure.DefaultLanguages(), prompt.WithLogger(logger))

		p, err := builder.Build("Acme", testExtraction(), brochure.GenerationOptions{Language: "ua", UseFewShot: true})
		require.NoError(t, err)

		require.NotEmpty(t, p.FewShot)
		assert.Equal(t, "en", p.FewShotLanguage)
		assert.Contains(t, p.System, "IMPORTANT: Respond in Ukrainian.")

		output := buf.String()
		assert.Contains(t, output, "few-shot fallback")
		assert.Contains(t, output, "requested=ua")
		assert.Contains(t, output, "used=en")
	})

	t.Run("examples are capped", func(t *testing.T) {
		t.Parallel()

		builder := prompt.NewBuilder(brochure.DefaultLanguages(), prompt.WithMaxExampleLength(50))
		p, err := builder.Build("Acme", testExtraction(), brochure.GenerationOptions{Language: "en", UseFewShot: true})
		require.NoError(t, err)

		for _, ex := range p.FewShot {
			assert.LessOrEqual(t, len(ex.Input), 50)
			assert.LessOrEqual(t, len(ex.Output), 50)
		}
	})

	t.Run("prompt stays within budget", func(t *testing.T) {
		t.Parallel()

		extraction := &brochure.Extraction{
			Landing: &brochure.ScrapedPage{
				URL:   "https://acme.example",
				Title: "Acme",
				Text:  strings.Repeat("verbose content here ", 200),
			},
		}

		builder := prompt.NewBuilder(brochure.DefaultLanguages(), prompt.WithMaxPromptLength(2000))
		p, err := builder.Build("Acme", extraction, brochure.GenerationOptions{Language: "en"})
		require.NoError(t, err)
		assert.LessOrEqual(t, p.Chars(), 2000)
	})

	t.Run("examples shed when budget cannot hold them", func(t *testing.T) {
		t.Parallel()

		extraction := &brochure.Extraction{
			Landing: &brochure.ScrapedPage{
				URL:   "https://acme.example",
				Title: "Acme",
				Text:  strings.Repeat("verbose content here ", 500),
			},
		}

		builder := prompt.NewBuilder(brochure.DefaultLanguages(), prompt.WithMaxPromptLength(600))
		p, err := builder.Build("Acme", extraction, brochure.GenerationOptions{Language: "en", UseFewShot: true})
		require.NoError(t, err)
		assert.LessOrEqual(t, p.Chars(), 600)
		assert.Empty(t, p.FewShot)
		assert.Empty(t, p.FewShotLanguage)
	})
}

func TestHasFewShotSet(t *testing.T) {
	t.Parallel()

	assert.True(t, prompt.HasFewShotSet("en"))
	assert.True(t, prompt.HasFewShotSet("es"))
	assert.False(t, prompt.HasFewShotSet("ua"))
}
