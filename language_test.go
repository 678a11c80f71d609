package brochure_test

import (
	"testing"

	"github.com/fwojciec/brochure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguages_Get(t *testing.T) {
	t.Parallel()

	t.Run("registered language", func(t *testing.T) {
		t.Parallel()

		langs := brochure.NewLanguages(brochure.Language{Code: "pl", Name: "Polish"})
		lang, err := langs.Get("pl")
		require.NoError(t, err)
		assert.Equal(t, "Polish", lang.Name)
	})

	t.Run("unknown code returns ECONFIG", func(t *testing.T) {
		t.Parallel()

		langs := brochure.DefaultLanguages()
		_, err := langs.Get("xx")
		require.Error(t, err)
		assert.Equal(t, brochure.ECONFIG, brochure.ErrorCode(err))
	})
}

func TestLanguages_Register(t *testing.T) {
	t.Parallel()

	langs := brochure.DefaultLanguages()
	langs.Register(brochure.Language{Code: "nl", Name: "Dutch"})

	lang, err := langs.Get("nl")
	require.NoError(t, err)
	assert.Equal(t, "Dutch", lang.Name)
}

func TestLanguages_Codes(t *testing.T) {
	t.Parallel()

	langs := brochure.NewLanguages(
		brochure.Language{Code: "fr", Name: "French"},
		brochure.Language{Code: "de", Name: "German"},
		brochure.Language{Code: "en", Name: "English"},
	)
	assert.Equal(t, []string{"de", "en", "fr"}, langs.Codes())
}

func TestDefaultLanguages(t *testing.T) {
	t.Parallel()

	langs := brochure.DefaultLanguages()
	codes := langs.Codes()
	assert.Len(t, codes, 10)

	for _, code := range []string{"en", "es", "fr", "de", "it", "pt", "zh", "ja", "ko", "ua"} {
		_, err := langs.Get(code)
		assert.NoError(t, err, "expected %s to be registered", code)
	}
}
