package brochure

import "sort"

// Language describes a brochure output language.
type Language struct {
	Code string `json:"code"` // ISO-style code, e.g. "en"
	Name string `json:"name"` // display name embedded in prompts, e.g. "English"
}

// Languages is a closed registry mapping language codes to languages.
// The pipeline never special-cases individual codes; adding a language is
// a data change, not a code change.
type Languages struct {
	byCode map[string]Language
}

// NewLanguages creates a registry containing the given languages.
func NewLanguages(langs ...Language) *Languages {
	r := &Languages{byCode: make(map[string]Language, len(langs))}
	for _, l := range langs {
		r.Register(l)
	}
	return r
}

// Register adds or replaces a language.
func (r *Languages) Register(l Language) {
	r.byCode[l.Code] = l
}

// Get returns the language for a code.
// Returns ECONFIG if the code is not registered.
func (r *Languages) Get(code string) (Language, error) {
	l, ok := r.byCode[code]
	if !ok {
		return Language{}, Errorf(ECONFIG, "unsupported language code %q", code)
	}
	return l, nil
}

// Codes returns all registered codes in lexical order.
func (r *Languages) Codes() []string {
	codes := make([]string, 0, len(r.byCode))
	for code := range r.byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// DefaultLanguages returns the shipped language configuration.
func DefaultLanguages() *Languages {
	return NewLanguages(
		Language{Code: "en", Name: "English"},
		Language{Code: "es", Name: "Spanish"},
		Language{Code: "fr", Name: "French"},
		Language{Code: "de", Name: "German"},
		Language{Code: "it", Name: "Italian"},
		Language{Code: "pt", Name: "Portuguese"},
		Language{Code: "zh", Name: "Chinese"},
		Language{Code: "ja", Name: "Japanese"},
		Language{Code: "ko", Name: "Korean"},
		Language{Code: "ua", Name: "Ukrainian"},
	)
}
