package udmcorpus

import "sort"

// Language codes accepted by the corpus.
const (
	LangUdmurt  = "udm"
	LangRussian = "rus"
)

// Language maps a language code to the numeric identifier the upstream
// API expects in dictionary requests.
type Language struct {
	ID   int
	Code string
}

// languages is the fixed registry. The corpus serves exactly two
// dictionary directions: Udmurt headwords and Russian headwords.
var languages = map[string]Language{
	LangUdmurt:  {ID: 1, Code: LangUdmurt},
	LangRussian: {ID: 2, Code: LangRussian},
}

// ResolveLanguage returns the registry entry for a language code.
// Unknown codes fail with UnsupportedLanguageError; no I/O is involved.
func ResolveLanguage(code string) (Language, error) {
	lang, ok := languages[code]
	if !ok {
		return Language{}, &UnsupportedLanguageError{Code: code}
	}
	return lang, nil
}

// SupportedLanguages returns the registered language codes in sorted order.
func SupportedLanguages() []string {
	codes := make([]string, 0, len(languages))
	for code := range languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
