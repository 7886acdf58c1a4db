package udmcorpus

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/codemurt/udmcorpus-wrapper/metrics"
)

// LookupOptions configures a dictionary lookup. The zero value is not
// usable directly; start from DefaultLookupOptions.
type LookupOptions struct {
	// Lang is the headword language code ("udm" or "rus")
	Lang string

	// ReplaceTilde substitutes each entry's own headword for the tilde
	// placeholders in its body text
	ReplaceTilde bool

	// LemmatizeIfNotFound retries the lookup once with the word's lemma
	// when the word itself has no entry. Requires an Analyzer on the client.
	LemmatizeIfNotFound bool
}

// DefaultLookupOptions returns the lookup defaults: Udmurt headwords,
// no tilde replacement, no lemma fallback.
func DefaultLookupOptions() *LookupOptions {
	return &LookupOptions{Lang: LangUdmurt}
}

// LookupWord looks a word up in the dictionary and returns the plain-text
// translations in response order. Errors: UnsupportedLanguageError for an
// unknown language code (raised before any network call), WordNotFoundError
// when the dictionary has no entry after any requested lemma fallback,
// UpstreamError for transport failures.
func (c *Client) LookupWord(ctx context.Context, word string, opts *LookupOptions) ([]string, error) {
	entries, err := c.LookupWordRaw(ctx, word, opts)
	if err != nil {
		return nil, err
	}
	if opts == nil {
		opts = DefaultLookupOptions()
	}
	return processEntries(entries, opts.ReplaceTilde), nil
}

// LookupWordRaw is LookupWord without the HTML-to-text processing: it
// returns the dictionary entries exactly as the upstream sent them.
func (c *Client) LookupWordRaw(ctx context.Context, word string, opts *LookupOptions) ([]DictionaryEntry, error) {
	if opts == nil {
		opts = DefaultLookupOptions()
	}
	langCode := opts.Lang
	if langCode == "" {
		langCode = LangUdmurt
	}

	lang, err := ResolveLanguage(langCode)
	if err != nil {
		return nil, err
	}

	// ReplaceTilde and raw-vs-processed do not change what is fetched,
	// so the cache is shared across those flags.
	cacheKey := fmt.Sprintf("dict:%s:%s:lemma=%t", lang.Code, word, opts.LemmatizeIfNotFound)
	if cached, ok := c.cache.Get(cacheKey); ok {
		metrics.RecordCacheAccess(true)
		return cached.([]DictionaryEntry), nil
	}
	metrics.RecordCacheAccess(false)

	result, _, err := c.dedup.Do(ctx, cacheKey, func() (any, error) {
		entries, err := c.fetchEntries(ctx, word, lang)
		if err != nil {
			return nil, err
		}

		if len(entries) == 0 {
			if !opts.LemmatizeIfNotFound {
				return nil, &WordNotFoundError{Word: word}
			}
			entries, err = c.lookupLemma(ctx, word, lang)
			if err != nil {
				return nil, err
			}
		}

		c.cache.Set(cacheKey, entries, dictionaryCacheTTL)
		metrics.SetCacheSize(c.cache.Size())
		return entries, nil
	})

	if err != nil {
		return nil, err
	}
	return result.([]DictionaryEntry), nil
}

// lookupLemma is the single fallback retry: analyze the word, then look
// its lemma up. Every dead end is a WordNotFoundError for the original word.
func (c *Client) lookupLemma(ctx context.Context, word string, lang Language) ([]DictionaryEntry, error) {
	if c.analyzer == nil {
		return nil, &WordNotFoundError{Word: word}
	}

	lemma, err := c.analyzer.Lemmatize(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("lemmatizing %q: %w", word, err)
	}
	if lemma == "" {
		return nil, &WordNotFoundError{Word: word}
	}

	c.logger.Debug("retrying lookup with lemma", "word", word, "lemma", lemma)

	entries, err := c.fetchEntries(ctx, lemma, lang)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, &WordNotFoundError{Word: word}
	}
	return entries, nil
}

// fetchEntries performs one dictionary/search call. An empty array is a
// valid response meaning "no entry"; it is not an error here.
func (c *Client) fetchEntries(ctx context.Context, word string, lang Language) ([]DictionaryEntry, error) {
	body, err := c.makeRequest(ctx, endpointDictionary, dictionaryRequest{
		Word: word,
		Lang: langRef{ID: lang.ID},
	})
	if err != nil {
		return nil, err
	}

	var entries []DictionaryEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("parsing dictionary response: %w", err)
	}
	return entries, nil
}

// processEntries converts entry bodies to plain text, in response order.
// Tilde placeholders stand for the entry's own headword, not the word the
// caller searched for.
func processEntries(entries []DictionaryEntry, replaceTilde bool) []string {
	texts := make([]string, 0, len(entries))
	for _, entry := range entries {
		text := stripHTMLTags(entry.Body)
		if replaceTilde {
			text = strings.ReplaceAll(text, "~", entry.SrcWord)
		}
		texts = append(texts, text)
	}
	return texts
}

// htmlTagRegex is used to strip HTML markup from dictionary entry bodies
var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// stripHTMLTags removes HTML tags and decodes entities from a string
func stripHTMLTags(s string) string {
	s = html.UnescapeString(s)
	s = htmlTagRegex.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return s
}
