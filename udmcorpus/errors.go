package udmcorpus

import (
	"errors"
	"fmt"
	"strings"
)

// UnsupportedLanguageError indicates a language code outside the fixed
// registry. It is always raised before any network call.
type UnsupportedLanguageError struct {
	Code string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language %q (supported: %s)", e.Code, strings.Join(SupportedLanguages(), ", "))
}

// WordNotFoundError indicates the dictionary has no entry for a word,
// after any requested lemma fallback.
type WordNotFoundError struct {
	Word string
}

func (e *WordNotFoundError) Error() string {
	return fmt.Sprintf("word %q not found in dictionary", e.Word)
}

// TextsNotFoundError indicates a corpus search matched nothing.
type TextsNotFoundError struct {
	Query string
}

func (e *TextsNotFoundError) Error() string {
	return fmt.Sprintf("no texts found for %q", e.Query)
}

// UpstreamError indicates a non-200 response from the corpus API.
// It carries the status code and response body for diagnostics.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("corpus API returned %d: %s", e.StatusCode, truncate(e.Body, 200))
}

// IsNotFound returns true for the legitimate "no data" outcomes:
// WordNotFoundError and TextsNotFoundError.
func IsNotFound(err error) bool {
	var wnf *WordNotFoundError
	var tnf *TextsNotFoundError
	return errors.As(err, &wnf) || errors.As(err, &tnf)
}

// IsUnsupportedLanguage returns true if the error is an UnsupportedLanguageError.
func IsUnsupportedLanguage(err error) bool {
	var ule *UnsupportedLanguageError
	return errors.As(err, &ule)
}

// IsUpstream returns true if the error is an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
