package udmcorpus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Analyzer produces the dictionary base form (lemma) of an inflected word.
// It is the external morphological-analysis collaborator used by the
// dictionary lemma fallback; an empty lemma means the analyzer could not
// parse the word.
type Analyzer interface {
	Lemmatize(ctx context.Context, word string) (string, error)
}

// HTTPAnalyzer talks to a morphological analyzer service over HTTP:
// POST {base}/analyze with {"word": ...} returning a JSON array of
// analyses, each carrying a lemma. The first analysis wins.
type HTTPAnalyzer struct {
	httpClient *http.Client
	baseURL    string
}

// AnalyzerOption configures the HTTPAnalyzer
type AnalyzerOption func(*HTTPAnalyzer)

// WithAnalyzerHTTPClient sets a custom HTTP client
func WithAnalyzerHTTPClient(hc *http.Client) AnalyzerOption {
	return func(a *HTTPAnalyzer) {
		a.httpClient = hc
	}
}

// NewHTTPAnalyzer creates an analyzer client for the given service root
func NewHTTPAnalyzer(baseURL string, opts ...AnalyzerOption) *HTTPAnalyzer {
	a := &HTTPAnalyzer{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type analyzeRequest struct {
	Word string `json:"word"`
}

type wordAnalysis struct {
	WordForm string `json:"wf,omitempty"`
	Lemma    string `json:"lemma"`
	Grammar  string `json:"gramm,omitempty"`
}

// Lemmatize returns the lemma of the first analysis for word, or "" when
// the analyzer produced no analyses.
func (a *HTTPAnalyzer) Lemmatize(ctx context.Context, word string) (string, error) {
	body, err := json.Marshal(analyzeRequest{Word: word})
	if err != nil {
		return "", fmt.Errorf("marshaling analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("analyze request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading analyze response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var analyses []wordAnalysis
	if err := json.Unmarshal(respBody, &analyses); err != nil {
		return "", fmt.Errorf("parsing analyze response: %w", err)
	}
	if len(analyses) == 0 {
		return "", nil
	}
	return analyses[0].Lemma, nil
}
