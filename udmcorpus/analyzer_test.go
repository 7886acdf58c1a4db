package udmcorpus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestAnalyzer(t *testing.T, handler http.HandlerFunc) *HTTPAnalyzer {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewHTTPAnalyzer(server.URL)
}

func TestHTTPAnalyzer_Lemmatize(t *testing.T) {
	analyzer := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze" {
			t.Errorf("path = %q, want /analyze", r.URL.Path)
		}
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Word != "укноос" {
			t.Errorf("request word = %q, want %q", req.Word, "укноос")
		}
		_, _ = w.Write([]byte(`[{"wf":"укноос","lemma":"укно","gramm":"N,pl"},{"wf":"укноос","lemma":"укнос","gramm":"N,sg"}]`))
	})

	lemma, err := analyzer.Lemmatize(context.Background(), "укноос")
	if err != nil {
		t.Fatalf("Lemmatize failed: %v", err)
	}

	// First analysis wins
	if lemma != "укно" {
		t.Errorf("lemma = %q, want %q", lemma, "укно")
	}
}

func TestHTTPAnalyzer_NoAnalyses(t *testing.T) {
	analyzer := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	lemma, err := analyzer.Lemmatize(context.Background(), "асдфгх")
	if err != nil {
		t.Fatalf("Lemmatize failed: %v", err)
	}
	if lemma != "" {
		t.Errorf("lemma = %q, want empty for unparseable word", lemma)
	}
}

func TestHTTPAnalyzer_UpstreamError(t *testing.T) {
	analyzer := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})

	_, err := analyzer.Lemmatize(context.Background(), "укноос")
	if !IsUpstream(err) {
		t.Fatalf("error = %v, want UpstreamError", err)
	}
}

func TestHTTPAnalyzer_InvalidJSON(t *testing.T) {
	analyzer := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	if _, err := analyzer.Lemmatize(context.Background(), "укноос"); err == nil {
		t.Fatal("expected error for malformed response")
	}
}
