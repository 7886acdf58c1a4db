package udmcorpus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/codemurt/udmcorpus-wrapper/metrics"
)

// SearchOptions configures a corpus text search.
type SearchOptions struct {
	// Count is the number of texts to return (default 10)
	Count int

	// FetchAll fetches every matching text, overriding Count with the
	// upstream-reported total
	FetchAll bool

	// FullCompare requires exact word-form comparison upstream
	FullCompare bool

	// FullTextMode matches the query against document text instead of a
	// lexical word
	FullTextMode bool

	// Page is the page number the aggregation starts from (default 1)
	Page int

	// PerPage is the page size requested from the upstream (default 10)
	PerPage int
}

// DefaultSearchOptions returns the search defaults.
func DefaultSearchOptions() *SearchOptions {
	return &SearchOptions{Count: 10, Page: 1, PerPage: 10}
}

// normalized fills zero-valued fields with their defaults.
func (o *SearchOptions) normalized() SearchOptions {
	opts := SearchOptions{}
	if o != nil {
		opts = *o
	}
	if opts.Count <= 0 {
		opts.Count = 10
	}
	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.PerPage <= 0 {
		opts.PerPage = 10
	}
	return opts
}

// SearchTexts searches the literary corpus and returns the matching text
// bodies, flattened in page order then item order and truncated to the
// effective target count. Errors: TextsNotFoundError when nothing matches,
// UpstreamError when any page request fails (pages already fetched are
// discarded).
func (c *Client) SearchTexts(ctx context.Context, query string, opts *SearchOptions) ([]string, error) {
	pages, target, err := c.fetchPages(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, target)
	for _, page := range pages {
		for _, item := range page.Content {
			texts = append(texts, item.Body)
		}
	}
	// Truncation is by the target computed up front, not by the number of
	// items actually fetched; slicing short is a no-op.
	if len(texts) > target {
		texts = texts[:target]
	}
	return texts, nil
}

// SearchPages is SearchTexts without flattening: it returns the raw pages
// exactly as aggregated, for callers that need totals and metadata.
func (c *Client) SearchPages(ctx context.Context, query string, opts *SearchOptions) ([]SearchPage, error) {
	pages, _, err := c.fetchPages(ctx, query, opts)
	return pages, err
}

// fetchPages runs the pagination aggregation loop and returns the fetched
// pages along with the effective target count.
//
// The upstream is stateless: each follow-up request must echo the first
// page's totalElements back in the rows field, and page numbers restart
// the query server-side. The loop stops as soon as either the target count
// is accumulated or a page reports last=true, whichever comes first.
func (c *Client) fetchPages(ctx context.Context, query string, opts *SearchOptions) ([]SearchPage, int, error) {
	o := opts.normalized()

	first, err := c.fetchPage(ctx, query, &o, o.Page, 0)
	if err != nil {
		return nil, 0, err
	}

	target := o.Count

	if first.Empty {
		return nil, 0, &TextsNotFoundError{Query: query}
	}

	if first.Last {
		metrics.ObservePagesFetched(1)
		return []SearchPage{*first}, target, nil
	}

	if o.FetchAll {
		target = first.TotalElements
	}

	pages := []SearchPage{*first}
	accumulated := first.NumberOfElements

	for pageNum := o.Page + 1; accumulated < target; pageNum++ {
		page, err := c.fetchPage(ctx, query, &o, pageNum, first.TotalElements)
		if err != nil {
			return nil, 0, err
		}

		pages = append(pages, *page)
		accumulated += page.NumberOfElements

		if page.Last {
			break
		}
	}

	c.logger.Debug("search aggregation complete",
		"query", query,
		"pages", len(pages),
		"accumulated", accumulated,
		"target", target)
	metrics.ObservePagesFetched(len(pages))

	return pages, target, nil
}

// fetchPage performs one search call for the given page number. rows echoes
// the totalElements observed on the first page; it is 0 on the first call.
func (c *Client) fetchPage(ctx context.Context, query string, opts *SearchOptions, pageNum, rows int) (*SearchPage, error) {
	body, err := c.makeRequest(ctx, endpointSearch, buildSearchPayload(query, opts, pageNum, rows))
	if err != nil {
		return nil, err
	}

	var page SearchPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}
	return &page, nil
}

// buildSearchPayload assembles the full request body the search endpoint
// requires. FullTextMode moves the query from the word field to the text
// field and flips the search mode.
func buildSearchPayload(query string, opts *SearchOptions, pageNum, rows int) searchPayload {
	payload := searchPayload{
		SearchMode:      searchModeLexical,
		Page:            pageNum,
		PerPage:         opts.PerPage,
		FullCompare:     opts.FullCompare,
		Title:           "",
		Grammar:         emptyGrammarFilter(),
		Gloss:           []string{},
		Type:            literaryCorpusType(),
		Rows:            rows,
		CompiledGrammar: noGrammarLabel,
		CompiledGloss:   noGlossLabel,
	}

	if opts.FullTextMode {
		payload.SearchMode = searchModeFullText
		payload.Text = &query
	} else {
		payload.Word = &query
	}

	return payload
}
