// Package udmcorpus provides a client for the public API of the Udmurt
// national corpus (udmcorpus.udman.ru): dictionary word lookup and
// paginated full-text search over the literary text corpus.
package udmcorpus

// ========== Dictionary Types ==========

// DictionaryEntry is one entry from the dictionary search endpoint.
// Body is an HTML fragment; SrcWord is the headword the entry belongs to,
// substituted for tilde placeholders inside Body.
type DictionaryEntry struct {
	ID      int    `json:"id,omitempty"`
	Body    string `json:"body"`
	SrcWord string `json:"srcWord"`
}

// dictionaryRequest is the body for POST dictionary/search.
type dictionaryRequest struct {
	Word string  `json:"word"`
	Lang langRef `json:"lang"`
}

type langRef struct {
	ID int `json:"id"`
}

// ========== Corpus Search Types ==========

// SearchPage is one response unit from the paginated search endpoint.
type SearchPage struct {
	Content          []SearchItem `json:"content"`
	TotalElements    int          `json:"totalElements"`
	NumberOfElements int          `json:"numberOfElements"`
	Last             bool         `json:"last"`
	Empty            bool         `json:"empty"`
}

// SearchItem is one text-bearing item inside a search page.
type SearchItem struct {
	ID     int    `json:"id,omitempty"`
	Body   string `json:"body"`
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
	Year   int    `json:"year,omitempty"`
}

// Search modes accepted by the search endpoint.
const (
	searchModeLexical  = 0
	searchModeFullText = 1
)

// Fixed labels the upstream expects verbatim in every search payload.
const (
	corpusTypeTitle = "Корпус литературных текстов"
	noGrammarLabel  = "Грамматика не выбрана"
	noGlossLabel    = "Глоссы не выбраны"
)

// searchPayload is the body for POST search. The API requires the full
// field set on every call, including the empty grammatical filter block.
type searchPayload struct {
	SearchMode      int           `json:"searchMode"`
	Word            *string       `json:"word"`
	Page            int           `json:"page"`
	PerPage         int           `json:"perPage"`
	FullCompare     bool          `json:"fullcompare"`
	Text            *string       `json:"text"`
	Title           string        `json:"title"`
	Grammar         grammarFilter `json:"gr"`
	Gloss           []string      `json:"gloss"`
	StartYear       *int          `json:"startYear"`
	EndYear         *int          `json:"endYear"`
	Theme           *string       `json:"theme"`
	Type            corpusType    `json:"type"`
	Authors         *string       `json:"authors"`
	Rows            int           `json:"rows"`
	CompiledGrammar string        `json:"compiledgr"`
	CompiledGloss   string        `json:"compiledgloss"`
}

// grammarFilter carries the thirteen grammatical filter dimensions. The
// wrapper always sends them empty; empty slices (not nil) so they marshal
// as [] rather than null.
type grammarFilter struct {
	PartOfSpeech     []string `json:"partOfSpeech"`
	LexicalClasses   []string `json:"lexicalClasses"`
	Attributivizers  []string `json:"attributivizers"`
	Numerals         []string `json:"numerals"`
	Number           []string `json:"number"`
	CoreCases        []string `json:"coreCases"`
	SpatialCases     []string `json:"spatialCases"`
	SpatialCases2    []string `json:"spatialCases2"`
	Possessiveness   []string `json:"possessiveness"`
	TenseMood        []string `json:"tense_mood"`
	VerbalDerivation []string `json:"verbalDerivation"`
	NonFiniteForms   []string `json:"nonFiniteForms"`
	Imperatives      []string `json:"imperatives"`
}

func emptyGrammarFilter() grammarFilter {
	return grammarFilter{
		PartOfSpeech:     []string{},
		LexicalClasses:   []string{},
		Attributivizers:  []string{},
		Numerals:         []string{},
		Number:           []string{},
		CoreCases:        []string{},
		SpatialCases:     []string{},
		SpatialCases2:    []string{},
		Possessiveness:   []string{},
		TenseMood:        []string{},
		VerbalDerivation: []string{},
		NonFiniteForms:   []string{},
		Imperatives:      []string{},
	}
}

// corpusType selects the text collection to search.
type corpusType struct {
	Value int    `json:"value"`
	Title string `json:"title"`
	Name  string `json:"name"`
}

func literaryCorpusType() corpusType {
	return corpusType{Value: 0, Title: corpusTypeTitle, Name: "CORPUS"}
}

// ========== MCP Tool Types ==========

type LookupWordArgs struct {
	Word                string `json:"word" jsonschema:"required,description=Word to look up in the dictionary"`
	Lang                string `json:"lang,omitempty" jsonschema:"description=Language code: 'udm' (default) or 'rus'"`
	ReplaceTilde        bool   `json:"replace_tilde,omitempty" jsonschema:"description=Replace tilde placeholders with the entry headword"`
	LemmatizeIfNotFound bool   `json:"lemmatize_if_not_found,omitempty" jsonschema:"description=Retry with the lemma when the word itself has no entry"`
}

type LookupWordResult struct {
	Word         string   `json:"word"`
	Lang         string   `json:"lang"`
	Translations []string `json:"translations"`
	Count        int      `json:"count"`
}

type SearchTextsArgs struct {
	Query        string `json:"query" jsonschema:"required,description=Query text to search in the corpus"`
	Count        int    `json:"count,omitempty" jsonschema:"description=Maximum results to return (default 10)"`
	FetchAll     bool   `json:"fetch_all,omitempty" jsonschema:"description=Fetch every matching text instead of stopping at count"`
	FullCompare  bool   `json:"full_compare,omitempty" jsonschema:"description=Require exact word-form comparison"`
	FullTextMode bool   `json:"full_text_mode,omitempty" jsonschema:"description=Match against document text instead of a lexical word"`
}

type SearchTextsResult struct {
	Query string   `json:"query"`
	Texts []string `json:"texts"`
	Count int      `json:"count"`
}
