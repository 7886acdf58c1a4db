// Udmurt Corpus MCP Server - A Model Context Protocol server for the
// Udmurt national corpus. Provides tools for dictionary word lookup and
// full-text search over the literary text corpus.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codemurt/udmcorpus-wrapper/metrics"
	"github.com/codemurt/udmcorpus-wrapper/tracing"
	"github.com/codemurt/udmcorpus-wrapper/udmcorpus"
)

// recoverPanic wraps a function with panic recovery and returns an error instead of crashing
func recoverPanic(logger *slog.Logger, operation string) {
	if r := recover(); r != nil {
		metrics.PanicsRecovered.WithLabelValues(operation).Inc()
		logger.Error("Panic recovered",
			"operation", operation,
			"panic", r,
			"stack", string(debug.Stack()))
	}
}

const (
	ServerName    = "udmcorpus-mcp-server"
	ServerVersion = "1.0.0"
)

func main() {
	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Load configuration from environment
	config, err := udmcorpus.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// Optional OpenTelemetry tracing
	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	// Create corpus client
	client := udmcorpus.NewClientFromConfig(config, logger)
	defer client.Close()

	// Create MCP server
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger: logger,
		Instructions: `Udmurt Corpus MCP Server provides tools for working with the Udmurt national corpus.

Available tools:
- udmcorpus_lookup_word: Look a word up in the Udmurt-Russian dictionary
- udmcorpus_search_texts: Search the literary text corpus for example sentences

Configure via environment variables:
- UDMCORPUS_URL: Corpus API URL (default https://udmcorpus.udman.ru/api/public)
- UDMCORPUS_ANALYZER_URL: Morphological analyzer URL (enables lemma fallback)
- UDMCORPUS_TIMEOUT: Request timeout (e.g. 30s)`,
	})

	// Register all tools
	registerTools(server, client, logger)

	// Run server on stdio transport
	logger.Info("Starting Udmurt Corpus MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"corpus_url", config.BaseURL,
		"analyzer_configured", config.HasAnalyzer(),
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func registerTools(server *mcp.Server, client *udmcorpus.Client, logger *slog.Logger) {
	// Dictionary lookup tool
	mcp.AddTool(server, &mcp.Tool{
		Name:        "udmcorpus_lookup_word",
		Description: "Look a word up in the Udmurt-Russian dictionary. Returns plain-text translations. Set lemmatize_if_not_found to retry with the word's base form when the inflected form has no entry.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Look Up Word",
			ReadOnlyHint:  true,
			OpenWorldHint: ptr(true),
		},
	}, func(ctx context.Context, req *mcp.CallToolRequest, args udmcorpus.LookupWordArgs) (*mcp.CallToolResult, udmcorpus.LookupWordResult, error) {
		defer recoverPanic(logger, "lookup_word")
		start := time.Now()

		ctx, span := tracing.StartSpan(ctx, "udmcorpus_lookup_word")
		defer span.End()
		tracing.AddToolAttributes(span, "udmcorpus_lookup_word", "dictionary")
		tracing.AddCorpusAttributes(span, "dictionary/search", args.Word)

		lang := args.Lang
		if lang == "" {
			lang = udmcorpus.LangUdmurt
		}

		translations, err := client.LookupWord(ctx, args.Word, &udmcorpus.LookupOptions{
			Lang:                lang,
			ReplaceTilde:        args.ReplaceTilde,
			LemmatizeIfNotFound: args.LemmatizeIfNotFound,
		})
		metrics.RecordRequest("udmcorpus_lookup_word", time.Since(start).Seconds(), err == nil)
		if err != nil {
			tracing.RecordError(span, err)
			return nil, udmcorpus.LookupWordResult{}, fmt.Errorf("lookup failed: %w", err)
		}

		logger.Info("Tool executed",
			"tool", "udmcorpus_lookup_word",
			"word", args.Word,
			"lang", lang,
			"translations_count", len(translations),
		)
		return nil, udmcorpus.LookupWordResult{
			Word:         args.Word,
			Lang:         lang,
			Translations: translations,
			Count:        len(translations),
		}, nil
	})

	// Corpus text search tool
	mcp.AddTool(server, &mcp.Tool{
		Name:        "udmcorpus_search_texts",
		Description: "Search the Udmurt literary text corpus. Returns matching sentences with the query word highlighted. Set fetch_all to retrieve every match instead of the first count results.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Search Corpus Texts",
			ReadOnlyHint:  true,
			OpenWorldHint: ptr(true),
		},
	}, func(ctx context.Context, req *mcp.CallToolRequest, args udmcorpus.SearchTextsArgs) (*mcp.CallToolResult, udmcorpus.SearchTextsResult, error) {
		defer recoverPanic(logger, "search_texts")
		start := time.Now()

		ctx, span := tracing.StartSpan(ctx, "udmcorpus_search_texts")
		defer span.End()
		tracing.AddToolAttributes(span, "udmcorpus_search_texts", "search")
		tracing.AddCorpusAttributes(span, "search", args.Query)

		opts := udmcorpus.DefaultSearchOptions()
		if args.Count > 0 {
			opts.Count = args.Count
		}
		opts.FetchAll = args.FetchAll
		opts.FullCompare = args.FullCompare
		opts.FullTextMode = args.FullTextMode

		texts, err := client.SearchTexts(ctx, args.Query, opts)
		metrics.RecordRequest("udmcorpus_search_texts", time.Since(start).Seconds(), err == nil)
		if err != nil {
			tracing.RecordError(span, err)
			return nil, udmcorpus.SearchTextsResult{}, fmt.Errorf("search failed: %w", err)
		}

		logger.Info("Tool executed",
			"tool", "udmcorpus_search_texts",
			"query", args.Query,
			"texts_count", len(texts),
			"fetch_all", args.FetchAll,
		)
		return nil, udmcorpus.SearchTextsResult{
			Query: args.Query,
			Texts: texts,
			Count: len(texts),
		}, nil
	})
}

func ptr[T any](v T) *T {
	return &v
}
