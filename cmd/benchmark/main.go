package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/codemurt/udmcorpus-wrapper/udmcorpus"
)

// measureCachePerformance compares a cold dictionary lookup against the
// cached repeat of the same word
func measureCachePerformance(client *udmcorpus.Client, word string) {
	ctx := context.Background()

	fmt.Println("=== Dictionary Cache Performance ===")
	fmt.Println()

	start := time.Now()
	translations, err := client.LookupWord(ctx, word, nil)
	if err != nil {
		fmt.Printf("   Error: %v\n", err)
		return
	}
	firstCall := time.Since(start)
	fmt.Printf("   First lookup (network): %v (%d translations)\n", firstCall, len(translations))

	start = time.Now()
	_, _ = client.LookupWord(ctx, word, nil)
	secondCall := time.Since(start)
	fmt.Printf("   Second lookup (cached): %v\n", secondCall)
	if secondCall > 0 {
		fmt.Printf("   Speedup: %.0fx faster\n", float64(firstCall)/float64(secondCall))
	}
	fmt.Println()
}

// measureSearchAggregation times a paginated corpus search at different
// result counts to show the cost of each extra page
func measureSearchAggregation(client *udmcorpus.Client, query string) {
	ctx := context.Background()

	fmt.Println("=== Search Pagination Cost ===")
	fmt.Println()

	for _, count := range []int{10, 30, 50} {
		start := time.Now()
		texts, err := client.SearchTexts(ctx, query, &udmcorpus.SearchOptions{Count: count})
		if err != nil {
			if udmcorpus.IsNotFound(err) {
				fmt.Printf("   count=%d: no texts found for %q\n", count, query)
				return
			}
			fmt.Printf("   Error: %v\n", err)
			return
		}
		fmt.Printf("   count=%d: %v for %d texts\n", count, time.Since(start), len(texts))
	}
	fmt.Println()
}

func main() {
	word := "укно"
	query := "коркан"
	if len(os.Args) > 1 {
		word = os.Args[1]
	}
	if len(os.Args) > 2 {
		query = os.Args[2]
	}

	fmt.Println("Udmurt Corpus Wrapper - Performance Measurements")
	fmt.Println("================================================")
	fmt.Println()

	config, err := udmcorpus.LoadConfig()
	if err != nil {
		fmt.Printf("Config error: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	client := udmcorpus.NewClientFromConfig(config, logger)
	defer client.Close()

	measureCachePerformance(client, word)
	measureSearchAggregation(client, query)

	fmt.Println("=== Summary ===")
	fmt.Println()
	fmt.Println("Key behaviors:")
	fmt.Println("• Caching: repeated lookups are served from memory, not the network")
	fmt.Println("• Pagination: each extra result page is one additional sequential API call")
	fmt.Println("• Connection reuse: HTTP/2 + connection pooling reduces per-request latency")
}
