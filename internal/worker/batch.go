package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/opbop/opbop/internal/client"
)

// Parser fetches the condensed article for one URL.
type Parser interface {
	ParseURL(ctx context.Context, url string) (*client.Outcome, error)
}

// ParseJob parses a single URL.
type ParseJob struct {
	URL    string
	Parser Parser
}

// Execute implements Job.
func (j *ParseJob) Execute(ctx context.Context) Result {
	outcome, err := j.Parser.ParseURL(ctx, j.URL)
	return &ParseResult{URL: j.URL, Outcome: outcome, Error: err}
}

// ParseResult is the outcome of one parse job.
type ParseResult struct {
	URL     string
	Outcome *client.Outcome
	Error   error
}

// GetError implements Result.
func (r *ParseResult) GetError() error {
	return r.Error
}

// BatchProcessor parses many URLs concurrently. Each URL is submitted once,
// so there is never more than one in-flight request per article.
type BatchProcessor struct {
	parser      Parser
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(parser Parser, concurrency int) *BatchProcessor {
	return &BatchProcessor{parser: parser, concurrency: concurrency}
}

// ProcessURLs parses the given URLs concurrently.
func (b *BatchProcessor) ProcessURLs(ctx context.Context, urls []string) []*ParseResult {
	if len(urls) == 0 {
		return []*ParseResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, url := range urls {
		pool.Submit(&ParseJob{URL: url, Parser: b.parser})
	}

	results := pool.Wait()

	parseResults := make([]*ParseResult, len(results))
	for i, result := range results {
		parseResults[i] = result.(*ParseResult)
	}
	return parseResults
}

// ProcessFile reads URLs from a file and parses them concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*ParseResult, error) {
	urls, err := ReadURLsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}
	return b.ProcessURLs(ctx, urls), nil
}

// ReadURLsFromFile reads URLs from a file, one per line. Blank lines and
// #-comments are skipped and duplicates are dropped.
func ReadURLsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return urls, nil
}
