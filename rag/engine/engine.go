// Package engine is the query-time pipeline: embed the question, search the
// index, assemble the prompt, run generation, and normalize the answer.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"ragtutor/rag/vector"
)

// ErrGenerationFailed wraps any retrieval or generation failure during answer
// composition. The underlying cause stays matchable with errors.Is.
var ErrGenerationFailed = errors.New("generation failed")

// Answer is generated text plus the sources whose segments were in the
// prompt context, distinct and in rank order.
type Answer struct {
	Text    string
	Sources []string
}

// Engine answers questions over a persisted index. The index is loaded
// lazily on first use and kept warm; a load that fails because the index
// does not exist yet is retried on the next call, so an offline build is
// picked up without restarting the process.
type Engine struct {
	embedder  *vector.EmbeddingService
	generator Generator
	indexPath string
	topK      int

	mu    sync.Mutex
	index *vector.Index
}

// New creates an engine. topK <= 0 falls back to the default of 3.
func New(embedder *vector.EmbeddingService, generator Generator, indexPath string, topK int) *Engine {
	if topK <= 0 {
		topK = 3
	}
	return &Engine{
		embedder:  embedder,
		generator: generator,
		indexPath: indexPath,
		topK:      topK,
	}
}

// Retrieve embeds query and returns its k most similar indexed segments.
func (e *Engine) Retrieve(ctx context.Context, query string, k int) ([]vector.SearchResult, error) {
	ix, err := e.loadIndex()
	if err != nil {
		return nil, err
	}
	qvec, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	results, err := ix.Search(qvec, k)
	if err != nil {
		return nil, fmt.Errorf("index search: %w", err)
	}
	return results, nil
}

// Answer runs the full pipeline for one question. Failures carry
// ErrGenerationFailed plus the stage that broke; an empty query is
// ErrInvalidInput and a missing index stays matchable as ErrIndexNotFound.
func (e *Engine) Answer(ctx context.Context, query string) (Answer, error) {
	if strings.TrimSpace(query) == "" {
		return Answer{}, fmt.Errorf("%w: query must not be empty", vector.ErrInvalidInput)
	}

	results, err := e.Retrieve(ctx, query, e.topK)
	if err != nil {
		return Answer{}, fmt.Errorf("%w: retrieval: %w", ErrGenerationFailed, err)
	}

	contexts := make([]string, len(results))
	for i, r := range results {
		contexts[i] = r.Text
	}
	prompt := BuildPrompt(contexts, query)

	res, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		return Answer{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	text := ExtractText(res)
	log.Printf("answered query (%d context segments, %d chars)", len(results), len(text))

	return Answer{Text: text, Sources: distinctSources(results)}, nil
}

// loadIndex returns the warm index handle, loading it on first use. Only a
// successful load is cached.
func (e *Engine) loadIndex() (*vector.Index, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.index != nil {
		return e.index, nil
	}
	ix, err := vector.LoadIndex(e.indexPath)
	if err != nil {
		return nil, err
	}
	e.index = ix
	return ix, nil
}

// distinctSources collects source identifiers in first-seen rank order.
func distinctSources(results []vector.SearchResult) []string {
	seen := make(map[string]struct{}, len(results))
	sources := make([]string, 0, len(results))
	for _, r := range results {
		if _, ok := seen[r.Source]; ok {
			continue
		}
		seen[r.Source] = struct{}{}
		sources = append(sources, r.Source)
	}
	return sources
}
