package vector

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/components/embedding"
)

var (
	// ErrInvalidInput reports empty text handed to the embedder or the query path.
	ErrInvalidInput = errors.New("invalid input")
	// ErrModelUnavailable reports that the underlying embedding model failed to run.
	ErrModelUnavailable = errors.New("embedding model unavailable")
)

// EmbeddingService wraps an eino embedding model for vector generation.
// The same instance is used at build time (segments) and query time (queries)
// so every vector lives in the same space. It is safe for concurrent use and
// should be constructed once per process.
type EmbeddingService struct {
	embedder embedding.Embedder

	mu  sync.Mutex
	dim int
}

// NewEmbeddingService creates an embedding service. dim may be 0, in which
// case the dimension is fixed by the first vector the model returns.
func NewEmbeddingService(embedder embedding.Embedder, dim int) *EmbeddingService {
	return &EmbeddingService{embedder: embedder, dim: dim}
}

// Embed generates the embedding vector for a single text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch generates embedding vectors for texts, preserving order.
// Any empty text is rejected rather than silently embedded as a zero vector.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: no texts to embed", ErrInvalidInput)
	}
	for i, text := range texts {
		if text == "" {
			return nil, fmt.Errorf("%w: text %d is empty", ErrInvalidInput, i)
		}
	}

	raw, err := s.embedder.EmbedStrings(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	if len(raw) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d texts", ErrModelUnavailable, len(raw), len(texts))
	}

	result := make([][]float32, len(raw))
	for i, vec := range raw {
		if len(vec) == 0 {
			return nil, fmt.Errorf("%w: empty vector for text %d", ErrModelUnavailable, i)
		}
		if err := s.checkDimension(len(vec)); err != nil {
			return nil, err
		}
		result[i] = make([]float32, len(vec))
		for j, v := range vec {
			result[i][j] = float32(v)
		}
	}

	return result, nil
}

// checkDimension fixes the service dimension on first use and rejects any
// vector that deviates from it afterwards.
func (s *EmbeddingService) checkDimension(got int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dim == 0 {
		s.dim = got
		return nil
	}
	if got != s.dim {
		return fmt.Errorf("embedding dimension changed: got %d, want %d", got, s.dim)
	}
	return nil
}

// Dimension returns the embedding dimension, or 0 if no vector has been
// produced yet and none was configured.
func (s *EmbeddingService) Dimension() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dim
}
