package vector

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"
)

var (
	// ErrIndexNotFound reports that no index exists at the configured path.
	ErrIndexNotFound = errors.New("index not found")
	// ErrIndexCorrupt reports that the persisted index could not be decoded.
	ErrIndexCorrupt = errors.New("index corrupt")
)

// indexFormatVersion is bumped whenever the on-disk layout changes. Load
// rejects any other version instead of guessing.
const indexFormatVersion = 1

// Entry pairs a segment with its embedding vector.
type Entry struct {
	Text     string    `json:"text"`
	Source   string    `json:"source"`
	Position int       `json:"position"`
	Vector   []float32 `json:"vector"`
}

// SearchResult is a single nearest-neighbor hit.
type SearchResult struct {
	Text     string
	Source   string
	Position int
	Score    float32
}

// Index is an in-memory flat vector index over document segments. It is
// immutable after BuildIndex or LoadIndex and therefore safe to share across
// concurrent readers without locking.
//
// Similarity is cosine over the embedding space. Vectors are stored as the
// embedder produced them and the cosine is computed here, so the index works
// with any embedder whose vector space is cosine-comparable; the embedding
// model recorded in the header is the other half of that contract.
type Index struct {
	model   string
	dim     int
	entries []Entry
}

// indexFile is the persisted JSON layout. Plain data only: loading it can
// never execute anything, unlike the pickle-style formats some vector stores
// ship with.
type indexFile struct {
	Version   int     `json:"version"`
	Model     string  `json:"model"`
	Dimension int     `json:"dimension"`
	CreatedAt string  `json:"created_at"`
	Entries   []Entry `json:"entries"`
}

// BuildIndex constructs an index from scratch. All vectors must share one
// dimension; model records the embedding model the vectors came from.
func BuildIndex(model string, entries []Entry) (*Index, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("cannot build index from zero entries")
	}
	dim := len(entries[0].Vector)
	if dim == 0 {
		return nil, fmt.Errorf("entry 0 has an empty vector")
	}
	for i, e := range entries {
		if len(e.Vector) != dim {
			return nil, fmt.Errorf("entry %d has dimension %d, want %d", i, len(e.Vector), dim)
		}
	}
	return &Index{model: model, dim: dim, entries: entries}, nil
}

// Search returns up to k entries ranked by descending cosine similarity to
// query. Ties keep insertion order.
func (ix *Index) Search(query []float32, k int) ([]SearchResult, error) {
	if len(query) != ix.dim {
		return nil, fmt.Errorf("query dimension %d does not match index dimension %d", len(query), ix.dim)
	}
	if k <= 0 {
		return nil, nil
	}

	results := make([]SearchResult, 0, len(ix.entries))
	for _, e := range ix.entries {
		results = append(results, SearchResult{
			Text:     e.Text,
			Source:   e.Source,
			Position: e.Position,
			Score:    cosineSimilarity(query, e.Vector),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// Len returns the number of indexed segments.
func (ix *Index) Len() int { return len(ix.entries) }

// Dimension returns the embedding dimension of the index.
func (ix *Index) Dimension() int { return ix.dim }

// Model returns the embedding model identifier recorded at build time.
func (ix *Index) Model() string { return ix.model }

// Save persists the index as a single JSON blob at path, creating parent
// directories as needed. The blob is written to a temporary file in the
// target directory and renamed into place, so concurrent readers observe
// either the old index or the new one, never a partial write.
func (ix *Index) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	data, err := json.Marshal(indexFile{
		Version:   indexFormatVersion,
		Model:     ix.model,
		Dimension: ix.dim,
		CreatedAt: time.Now().Format(time.RFC3339),
		Entries:   ix.entries,
	})
	if err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp index file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close index file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to swap index into place: %w", err)
	}
	return nil
}

// LoadIndex reads a persisted index from path. A missing file is
// ErrIndexNotFound; anything unreadable or inconsistent is ErrIndexCorrupt.
func LoadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, path)
		}
		return nil, fmt.Errorf("failed to read index %s: %w", path, err)
	}

	var file indexFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexCorrupt, err)
	}
	if file.Version != indexFormatVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", ErrIndexCorrupt, file.Version)
	}
	if len(file.Entries) == 0 {
		return nil, fmt.Errorf("%w: index has no entries", ErrIndexCorrupt)
	}
	if file.Dimension <= 0 {
		return nil, fmt.Errorf("%w: invalid dimension %d", ErrIndexCorrupt, file.Dimension)
	}
	for i, e := range file.Entries {
		if len(e.Vector) != file.Dimension {
			return nil, fmt.Errorf("%w: entry %d has dimension %d, want %d",
				ErrIndexCorrupt, i, len(e.Vector), file.Dimension)
		}
	}

	return &Index{model: file.Model, dim: file.Dimension, entries: file.Entries}, nil
}

// cosineSimilarity computes the cosine similarity between two vectors of
// equal length. Zero vectors score 0.
func cosineSimilarity(a, b []float32) float32 {
	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}
