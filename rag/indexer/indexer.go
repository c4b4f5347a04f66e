// Package indexer builds the persisted vector index from a folder of
// documents: enumerate, parse, chunk, embed, index, persist.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"ragtutor/pubsub"
	"ragtutor/rag/parser"
	"ragtutor/rag/vector"
)

var (
	// ErrDocsFolderNotFound reports a missing document folder.
	ErrDocsFolderNotFound = errors.New("docs folder not found")
	// ErrNoDocumentsFound reports a folder with no eligible document files.
	ErrNoDocumentsFound = errors.New("no documents found")
)

// Progress is the payload of build events.
type Progress struct {
	Stage    string // "scan", "parse", "embed", "persist"
	Current  int
	Total    int
	Source   string
	Segments int
	Err      string
}

// Builder orchestrates the build pipeline. A build must not run concurrently
// with another build against the same persist path; readers may load the old
// index at any point and the new one after the atomic swap.
type Builder struct {
	registry *parser.Registry
	embedder *vector.EmbeddingService
	model    string
	events   pubsub.Publisher[Progress]
}

// NewBuilder creates a builder. events may be nil when nobody is watching.
// model is the embedding model identifier recorded in the index header.
func NewBuilder(registry *parser.Registry, embedder *vector.EmbeddingService, model string, events pubsub.Publisher[Progress]) *Builder {
	return &Builder{
		registry: registry,
		embedder: embedder,
		model:    model,
		events:   events,
	}
}

// Build creates the index from every eligible file in docsDir and persists it
// at indexPath. On any failure the build aborts and the previous index, if
// one exists, is left untouched.
func (b *Builder) Build(ctx context.Context, docsDir, indexPath string, chunkSize, overlap int) error {
	info, err := os.Stat(docsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s (create it and add document files)", ErrDocsFolderNotFound, docsDir)
		}
		return fmt.Errorf("failed to stat docs folder: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrDocsFolderNotFound, docsDir)
	}

	files, err := b.enumerate(docsDir)
	if err != nil {
		b.fail("scan", err)
		return err
	}
	if len(files) == 0 {
		err := fmt.Errorf("%w: no %s files in %s", ErrNoDocumentsFound,
			strings.Join(b.registry.Extensions(), "/"), docsDir)
		b.fail("scan", err)
		return err
	}
	b.publish(pubsub.StartedEvent, Progress{Stage: "scan", Total: len(files)})

	var segments []vector.Segment
	for i, path := range files {
		doc, err := b.registry.ParseFile(path)
		if err != nil {
			b.fail("parse", err)
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		segs, err := vector.Split(doc.Content, filepath.Base(path), chunkSize, overlap)
		if err != nil {
			b.fail("parse", err)
			return fmt.Errorf("failed to chunk %s: %w", path, err)
		}
		segments = append(segments, segs...)
		b.publish(pubsub.ProgressEvent, Progress{
			Stage:   "parse",
			Current: i + 1,
			Total:   len(files),
			Source:  filepath.Base(path),
		})
	}
	if len(segments) == 0 {
		err := fmt.Errorf("%w: documents in %s contain no text", ErrNoDocumentsFound, docsDir)
		b.fail("parse", err)
		return err
	}

	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = seg.Text
	}
	b.publish(pubsub.ProgressEvent, Progress{Stage: "embed", Total: len(texts)})
	vectors, err := b.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		b.fail("embed", err)
		return fmt.Errorf("failed to embed %d segments: %w", len(texts), err)
	}

	entries := make([]vector.Entry, len(segments))
	for i, seg := range segments {
		entries[i] = vector.Entry{
			Text:     seg.Text,
			Source:   seg.Source,
			Position: seg.Position,
			Vector:   vectors[i],
		}
	}
	index, err := vector.BuildIndex(b.model, entries)
	if err != nil {
		b.fail("embed", err)
		return fmt.Errorf("failed to build index: %w", err)
	}

	b.publish(pubsub.ProgressEvent, Progress{Stage: "persist", Segments: index.Len()})
	if err := index.Save(indexPath); err != nil {
		b.fail("persist", err)
		return err
	}

	b.publish(pubsub.FinishedEvent, Progress{Stage: "persist", Segments: index.Len(), Total: len(files)})
	log.Printf("indexed %d segments from %d documents into %s", index.Len(), len(files), indexPath)
	return nil
}

// enumerate lists eligible document files in dir, sorted for deterministic
// segment order across rebuilds.
func (b *Builder) enumerate(dir string) ([]string, error) {
	pattern := filepath.Join(dir, "*.{"+strings.Join(b.registry.Extensions(), ",")+"}")
	files, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan docs folder: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

func (b *Builder) publish(t pubsub.EventType, p Progress) {
	if b.events != nil {
		b.events.Publish(t, p)
	}
}

func (b *Builder) fail(stage string, err error) {
	b.publish(pubsub.FailedEvent, Progress{Stage: stage, Err: err.Error()})
}
