// Command build-index builds the vector index from the documents folder so
// the server can answer queries against it.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"

	"ragtutor/pubsub"
	"ragtutor/rag"
	"ragtutor/rag/indexer"
	"ragtutor/rag/parser"
	"ragtutor/rag/providers"
	"ragtutor/rag/vector"
)

func init() {
	// Load .env file if exists
	_ = godotenv.Load()
}

func main() {
	ctx := context.Background()
	cfg := rag.Load()

	cleanup, err := providers.SetupTracing(ctx)
	if err != nil {
		log.Fatalf("tracing: %v", err)
	}
	defer cleanup()

	embedModel, err := providers.NewEmbeddingModel(ctx, cfg)
	if err != nil {
		log.Fatalf("embedding model: %v", err)
	}
	embedder := vector.NewEmbeddingService(embedModel, cfg.EmbeddingDim)

	broker := pubsub.NewBroker[indexer.Progress]()
	watchCtx, stopWatch := context.WithCancel(ctx)
	done := make(chan struct{})
	go watchProgress(broker.Subscribe(watchCtx), done)

	builder := indexer.NewBuilder(parser.DefaultRegistry(), embedder, cfg.EmbeddingModel, broker)
	buildErr := builder.Build(ctx, cfg.DocsDir, cfg.IndexPath, cfg.ChunkSize, cfg.ChunkOverlap)

	broker.Shutdown()
	stopWatch()
	<-done

	if buildErr != nil {
		log.Fatalf("build failed: %v", buildErr)
	}
	fmt.Printf("index written to %s\n", cfg.IndexPath)
}

// watchProgress renders build events: a bar over the parse stage, log lines
// for the rest.
func watchProgress(events <-chan pubsub.Event[indexer.Progress], done chan<- struct{}) {
	defer close(done)
	var bar *progressbar.ProgressBar

	for ev := range events {
		p := ev.Payload
		switch ev.Type {
		case pubsub.StartedEvent:
			fmt.Fprintf(os.Stderr, "building index from %d files\n", p.Total)
			bar = progressbar.NewOptions(p.Total,
				progressbar.OptionSetDescription("parsing"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionClearOnFinish(),
			)
		case pubsub.ProgressEvent:
			switch p.Stage {
			case "parse":
				if bar != nil {
					_ = bar.Add(1)
				}
			case "embed":
				fmt.Fprintf(os.Stderr, "embedding %d segments\n", p.Total)
			}
		case pubsub.FinishedEvent:
			if bar != nil {
				_ = bar.Finish()
			}
			fmt.Fprintf(os.Stderr, "indexed %d segments from %d files\n", p.Segments, p.Total)
		case pubsub.FailedEvent:
			if bar != nil {
				_ = bar.Finish()
			}
			fmt.Fprintf(os.Stderr, "build failed at %s stage: %s\n", p.Stage, p.Err)
		}
	}
}
