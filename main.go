package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"ragtutor/rag"
	"ragtutor/rag/engine"
	"ragtutor/rag/providers"
	"ragtutor/rag/vector"
	"ragtutor/server"
	"ragtutor/session"
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
	chatModel, err := providers.NewChatModel(ctx, cfg)
	if err != nil {
		log.Fatalf("chat model: %v", err)
	}

	embedder := vector.NewEmbeddingService(embedModel, cfg.EmbeddingDim)
	eng := engine.New(embedder, engine.NewChatGenerator(chatModel), cfg.IndexPath, cfg.TopK)

	var sessions session.Store
	switch cfg.SessionBackend {
	case "redis":
		store, err := session.NewRedisStore(ctx, session.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Fatalf("redis session store: %v", err)
		}
		defer store.Close()
		sessions = store
	default:
		sessions = session.NewMemoryStore()
	}

	r := server.NewRouter(server.NewHandler(eng, sessions))
	log.Printf("listening on %s (index: %s, provider: %s)", cfg.Addr, cfg.IndexPath, cfg.Provider)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
