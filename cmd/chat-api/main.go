package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/mattn/go-sqlite3"

	httpadapter "github.com/reubstahh/cf-ai-chat/internal/adapters/http"
	"github.com/reubstahh/cf-ai-chat/internal/adapters/llm"
	firestorestore "github.com/reubstahh/cf-ai-chat/internal/adapters/storage/firestore"
	memstore "github.com/reubstahh/cf-ai-chat/internal/adapters/storage/memory"
	sqlitestore "github.com/reubstahh/cf-ai-chat/internal/adapters/storage/sqlite"
	"github.com/reubstahh/cf-ai-chat/internal/app/chat"
	"github.com/reubstahh/cf-ai-chat/internal/config"
	"github.com/reubstahh/cf-ai-chat/internal/domain"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.Load()

	// LLM backend: Workers AI, Gemini or mock (useful for dev)
	var (
		llmClient domain.LLMClient
		err       error
	)

	switch cfg.LLMBackend {
	case "workersai":
		log.Println("[LLM] Using Workers AI client", "model:", cfg.CFModel)
		llmClient, err = llm.NewWorkersAIClient(cfg.CFAccountID, cfg.CFAPIToken, cfg.CFModel)
		if err != nil {
			log.Fatalf("error initializing Workers AI client: %v", err)
		}
	case "gemini":
		log.Println("[LLM] Using Gemini client", "model:", cfg.GeminiModel)
		llmClient, err = llm.NewGeminiClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("error initializing Gemini client: %v", err)
		}
	default:
		log.Println("[LLM] Using MOCK LLM client")
		llmClient = llm.NewMockLLM()
	}

	// Storage: SQLite, Firestore or Memory
	var store domain.MessageStore

	switch cfg.StorageBackend {
	case "sqlite":
		log.Printf("[STORE] Using SQLite storage (path=%s)", cfg.SQLitePath)
		db, err := sql.Open("sqlite3", cfg.SQLitePath)
		if err != nil {
			log.Fatalf("error opening SQLite database: %v", err)
		}
		sqlStore := sqlitestore.NewStore(db)
		if err := sqlStore.Init(); err != nil {
			log.Fatalf("error initializing SQLite store: %v", err)
		}
		defer func() {
			if err := sqlStore.Close(); err != nil {
				log.Println("error closing SQLite store:", err)
			}
		}()
		store = sqlStore

	case "firestore":
		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}
		store = fsStore

	default:
		log.Println("[STORE] Using in-memory storage")
		store = memstore.NewMessageStore()
	}

	// Chat service + HTTP server
	svc := chat.NewService(llmClient, store)
	handler := httpadapter.NewServer(svc)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Println("error shutting down server:", err)
		}
	}()

	log.Println("Chat API listening on port:", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
