package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/documind/documind/internal/adapter/utils"
	"github.com/documind/documind/internal/config"
	"github.com/documind/documind/internal/rag"
	"github.com/documind/documind/internal/session"
	"github.com/documind/documind/internal/tui"
	"github.com/documind/documind/pkg/logger_i"
)

func main() {
	_ = godotenv.Load()
	logger_i.Init()

	if len(os.Args) < 2 {
		fmt.Println("Usage: chat document.pdf")
		os.Exit(1)
	}
	documentPath := os.Args[1]

	ctx := context.Background()

	embeddingService, err := rag.NewEmbedderFromEnv(ctx)
	if err != nil {
		log.Fatalf("embedding provider init failed: %v", err)
	}
	llmProvider, err := rag.NewLLMFromEnv(ctx)
	if err != nil {
		log.Fatalf("llm provider init failed: %v", err)
	}

	sessionStore := session.NewStore(config.SessionCacheCapacity)
	svc := rag.NewService(sessionStore, llmProvider, embeddingService)

	fmt.Printf("Indexing %s ...\n", documentPath)
	result, err := svc.Index(ctx, utils.GetNewUUID(), documentPath, filepath.Base(documentPath))
	if err != nil {
		log.Fatalf("indexing failed: %v", err)
	}

	m := tui.New(svc, result.Key, result.FileName, result.ChunkCount)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}
