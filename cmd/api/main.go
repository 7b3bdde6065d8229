// @title           DocuMind API
// @version         1.0
// @description     Upload a document, then ask questions grounded in it.

// @host      localhost:8000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/documind/documind/internal/config"
	"github.com/documind/documind/internal/handlers"
	"github.com/documind/documind/internal/rag"
	"github.com/documind/documind/internal/server"
	"github.com/documind/documind/internal/session"
	"github.com/documind/documind/pkg/logger_i"
)

var listenAddr string

func main() {

	//.env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//providers are initialized once here; a missing credential fails the
	//process at startup instead of on the first upload
	embeddingService, err := rag.NewEmbedderFromEnv(serviceContext)
	if err != nil {
		logger.Error("Embedding provider failed to initialize. Shutting down.", "error", err)
		os.Exit(1)
	}
	llmProvider, err := rag.NewLLMFromEnv(serviceContext)
	if err != nil {
		logger.Error("LLM provider failed to initialize. Shutting down.", "error", err)
		os.Exit(1)
	}

	sessionStore := session.NewStore(config.SessionCacheCapacity)
	ragService := rag.NewService(sessionStore, llmProvider, embeddingService)

	handlers.Init(ragService)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
