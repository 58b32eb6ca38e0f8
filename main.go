package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"bugbash/internal/config"
	"bugbash/internal/game"
	"bugbash/internal/http/http_server"
	"bugbash/internal/oracle"
	"bugbash/internal/ws"
)

var (
	Log, _ = zap.NewDevelopment()
)

func main() {
	defer Log.Sync()
	zap.ReplaceGlobals(Log)

	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		Log.Fatal("Failed to load configuration", zap.Error(err))
	}
	Log.Debug("Configuration loaded successfully", zap.Any("config", cfg))

	if cfg.AnthropicApiKey == "" {
		Log.Warn("ANTHROPIC_API_KEY is empty; bug generation and validation will fail")
	}

	// 2. Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	// 3. Content/validation oracle
	orc := oracle.NewClient(cfg.AnthropicBaseUrl, cfg.AnthropicApiKey, cfg.AnthropicModel)

	// 4. Room registry: one coordinator per room id, created on first
	// reference, torn down after the idle timeout.
	registry := ws.NewRegistry(ctx, game.Config{
		GameDuration:     cfg.GameDuration,
		MaxActiveBugs:    cfg.MaxActiveBugs,
		MinSpawnInterval: cfg.MinSpawnInterval,
		MaxSpawnInterval: cfg.MaxSpawnInterval,
		BugTimeout:       cfg.BugTimeout,
		RevealStagger:    cfg.RevealStagger,
	}, orc, cfg.RoomIdleTimeout)

	// 5. Initialize the WS server
	wsSrv := ws.NewWsServer(registry)

	// 6. HTTP + WS server
	httpServer := http_server.NewHttpServer(ctx, cfg.HttpServerPort, wsSrv, registry)
	if err := httpServer.Start(); err != nil {
		Log.Fatal("Failed to start HTTP server", zap.Error(err))
	}
}
