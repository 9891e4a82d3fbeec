package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/dialogueworks/dialogue-facilitator/pkg/validator"

	"github.com/dialogueworks/dialogue-facilitator/internal/adapter/handler"
	"github.com/dialogueworks/dialogue-facilitator/internal/usecase/analysis"
	"github.com/dialogueworks/dialogue-facilitator/internal/usecase/orchestrator"
	"github.com/dialogueworks/dialogue-facilitator/internal/usecase/participant"
	"github.com/dialogueworks/dialogue-facilitator/internal/usecase/synthesis"
	"github.com/dialogueworks/dialogue-facilitator/pkg/ai"
	"github.com/dialogueworks/dialogue-facilitator/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize AI provider clients. Providers without credentials
	// stay in the chain in a disabled state; the fallback skips them.
	log.Println("🤖 Initializing AI providers...")
	anthropicClient := ai.NewAnthropicClient(&cfg.Anthropic, logger)
	openaiClient := ai.NewOpenAIClient(&cfg.OpenAI, logger)
	grokClient := ai.NewGrokClient(&cfg.Grok, logger)
	aiClient := ai.NewFallback(logger, anthropicClient, openaiClient, grokClient)

	configured := 0
	for _, p := range []ai.Provider{anthropicClient, openaiClient, grokClient} {
		status := p.CheckStatus(context.Background())
		if status.IsAvailable {
			configured++
			log.Printf("✅ Provider available: %s", status.Provider)
		} else {
			log.Printf("⚠️  Provider disabled: %s (%s)", status.Provider, status.Message)
		}
	}
	if configured == 0 {
		log.Println("⚠️  No AI provider configured; synthesis calls will fail fast")
	}

	// Initialize synthesis engine
	log.Println("🧩 Initializing synthesis engine...")
	engine := synthesis.NewEngine(aiClient, cfg.Synthesis, logger)

	// Initialize orchestrator with transcript enhancement and the
	// keyword classifier
	log.Println("🪢 Initializing orchestrator...")
	enhancer := participant.NewProviderEnhancer(aiClient)
	classifier := analysis.NewKeywordClassifier()
	dialogueOrchestrator := orchestrator.New(engine, enhancer, classifier, cfg.Synthesis.TopThemeCount, logger)

	// Initialize handlers
	log.Println("🛣️  Setting up routes...")
	dialogueHandler := handler.NewDialogueHandler(dialogueOrchestrator, logger)
	contributionHandler := handler.NewContributionHandler(dialogueOrchestrator, logger)
	providerHandler := handler.NewProviderHandler(logger, anthropicClient, openaiClient, grokClient)

	router := handler.NewRouter(cfg, dialogueHandler, contributionHandler, providerHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
