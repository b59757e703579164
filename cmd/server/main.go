// cmd/server/main.go
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

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/homewise/planner-backend/internal/catalog"
	"github.com/homewise/planner-backend/internal/config"
	"github.com/homewise/planner-backend/internal/llm"
	"github.com/homewise/planner-backend/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Load the bundled product catalog
	cat, err := catalog.Load()
	if err != nil {
		log.Fatal("Failed to load product catalog:", err)
	}
	logrus.WithField("products", cat.Len()).Info("Product catalog loaded")

	// Select the AI backend from the configured credential
	client, cleanup, err := newLLMClient(cfg)
	if err != nil {
		log.Fatal("Failed to initialize AI client:", err)
	}
	defer cleanup()

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := router.Initialize(cat, client, cfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

func newLLMClient(cfg *config.Config) (llm.Client, func(), error) {
	switch cfg.AI.Provider() {
	case config.ProviderGemini:
		client, err := llm.NewGeminiClient(context.Background(), llm.Options{
			APIKey:          cfg.AI.GeminiAPIKey,
			Model:           cfg.AI.GeminiModel,
			Temperature:     cfg.AI.Temperature,
			MaxOutputTokens: cfg.AI.MaxOutputTokens,
		})
		if err != nil {
			return nil, nil, err
		}
		logrus.WithField("model", cfg.AI.GeminiModel).Info("Using Gemini backend")
		return client, func() { client.Close() }, nil
	default:
		client, err := llm.NewOpenAIClient(llm.Options{
			APIKey:          cfg.AI.OpenAIAPIKey,
			BaseURL:         cfg.AI.OpenAIBaseURL,
			Model:           cfg.AI.OpenAIModel,
			Temperature:     cfg.AI.Temperature,
			MaxOutputTokens: cfg.AI.MaxOutputTokens,
		})
		if err != nil {
			return nil, nil, err
		}
		logrus.WithField("model", cfg.AI.OpenAIModel).Info("Using OpenAI-compatible backend")
		return client, func() {}, nil
	}
}
