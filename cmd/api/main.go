package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gramtax/internal/config"
	"gramtax/internal/embedding"
	"gramtax/internal/feedback"
	"gramtax/internal/handler"
	"gramtax/internal/llm"
	"gramtax/internal/recommend"
	"gramtax/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, err := newClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize model client: %v", err)
	}
	defer client.Close()
	client = llm.Chain(client, llm.WithLogging(nil))

	rec := recommend.New(client, recommend.Options{
		Timeout:          cfg.OpenAI.Timeout,
		VerifyTimeout:    cfg.OpenAI.Timeout,
		DefaultLeafPaths: recommend.DefaultTaxonomy,
	})

	store := feedback.NewFromEnv(cfg.Feedback.DSN, cfg.Feedback.FilePath)
	store.EnsureLoaded()
	defer store.Close()

	var exporter handler.ExportTarget
	if cfg.Export.Enabled {
		exp, err := feedback.NewExporter(feedback.S3Config{
			Endpoint:  cfg.Export.Endpoint,
			Region:    cfg.Export.Region,
			AccessKey: cfg.Export.AccessKey,
			SecretKey: cfg.Export.SecretKey,
			Bucket:    cfg.Export.Bucket,
			UseSSL:    cfg.Export.UseSSL,
		})
		if err != nil {
			log.Printf("Feedback export disabled: %v", err)
		} else {
			exporter = exp
		}
	}

	mux := server.NewMux(
		handler.NewRecommendHandler(rec, nil),
		handler.NewLearnHandler(store, embedding.New(cfg.OpenAI.APIKey, cfg.Embedding.Model), nil),
		handler.NewSplitHandler(),
		handler.NewExportHandler(store, exporter, nil),
		handler.NewTaxonomyHandler(),
	)

	srv := server.New(cfg.Port, mux)
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func newClient(cfg *config.Config) (llm.Client, error) {
	if cfg.Provider == "gemini" {
		return llm.NewGeminiClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
	}
	return llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL), nil
}
