package main

import (
	"log"

	"github.com/sashabaranov/go-openai"

	"go-canopy/config"
	"go-canopy/cronjobs"
	"go-canopy/pipeline"
	"go-canopy/routes"
	"go-canopy/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DemoMode {
		log.Println("Running in demo mode: analyses use the synthetic Rondonia scene")
	}

	var openaiClient *openai.Client
	if cfg.OpenAIAPIKey != "" {
		log.Println("OPENAI_API_KEY loaded, narrative polish enabled")
		openaiClient = openai.NewClient(cfg.OpenAIAPIKey)
	}

	st := store.New()
	runner := pipeline.NewRunner(st, cfg, openaiClient)

	// Watched-region monitor
	c := cronjobs.InitCronJobs(cfg, st, runner)
	defer c.Stop()

	r := routes.SetupRouter(cfg, st, runner)
	if err := r.Run(cfg.ListenAddr()); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
