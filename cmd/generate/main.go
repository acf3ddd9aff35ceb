package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"law-quiz/internal/bootstrap"
	"law-quiz/internal/config"
	"law-quiz/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Generates and stores one quiz batch, then prints it to stdout.
func main() {
	os.Exit(run())
}

func run() int {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync()
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline := bootstrap.Build(ctx, cfg)
	defer pipeline.Close()

	if _, ok := pipeline.Store.Store(); !ok {
		l.Error("Quiz store unavailable", zap.String("reason", pipeline.Store.Reason()))
		return 1
	}

	start := time.Now()
	l.Info("Starting quiz batch generation", zap.Int("slots", cfg.Generation.SlotCount))
	quizzes, err := pipeline.Service.GenerateNew(ctx)
	if err != nil {
		l.Error("Quiz batch generation failed", zap.Error(err))
		return 1
	}
	l.Info("Quiz batch generated and saved",
		zap.Int("quizzes", len(quizzes)),
		zap.Duration("elapsed", time.Since(start)),
	)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(quizzes); err != nil {
		l.Error("Failed to print quizzes", zap.Error(err))
		return 1
	}
	return 0
}
