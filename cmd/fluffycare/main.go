// Package main boots the FluffyCare companion service and wires application dependencies.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Emily548/FluffyCare/internal/alert"
	"github.com/Emily548/FluffyCare/internal/camera"
	"github.com/Emily548/FluffyCare/internal/chat"
	"github.com/Emily548/FluffyCare/internal/config"
	"github.com/Emily548/FluffyCare/internal/emotion"
	"github.com/Emily548/FluffyCare/internal/models"
	"github.com/Emily548/FluffyCare/internal/report"
	"github.com/Emily548/FluffyCare/internal/server"
	"github.com/Emily548/FluffyCare/internal/storage"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)
	slog.Info("configuration loaded", "provider", cfg.LLMProvider, "chat_model", cfg.ChatModel, "emotion_model", cfg.EmotionModel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Sessions.EnsureCompanions(ctx); err != nil {
		log.Fatalf("failed to seed companion sessions: %v", err)
	}

	chatModel, err := models.New(ctx, cfg.LLMProvider, cfg.ChatModel, cfg.LLMAPIKey)
	if err != nil {
		log.Fatalf("failed to create chat model: %v", err)
	}
	emotionModel := chatModel
	if cfg.EmotionModel != cfg.ChatModel {
		emotionModel, err = models.New(ctx, cfg.LLMProvider, cfg.EmotionModel, cfg.LLMAPIKey)
		if err != nil {
			log.Fatalf("failed to create emotion model: %v", err)
		}
	}

	chatService := chat.NewService(chat.Deps{
		Sessions:    store.Sessions,
		ChatLogs:    store.ChatLogs,
		EmotionLogs: store.EmotionLogs,
		Classifier:  emotion.NewAnalyzer(emotionModel),
		Model:       chatModel,
		Care:        alert.NewThrottle(cfg.CareInterval),
	}, chat.Options{
		HistoryLimit:  cfg.HistoryLimit,
		HistoryWindow: cfg.HistoryWindow,
	})
	watcher := camera.NewWatcher(alert.NewThrottle(cfg.AlertInterval), cfg.AlertStreak)
	reporter := report.NewService(store.EmotionLogs)

	srv := server.New(chatService, watcher, reporter)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", "addr", cfg.HTTPAddr)
		errCh <- srv.Start(cfg.HTTPAddr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed: %v", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shut down http server", "error", err.Error())
	}
	slog.Info("shutdown complete")
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
