package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/GoArmGo/PharmaApp/internal/di"
)

func main() {
	// bootstrap-логгер (используется только на этапе инициализации,
	// пока основной логгер еще не создан)
	bootstrapLogger := slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	bootstrapLogger.Info("starting application")

	ctx := context.Background()

	application, err := di.BuildApp()
	if err != nil {
		bootstrapLogger.Error("failed to build app", "error", err)
		os.Exit(1)
	}

	logger := application.LoggerIns()
	logger.Info("application initialized successfully")

	if err := application.Run(ctx); err != nil {
		logger.Error("application run failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
