package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/PharmaApp/internal/auth"
	"github.com/GoArmGo/PharmaApp/internal/config"
	"github.com/GoArmGo/PharmaApp/internal/usecase"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Config          *config.Config
	logger          *slog.Logger
	db              *sqlx.DB
	userUseCase     usecase.UserUseCase
	drugUseCase     usecase.DrugUseCase
	bookmarkUseCase usecase.BookmarkUseCase
	sessions        *auth.SessionManager
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	db *sqlx.DB,
	userUseCase usecase.UserUseCase,
	drugUseCase usecase.DrugUseCase,
	bookmarkUseCase usecase.BookmarkUseCase,
	sessions *auth.SessionManager,
) *App {
	return &App{
		Config:          cfg,
		logger:          logger,
		db:              db,
		userUseCase:     userUseCase,
		drugUseCase:     drugUseCase,
		bookmarkUseCase: bookmarkUseCase,
		sessions:        sessions,
	}
}

// LoggerIns возвращает основной логгер приложения.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run запускает HTTP-сервер и блокируется до сигнала завершения.
func (a *App) Run(ctx context.Context) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runServer(ctx, a.Config, a.logger, a.userUseCase, a.drugUseCase, a.bookmarkUseCase, a.sessions); err != nil {
		return err
	}

	// аккуратно закрываем ресурсы
	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown error", "error", closeErr)
	}

	a.logger.Info("application stopped")
	return nil
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("ошибка закрытия БД: %w", err)
		}
	}
	return nil
}
