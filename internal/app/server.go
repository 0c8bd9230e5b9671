package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/PharmaApp/internal/auth"
	"github.com/GoArmGo/PharmaApp/internal/config"
	"github.com/GoArmGo/PharmaApp/internal/handler"
	"github.com/GoArmGo/PharmaApp/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter собирает chi-роутер со всеми маршрутами приложения.
// Вынесено отдельно, чтобы интеграционные тесты поднимали тот же роутер.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	userUC usecase.UserUseCase,
	drugUC usecase.DrugUseCase,
	bookmarkUC usecase.BookmarkUseCase,
	sessions *auth.SessionManager,
) *chi.Mux {
	userHandler := handler.NewUserHandler(userUC, bookmarkUC, sessions, logger)
	drugHandler := handler.NewDrugHandler(drugUC, logger)
	bookmarkHandler := handler.NewBookmarkHandler(bookmarkUC, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(handler.SessionAuth(sessions))

	r.Get("/", userHandler.Home)
	r.Get("/register", userHandler.RegisterPage)
	r.Post("/register", userHandler.Register)
	r.Get("/login", userHandler.LoginPage)
	r.Post("/login", userHandler.Login)
	r.Get("/logout", userHandler.Logout)

	r.Get("/users/{username}", userHandler.ShowUser)
	r.Post("/users/{username}/delete", userHandler.DeleteUser)
	r.Get("/users/{username}/edit", userHandler.EditUserPage)
	r.Post("/users/{username}/edit", userHandler.EditUser)

	r.Get("/drug_info", drugHandler.Search)

	r.Post("/bookmark", bookmarkHandler.Add)
	r.Post("/bookmark/{id}/remove", bookmarkHandler.Remove)

	return r
}

// runServer запускает HTTP сервер и блокируется до отмены контекста
func runServer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	userUC usecase.UserUseCase,
	drugUC usecase.DrugUseCase,
	bookmarkUC usecase.BookmarkUseCase,
	sessions *auth.SessionManager,
) error {
	r := NewRouter(cfg, logger, userUC, drugUC, bookmarkUC, sessions)

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful Shutdown
	select {
	case err := <-errCh:
		return fmt.Errorf("ошибка при запуске сервера: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, stopping server")

	ctxServer, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
