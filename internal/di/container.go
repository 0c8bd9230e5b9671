package di

import (
	"github.com/GoArmGo/PharmaApp/internal/adapter/openfda"
	"github.com/GoArmGo/PharmaApp/internal/app"
	"github.com/GoArmGo/PharmaApp/internal/auth"
	"github.com/GoArmGo/PharmaApp/internal/config"
	"github.com/GoArmGo/PharmaApp/internal/database/postgres"
	"github.com/GoArmGo/PharmaApp/internal/database/storage"
	"github.com/GoArmGo/PharmaApp/internal/logger"
	"github.com/GoArmGo/PharmaApp/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Инициализация PostgreSQL клиента (sqlx + gorm поверх одного пула)
	dbClient, err := postgres.NewClient(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// 3. Инициализация хранилищ
	userStorage := storage.NewUserStorage(dbClient.DB, slogger)
	bookmarkStorage := storage.NewBookmarkStorage(dbClient.GormDB)

	// 4. Инициализация клиента внешнего API
	openFDAClient := openfda.NewClient(cfg)

	// 5. Менеджер сессий
	sessions := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)

	// 6. Инициализация бизнес-логики (usecases)
	userUseCase := usecase.NewUserUseCase(userStorage, slogger)
	drugUseCase := usecase.NewDrugUseCase(openFDAClient, slogger)
	bookmarkUseCase := usecase.NewBookmarkUseCase(bookmarkStorage, slogger)

	// 7. Сборка итогового приложения
	application := app.NewApp(
		cfg,
		slogger,
		dbClient.DB,
		userUseCase,
		drugUseCase,
		bookmarkUseCase,
		sessions,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}
