package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/PharmaApp/internal/core/ports"
	"github.com/GoArmGo/PharmaApp/internal/domain"
)

// bookmarkUseCase implements BookmarkUseCase
type bookmarkUseCase struct {
	bookmarkStorage ports.BookmarkStorage
	logger          *slog.Logger
}

// NewBookmarkUseCase создает новый экземпляр BookmarkUseCase
func NewBookmarkUseCase(bookmarkStorage ports.BookmarkStorage, logger *slog.Logger) BookmarkUseCase {
	return &bookmarkUseCase{
		bookmarkStorage: bookmarkStorage,
		logger:          logger,
	}
}

// optional переводит пустую строку в NULL для необязательных полей.
func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// Add сохраняет препарат в закладки.
// Сначала проверка на существующую пару (user_id, brand_name);
// гонку двух одновременных вставок добивает уникальный индекс в бд.
func (uc *bookmarkUseCase) Add(ctx context.Context, userID int64, drug domain.DrugRecord) (*domain.Bookmark, error) {
	existing, err := uc.bookmarkStorage.GetBookmarkByBrand(ctx, userID, drug.BrandName)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("usecase: ошибка при проверке существующей закладки: %w", err)
	}
	if existing != nil {
		uc.logger.Info("bookmark already exists, skipping",
			"user_id", userID, "brand_name", drug.BrandName)
		return nil, domain.ErrAlreadyBookmarked
	}

	bookmark := &domain.Bookmark{
		UserID:           userID,
		BrandName:        drug.BrandName,
		GenericName:      drug.GenericName,
		ActiveIngredient: optional(drug.ActiveIngredient),
		Purpose:          optional(drug.Purpose),
		Warnings:         optional(drug.Warnings),
		Indications:      optional(drug.Indications),
		Dosage:           optional(drug.Dosage),
		AdverseReactions: optional(drug.AdverseReactions),
		Storage:          optional(drug.Storage),
	}

	if err := uc.bookmarkStorage.SaveBookmark(ctx, bookmark); err != nil {
		if errors.Is(err, domain.ErrAlreadyBookmarked) {
			return nil, domain.ErrAlreadyBookmarked
		}
		return nil, fmt.Errorf("usecase: ошибка при сохранении закладки: %w", err)
	}

	uc.logger.Info("bookmark created",
		"bookmark_id", bookmark.ID, "user_id", userID, "brand_name", bookmark.BrandName)
	return bookmark, nil
}

// Remove удаляет закладку после проверки владельца.
// Порядок ошибок фиксированный: сначала NotFound, потом Forbidden.
func (uc *bookmarkUseCase) Remove(ctx context.Context, bookmarkID, requestingUserID int64) error {
	bookmark, err := uc.bookmarkStorage.GetBookmarkByID(ctx, bookmarkID)
	if err != nil {
		return err
	}

	if bookmark.UserID != requestingUserID {
		return domain.ErrForbidden
	}

	if err := uc.bookmarkStorage.DeleteBookmark(ctx, bookmarkID); err != nil {
		return fmt.Errorf("usecase: ошибка при удалении закладки: %w", err)
	}

	uc.logger.Info("bookmark removed", "bookmark_id", bookmarkID, "user_id", requestingUserID)
	return nil
}

// ListFor возвращает закладки пользователя в порядке добавления.
func (uc *bookmarkUseCase) ListFor(ctx context.Context, userID int64) ([]domain.Bookmark, error) {
	bookmarks, err := uc.bookmarkStorage.ListBookmarksByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении закладок: %w", err)
	}
	return bookmarks, nil
}
