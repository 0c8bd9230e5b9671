package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/GoArmGo/PharmaApp/internal/domain"
	"gorm.io/gorm"
)

// BookmarkStorage реализует интерфейс ports.BookmarkStorage с использованием GORM
type BookmarkStorage struct {
	db *gorm.DB
}

// NewBookmarkStorage создает новый экземпляр BookmarkStorage
func NewBookmarkStorage(db *gorm.DB) *BookmarkStorage {
	return &BookmarkStorage{db: db}
}

// SaveBookmark сохраняет закладку в базе данных с помощью GORM.
// Дубликат (user_id, brand_name) ловится уникальным индексом
// и возвращается как domain.ErrAlreadyBookmarked.
func (s *BookmarkStorage) SaveBookmark(ctx context.Context, bookmark *domain.Bookmark) error {
	result := s.db.WithContext(ctx).Create(bookmark)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyBookmarked
		}
		return fmt.Errorf("ошибка при сохранении закладки в БД: %w", result.Error)
	}
	return nil
}

// GetBookmarkByID получает закладку по ID.
func (s *BookmarkStorage) GetBookmarkByID(ctx context.Context, id int64) (*domain.Bookmark, error) {
	var bookmark domain.Bookmark
	result := s.db.WithContext(ctx).First(&bookmark, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении закладки по ID из БД: %w", result.Error)
	}
	return &bookmark, nil
}

// GetBookmarkByBrand ищет закладку пользователя по названию бренда.
func (s *BookmarkStorage) GetBookmarkByBrand(ctx context.Context, userID int64, brandName string) (*domain.Bookmark, error) {
	var bookmark domain.Bookmark
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND brand_name = ?", userID, brandName).
		First(&bookmark)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при поиске закладки по бренду в БД: %w", result.Error)
	}
	return &bookmark, nil
}

// ListBookmarksByUser возвращает закладки пользователя в порядке добавления.
func (s *BookmarkStorage) ListBookmarksByUser(ctx context.Context, userID int64) ([]domain.Bookmark, error) {
	var bookmarks []domain.Bookmark
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&bookmarks)
	if result.Error != nil {
		return nil, fmt.Errorf("ошибка при получении списка закладок из БД: %w", result.Error)
	}
	return bookmarks, nil
}

// DeleteBookmark удаляет закладку по ID.
func (s *BookmarkStorage) DeleteBookmark(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&domain.Bookmark{}, id)
	if result.Error != nil {
		return fmt.Errorf("ошибка при удалении закладки из БД: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
