package usecase

import (
	"context"

	"github.com/GoArmGo/PharmaApp/internal/domain"
)

// BookmarkUseCase определяет бизнес-логику работы с закладками.
type BookmarkUseCase interface {
	// Add сохраняет препарат в закладки пользователя.
	// Повторная закладка того же бренда — domain.ErrAlreadyBookmarked,
	// существующая запись при этом не трогается.
	Add(ctx context.Context, userID int64, drug domain.DrugRecord) (*domain.Bookmark, error)

	// Remove удаляет закладку. domain.ErrNotFound если её нет,
	// domain.ErrForbidden если она принадлежит другому пользователю.
	Remove(ctx context.Context, bookmarkID, requestingUserID int64) error

	// ListFor возвращает закладки пользователя в порядке добавления.
	ListFor(ctx context.Context, userID int64) ([]domain.Bookmark, error)
}
