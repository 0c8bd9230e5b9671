package ports

import (
	"context"

	"github.com/GoArmGo/PharmaApp/internal/domain"
)

// UserStorage определяет методы для взаимодействия с хранилищем пользователей
type UserStorage interface {
	// CreateUser вставляет нового пользователя и возвращает его с заполненным ID.
	// Нарушение уникальности username/email возвращается как
	// domain.ErrDuplicateUsername / domain.ErrDuplicateEmail.
	CreateUser(ctx context.Context, user *domain.User) error

	// GetUserByUsername ищет пользователя по точному совпадению имени.
	// Возвращает domain.ErrNotFound, если такого пользователя нет.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetUserByID ищет пользователя по внутреннему ID.
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)

	// UpdateUser перезаписывает username/email/first_name/last_name.
	// Коллизии уникальности маппятся так же, как в CreateUser.
	UpdateUser(ctx context.Context, user *domain.User) error

	// UpdatePasswordHash заменяет сохранённый хэш пароля.
	UpdatePasswordHash(ctx context.Context, userID int64, hash string) error

	// DeleteUser удаляет пользователя; закладки удаляются каскадно на уровне бд.
	DeleteUser(ctx context.Context, id int64) error
}

// BookmarkStorage определяет методы для взаимодействия с хранилищем закладок
type BookmarkStorage interface {
	// SaveBookmark вставляет новую закладку и возвращает её с заполненным ID.
	SaveBookmark(ctx context.Context, bookmark *domain.Bookmark) error

	// GetBookmarkByID получает закладку по ID, domain.ErrNotFound если её нет.
	GetBookmarkByID(ctx context.Context, id int64) (*domain.Bookmark, error)

	// GetBookmarkByBrand ищет закладку пользователя по названию бренда.
	GetBookmarkByBrand(ctx context.Context, userID int64, brandName string) (*domain.Bookmark, error)

	// ListBookmarksByUser возвращает все закладки пользователя в порядке добавления.
	ListBookmarksByUser(ctx context.Context, userID int64) ([]domain.Bookmark, error)

	// DeleteBookmark удаляет закладку по ID.
	DeleteBookmark(ctx context.Context, id int64) error
}
