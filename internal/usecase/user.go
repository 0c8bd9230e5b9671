package usecase

import (
	"context"

	"github.com/GoArmGo/PharmaApp/internal/domain"
)

// RegisterParams — данные формы регистрации после валидации.
type RegisterParams struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

// EditParams — данные формы редактирования профиля.
// Password пустой, если пользователь не менял пароль.
type EditParams struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// UserUseCase определяет бизнес-логику работы с учетными записями.
type UserUseCase interface {
	// Register создает пользователя с bcrypt-хэшем пароля.
	// Занятые username/email возвращаются как domain.ErrDuplicateUsername /
	// domain.ErrDuplicateEmail, чтобы обработчик показал ошибку у поля.
	Register(ctx context.Context, params RegisterParams) (*domain.User, error)

	// Authenticate ищет пользователя по имени и сверяет пароль с хэшем.
	// Неизвестное имя и неверный пароль неразличимы для вызывающего —
	// оба случая это domain.ErrNotAuthenticated.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// GetByID возвращает пользователя по внутреннему ID.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername возвращает пользователя по имени.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// Edit перезаписывает профиль и, если задан новый пароль, перехэширует его.
	// Коллизии username/email откатывают весь апдейт.
	Edit(ctx context.Context, userID int64, params EditParams) (*domain.User, error)

	// UpdatePassword заменяет хэш пароля. Другие сессии не инвалидируются —
	// сервер их не отслеживает.
	UpdatePassword(ctx context.Context, userID int64, newPassword string) error

	// Delete удаляет учетную запись вместе со всеми её закладками.
	Delete(ctx context.Context, userID int64) error
}
