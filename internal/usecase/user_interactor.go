package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/PharmaApp/internal/core/ports"
	"github.com/GoArmGo/PharmaApp/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// userUseCase implements UserUseCase
type userUseCase struct {
	userStorage ports.UserStorage
	logger      *slog.Logger
}

// NewUserUseCase создает новый экземпляр UserUseCase
func NewUserUseCase(userStorage ports.UserStorage, logger *slog.Logger) UserUseCase {
	return &userUseCase{
		userStorage: userStorage,
		logger:      logger,
	}
}

// hashPassword вычисляет bcrypt-хэш; сырой пароль дальше этой функции не живет.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("ошибка хэширования пароля: %w", err)
	}
	return string(hash), nil
}

// Register создает нового пользователя с хэшированным паролем.
func (uc *userUseCase) Register(ctx context.Context, params RegisterParams) (*domain.User, error) {
	hash, err := hashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
	}

	if err := uc.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) || errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("usecase: ошибка при создании пользователя: %w", err)
	}

	uc.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Authenticate проверяет пару имя/пароль.
// Промах по имени и неверный пароль дают одинаковый ответ,
// чтобы не раскрывать, какое из полей было неверным.
func (uc *userUseCase) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := uc.userStorage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotAuthenticated
		}
		return nil, fmt.Errorf("usecase: ошибка при поиске пользователя: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrNotAuthenticated
	}

	return user, nil
}

// GetByID возвращает пользователя по ID.
func (uc *userUseCase) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := uc.userStorage.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByUsername возвращает пользователя по имени.
func (uc *userUseCase) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := uc.userStorage.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Edit перезаписывает профиль; опционально меняет пароль.
// Коллизии username/email приходят из хранилища как доменные ошибки
// и не затирают остальные поля — апдейт атомарный.
func (uc *userUseCase) Edit(ctx context.Context, userID int64, params EditParams) (*domain.User, error) {
	user, err := uc.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Username = params.Username
	user.Email = params.Email
	user.FirstName = params.FirstName
	user.LastName = params.LastName

	if err := uc.userStorage.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) || errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("usecase: ошибка при обновлении профиля: %w", err)
	}

	if params.Password != "" {
		if err := uc.UpdatePassword(ctx, userID, params.Password); err != nil {
			return nil, err
		}
	}

	uc.logger.Info("user profile updated", "user_id", user.ID)
	return user, nil
}

// UpdatePassword заменяет хэш пароля пользователя.
func (uc *userUseCase) UpdatePassword(ctx context.Context, userID int64, newPassword string) error {
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := uc.userStorage.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("usecase: ошибка при смене пароля: %w", err)
	}

	uc.logger.Info("user password updated", "user_id", userID)
	return nil
}

// Delete удаляет учетную запись. Закладки удаляет каскад в бд.
func (uc *userUseCase) Delete(ctx context.Context, userID int64) error {
	if err := uc.userStorage.DeleteUser(ctx, userID); err != nil {
		return err
	}

	uc.logger.Info("user account deleted", "user_id", userID)
	return nil
}
