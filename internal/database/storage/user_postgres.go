package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/PharmaApp/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = pq.ErrorCode("23505")

// UserStorage реализует интерфейс ports.UserStorage поверх sqlx
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewUserStorage создает новый экземпляр UserStorage
func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// mapUniqueViolation переводит нарушение уникального индекса Postgres
// в доменную ошибку по имени констрейнта. Именно констрейнт на commit —
// а не предварительная проверка — закрывает гонку check-then-insert.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return err
	}
	switch pqErr.Constraint {
	case "users_username_key":
		return domain.ErrDuplicateUsername
	case "users_email_key":
		return domain.ErrDuplicateEmail
	}
	return err
}

// CreateUser вставляет нового пользователя в бд.
func (s *UserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	err := s.db.QueryRowxContext(ctx, `
        INSERT INTO users (username, email, password_hash, first_name, last_name, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `, user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.CreatedAt, user.UpdatedAt).Scan(&user.ID)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != err {
			return mapped
		}
		s.logger.Error("failed to insert user", "username", user.Username, "error", err)
		return fmt.Errorf("insert user: %w", err)
	}

	s.logger.Info("user created",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetUserByUsername ищет пользователя по точному имени.
func (s *UserStorage) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE username = $1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		s.logger.Error("failed to select user by username", "error", err)
		return nil, fmt.Errorf("select user by username: %w", err)
	}
	return &user, nil
}

// GetUserByID ищет пользователя по внутреннему ID.
func (s *UserStorage) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		s.logger.Error("failed to select user by id", "user_id", id, "error", err)
		return nil, fmt.Errorf("select user by id: %w", err)
	}
	return &user, nil
}

// UpdateUser перезаписывает профиль одним UPDATE, коллизии уникальности
// откатывают весь апдейт атомарно.
func (s *UserStorage) UpdateUser(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()

	result, err := s.db.ExecContext(ctx, `
        UPDATE users
        SET username = $1, email = $2, first_name = $3, last_name = $4, updated_at = $5
        WHERE id = $6
    `, user.Username, user.Email, user.FirstName, user.LastName, user.UpdatedAt, user.ID)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != err {
			return mapped
		}
		s.logger.Error("failed to update user", "user_id", user.ID, "error", err)
		return fmt.Errorf("update user: %w", err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePasswordHash заменяет сохранённый хэш пароля.
func (s *UserStorage) UpdatePasswordHash(ctx context.Context, userID int64, hash string) error {
	result, err := s.db.ExecContext(ctx, `
        UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3
    `, hash, time.Now(), userID)
	if err != nil {
		s.logger.Error("failed to update password hash", "user_id", userID, "error", err)
		return fmt.Errorf("update password hash: %w", err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteUser удаляет пользователя. Закладки уходят каскадом:
// ON DELETE CASCADE на bookmarks.user_id.
func (s *UserStorage) DeleteUser(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete user", "user_id", id, "error", err)
		return fmt.Errorf("delete user: %w", err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return domain.ErrNotFound
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}
