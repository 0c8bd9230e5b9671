// internal/auth/session.go
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/GoArmGo/PharmaApp/internal/domain"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// CookieName — имя cookie, в которой браузер хранит сессионный токен.
const CookieName = "pharma_session"

// contextKey — отдельный тип ключа контекста, чтобы избежать коллизий.
type contextKey string

const userIDKey contextKey = "userID"

// Claims — содержимое сессионного токена: стандартные поля JWT плюс ID пользователя.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// SessionManager выпускает и проверяет подписанные сессионные токены.
// Сессия хранит единственное значимое поле — ID аутентифицированного пользователя.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionManager создает новый экземпляр SessionManager.
func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// IssueCookie выпускает подписанный токен для пользователя и оборачивает его в cookie.
// Вызывается при успешном входе или регистрации.
func (m *SessionManager) IssueCookie(userID int64) (*http.Cookie, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("ошибка подписи сессионного токена: %w", err)
	}

	return &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  now.Add(m.ttl),
	}, nil
}

// ClearCookie возвращает cookie, затирающую сессию в браузере.
// Вызывается при выходе и при удалении аккаунта.
func (m *SessionManager) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	}
}

// ResolveUserID извлекает ID пользователя из сессионной cookie запроса.
// Отсутствующий, протухший или подделанный токен — это просто анонимный
// запрос (domain.ErrNotAuthenticated), а не сбой сервера.
func (m *SessionManager) ResolveUserID(r *http.Request) (int64, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return 0, domain.ErrNotAuthenticated
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return 0, domain.ErrNotAuthenticated
	}

	return claims.UserID, nil
}

// WithUserID кладет ID аутентифицированного пользователя в контекст запроса.
// Дальше по цепочке текущий пользователь передается только явно, через контекст.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// CurrentUserID возвращает ID пользователя из контекста, ok=false для анонима.
func CurrentUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok && id != 0
}

// RequireLogin возвращает ID пользователя или domain.ErrNotAuthenticated.
func RequireLogin(ctx context.Context) (int64, error) {
	id, ok := CurrentUserID(ctx)
	if !ok {
		return 0, domain.ErrNotAuthenticated
	}
	return id, nil
}

// RequireOwner пропускает только владельца ресурса.
func RequireOwner(ctx context.Context, ownerID int64) error {
	id, err := RequireLogin(ctx)
	if err != nil {
		return err
	}
	if id != ownerID {
		return domain.ErrForbidden
	}
	return nil
}
