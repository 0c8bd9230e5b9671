package handler_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GoArmGo/PharmaApp/internal/app"
	"github.com/GoArmGo/PharmaApp/internal/auth"
	"github.com/GoArmGo/PharmaApp/internal/config"
	"github.com/GoArmGo/PharmaApp/internal/domain"
	"github.com/GoArmGo/PharmaApp/internal/handler"
	"github.com/GoArmGo/PharmaApp/internal/usecase"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Хранилища в памяти: тот же контракт, что у Postgres-реализаций,
// включая уникальность username/email и (user_id, brand_name).

type memUserStorage struct {
	users     map[int64]*domain.User
	nextID    int64
	bookmarks *memBookmarkStorage
}

func (m *memUserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return domain.ErrDuplicateUsername
		}
		if existing.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	user.ID = m.nextID
	m.nextID++
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memUserStorage) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUserStorage) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (m *memUserStorage) UpdateUser(ctx context.Context, user *domain.User) error {
	stored, ok := m.users[user.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, existing := range m.users {
		if id == user.ID {
			continue
		}
		if existing.Username == user.Username {
			return domain.ErrDuplicateUsername
		}
		if existing.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	stored.Username = user.Username
	stored.Email = user.Email
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	return nil
}

func (m *memUserStorage) UpdatePasswordHash(ctx context.Context, userID int64, hash string) error {
	user, ok := m.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	user.PasswordHash = hash
	return nil
}

func (m *memUserStorage) DeleteUser(ctx context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.users, id)
	// Моделируем ON DELETE CASCADE из схемы bookmarks
	for bookmarkID, bookmark := range m.bookmarks.bookmarks {
		if bookmark.UserID == id {
			delete(m.bookmarks.bookmarks, bookmarkID)
		}
	}
	return nil
}

type memBookmarkStorage struct {
	bookmarks map[int64]*domain.Bookmark
	nextID    int64
}

func (m *memBookmarkStorage) SaveBookmark(ctx context.Context, bookmark *domain.Bookmark) error {
	for _, existing := range m.bookmarks {
		if existing.UserID == bookmark.UserID && existing.BrandName == bookmark.BrandName {
			return domain.ErrAlreadyBookmarked
		}
	}
	bookmark.ID = m.nextID
	m.nextID++
	clone := *bookmark
	m.bookmarks[bookmark.ID] = &clone
	return nil
}

func (m *memBookmarkStorage) GetBookmarkByID(ctx context.Context, id int64) (*domain.Bookmark, error) {
	bookmark, ok := m.bookmarks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *bookmark
	return &clone, nil
}

func (m *memBookmarkStorage) GetBookmarkByBrand(ctx context.Context, userID int64, brandName string) (*domain.Bookmark, error) {
	for _, bookmark := range m.bookmarks {
		if bookmark.UserID == userID && bookmark.BrandName == brandName {
			clone := *bookmark
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memBookmarkStorage) ListBookmarksByUser(ctx context.Context, userID int64) ([]domain.Bookmark, error) {
	var result []domain.Bookmark
	for id := int64(1); id < m.nextID; id++ {
		if bookmark, ok := m.bookmarks[id]; ok && bookmark.UserID == userID {
			result = append(result, *bookmark)
		}
	}
	return result, nil
}

func (m *memBookmarkStorage) DeleteBookmark(ctx context.Context, id int64) error {
	if _, ok := m.bookmarks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.bookmarks, id)
	return nil
}

// failingUserStorage имитирует недоступность бд на чтении по id.
type failingUserStorage struct {
	*memUserStorage
}

func (f *failingUserStorage) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return nil, errors.New("db down")
}

type stubFetcher struct {
	records []domain.DrugRecord
	err     error
}

func (s *stubFetcher) FetchLabels(ctx context.Context, query string, limit int) ([]domain.DrugRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

// newTestServer поднимает приложение на хранилищах в памяти
// и возвращает resty-клиент с cookie jar (сессия живет между запросами).
func newTestServer(t *testing.T, fetcher usecase.DrugFetcher) (*httptest.Server, *resty.Client) {
	server, client, _ := newTestEnv(t, fetcher)
	return server, client
}

// newTestEnv дополнительно отдает хранилище закладок для прямых проверок.
func newTestEnv(t *testing.T, fetcher usecase.DrugFetcher) (*httptest.Server, *resty.Client, *memBookmarkStorage) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		ServerPort:     "8080",
		RequestTimeout: 5 * time.Second,
	}

	bookmarkStorage := &memBookmarkStorage{bookmarks: map[int64]*domain.Bookmark{}, nextID: 1}
	userStorage := &memUserStorage{users: map[int64]*domain.User{}, nextID: 1, bookmarks: bookmarkStorage}
	sessions := auth.NewSessionManager("test-secret", time.Hour)

	router := app.NewRouter(
		cfg,
		logger,
		usecase.NewUserUseCase(userStorage, logger),
		usecase.NewDrugUseCase(fetcher, logger),
		usecase.NewBookmarkUseCase(bookmarkStorage, logger),
		sessions,
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	client := resty.New().SetBaseURL(server.URL)
	return server, client, bookmarkStorage
}

func registerPayload(username, email string) map[string]string {
	return map[string]string{
		"username":   username,
		"password":   "secret123",
		"email":      email,
		"first_name": "Test",
		"last_name":  "User",
	}
}

func register(t *testing.T, client *resty.Client, username, email string) {
	t.Helper()
	resp, err := client.R().
		SetFormData(registerPayload(username, email)).
		Post("/register")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())
}

func TestRegisterOpensSession(t *testing.T) {
	_, client := newTestServer(t, &stubFetcher{})

	register(t, client, "alice", "alice@example.com")

	// сессионная cookie установлена — главная страница видит пользователя
	resp, err := client.R().Get("/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), `"username":"alice"`)
}

func TestRegister_DuplicateUsernameFieldError(t *testing.T) {
	_, client := newTestServer(t, &stubFetcher{})

	register(t, client, "alice", "alice@example.com")

	// второй клиент со своей cookie jar
	fresh := resty.New().SetBaseURL(client.BaseURL)
	resp, err := fresh.R().
		SetFormData(registerPayload("alice", "other@example.com")).
		Post("/register")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
	// ошибка у поля, введенные значения возвращены
	assert.Contains(t, string(resp.Body()), `"username"`)
	assert.Contains(t, string(resp.Body()), "other@example.com")
}

func TestRegister_ValidationEchoesValues(t *testing.T) {
	_, client := newTestServer(t, &stubFetcher{})

	resp, err := client.R().
		SetFormData(map[string]string{
			"username":   "bob",
			"password":   "secret123",
			"email":      "not-an-email",
			"first_name": "Bob",
			"last_name":  "Builder",
		}).
		Post("/register")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), `"email"`)
	assert.Contains(t, string(resp.Body()), `"bob"`) // введенное имя не потеряно
}

func TestLoginWrongPassword(t *testing.T) {
	_, client := newTestServer(t, &stubFetcher{})
	register(t, client, "alice", "alice@example.com")

	fresh := resty.New().SetBaseURL(client.BaseURL)
	resp, err := fresh.R().
		SetFormData(map[string]string{"username": "alice", "password": "wrong"}).
		Post("/login")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), "Неверное имя пользователя или пароль")
}

func TestProfileRequiresOwner(t *testing.T) {
	_, client := newTestServer(t, &stubFetcher{})
	register(t, client, "alice", "alice@example.com")

	// аноним получает 401
	anon := resty.New().SetBaseURL(client.BaseURL)
	resp, err := anon.R().Get("/users/alice")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())

	// другой пользователь получает 403
	other := resty.New().SetBaseURL(client.BaseURL)
	register(t, other, "bob", "bob@example.com")
	resp, err = other.R().Get("/users/alice")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())

	// владелец получает профиль с закладками
	resp, err = client.R().Get("/users/alice")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), `"bookmarks"`)
}

func TestBookmarkFlow(t *testing.T) {
	_, client := newTestServer(t, &stubFetcher{})
	register(t, client, "alice", "alice@example.com")

	form := map[string]string{
		"brand_name":   "Aspirin",
		"generic_name": "ASPIRIN",
		"purpose":      "Pain reliever",
	}

	resp, err := client.R().SetFormData(form).Post("/bookmark")
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode())

	// повторная закладка того же бренда — конфликт, не сбой
	resp, err = client.R().SetFormData(form).Post("/bookmark")
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode())

	// аноним закладку создать не может
	anon := resty.New().SetBaseURL(client.BaseURL)
	resp, err = anon.R().SetFormData(form).Post("/bookmark")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
}

func TestRemoveBookmarkOwnership(t *testing.T) {
	_, client := newTestServer(t, &stubFetcher{})
	register(t, client, "alice", "alice@example.com")

	resp, err := client.R().
		SetFormData(map[string]string{"brand_name": "Aspirin", "generic_name": "ASPIRIN"}).
		Post("/bookmark")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())

	// чужую закладку удалить нельзя
	other := resty.New().SetBaseURL(client.BaseURL)
	register(t, other, "bob", "bob@example.com")
	resp, err = other.R().Post("/bookmark/1/remove")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())

	// владелец удаляет
	resp, err = client.R().Post("/bookmark/1/remove")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	// повторное удаление — 404
	resp, err = client.R().Post("/bookmark/1/remove")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestDeleteUserCascadesAndClearsSession(t *testing.T) {
	_, client, bookmarks := newTestEnv(t, &stubFetcher{})
	register(t, client, "alice", "alice@example.com") // id=1

	other := resty.New().SetBaseURL(client.BaseURL)
	register(t, other, "bob", "bob@example.com") // id=2

	// у обоих закладка на один и тот же бренд
	form := map[string]string{"brand_name": "Aspirin", "generic_name": "ASPIRIN"}
	resp, err := client.R().SetFormData(form).Post("/bookmark")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())
	resp, err = other.R().SetFormData(form).Post("/bookmark")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())

	resp, err = client.R().Post("/users/alice/delete")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	// закладки alice удалены каскадом, одноименная закладка bob не тронута
	aliceRows, err := bookmarks.ListBookmarksByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, aliceRows)
	bobRows, err := bookmarks.ListBookmarksByUser(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, bobRows, 1)
	assert.Equal(t, "Aspirin", bobRows[0].BrandName)

	// сессия закрыта — профиль больше недоступен
	resp, err = client.R().Get("/users/alice")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
}

func TestDrugSearchEndpoint(t *testing.T) {
	fetcher := &stubFetcher{records: []domain.DrugRecord{
		{BrandName: "Aspirin", GenericName: "ASPIRIN"},
	}}
	_, client := newTestServer(t, fetcher)

	resp, err := client.R().Get("/drug_info?drug=aspirin&page=1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), `"total_pages":1`)

	// пустой запрос — ошибка валидации
	resp, err = client.R().Get("/drug_info?drug=&page=1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
}

func TestDrugSearchUpstreamDown(t *testing.T) {
	_, client := newTestServer(t, &stubFetcher{err: domain.ErrUpstreamUnavailable})

	resp, err := client.R().Get("/drug_info?drug=aspirin")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode())
}

func TestHomeStaleSessionIsAnonymous(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := &memUserStorage{users: map[int64]*domain.User{}, nextID: 1,
		bookmarks: &memBookmarkStorage{bookmarks: map[int64]*domain.Bookmark{}, nextID: 1}}
	sessions := auth.NewSessionManager("test-secret", time.Hour)
	h := handler.NewUserHandler(
		usecase.NewUserUseCase(users, logger),
		usecase.NewBookmarkUseCase(users.bookmarks, logger),
		sessions, logger,
	)

	// сессия указывает на несуществующего пользователя
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), 99))
	rec := httptest.NewRecorder()
	h.Home(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user":null`)
}

func TestHomeStorageFailureIsServerError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bookmarks := &memBookmarkStorage{bookmarks: map[int64]*domain.Bookmark{}, nextID: 1}
	users := &failingUserStorage{&memUserStorage{users: map[int64]*domain.User{}, nextID: 1, bookmarks: bookmarks}}
	sessions := auth.NewSessionManager("test-secret", time.Hour)
	h := handler.NewUserHandler(
		usecase.NewUserUseCase(users, logger),
		usecase.NewBookmarkUseCase(bookmarks, logger),
		sessions, logger,
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), 1))
	rec := httptest.NewRecorder()
	h.Home(rec, req)

	// отказ бд не должен выглядеть как анонимный визит
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestEditProfile(t *testing.T) {
	_, client := newTestServer(t, &stubFetcher{})
	register(t, client, "alice", "alice@example.com")

	resp, err := client.R().
		SetFormData(map[string]string{
			"username":   "alice",
			"email":      "new@example.com",
			"first_name": "Alice",
			"last_name":  "Cooper",
		}).
		Post("/users/alice/edit")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), "new@example.com")
}
