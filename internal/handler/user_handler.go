package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/PharmaApp/internal/auth"
	"github.com/GoArmGo/PharmaApp/internal/domain"
	"github.com/GoArmGo/PharmaApp/internal/usecase"
	"github.com/go-chi/chi/v5"
)

// UserHandler — обработчик HTTP-запросов для учетных записей и сессий.
type UserHandler struct {
	userUseCase     usecase.UserUseCase
	bookmarkUseCase usecase.BookmarkUseCase
	sessions        *auth.SessionManager
	logger          *slog.Logger
}

// NewUserHandler создаёт новый экземпляр UserHandler.
func NewUserHandler(
	userUC usecase.UserUseCase,
	bookmarkUC usecase.BookmarkUseCase,
	sessions *auth.SessionManager,
	logger *slog.Logger,
) *UserHandler {
	return &UserHandler{
		userUseCase:     userUC,
		bookmarkUseCase: bookmarkUC,
		sessions:        sessions,
		logger:          logger,
	}
}

// Home — главная страница: текущий пользователь, если сессия есть.
func (h *UserHandler) Home(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CurrentUserID(r.Context())
	if !ok {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"user": nil}, h.logger)
		return
	}

	user, err := h.userUseCase.GetByID(r.Context(), userID)
	if errors.Is(err, domain.ErrNotFound) {
		// сессия ссылается на удаленную учетную запись — считаем анонимом
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"user": nil}, h.logger)
		return
	}
	if err != nil {
		h.logger.Error("failed to load current user", "user_id", userID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Не удалось загрузить данные пользователя", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"user": user}, h.logger)
}

// RegisterPage — GET-вариант страницы регистрации: пустая форма для анонима,
// для вошедшего — подсказка, что регистрация недоступна.
func (h *UserHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUserID(r.Context()); ok {
		respondWithError(w, http.StatusConflict, "Вы уже вошли в систему. Выйдите, чтобы создать новую учетную запись", h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"form": RegisterForm{}}, h.logger)
}

// LoginPage — GET-вариант страницы входа.
func (h *UserHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUserID(r.Context()); ok {
		respondWithError(w, http.StatusConflict, "Вы уже вошли в систему", h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"form": LoginForm{}}, h.logger)
}

// Register — регистрация нового пользователя и открытие сессии.
// Ошибки валидации и занятые username/email привязываются к полю,
// введенные значения возвращаются обратно (кроме пароля).
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUserID(r.Context()); ok {
		respondWithError(w, http.StatusConflict, "Вы уже вошли в систему. Выйдите, чтобы создать новую учетную запись", h.logger)
		return
	}

	var form RegisterForm
	if err := decodeForm(r, &form); err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректные данные формы", h.logger)
		return
	}

	if fieldErrors := validateForm(&form); fieldErrors != nil {
		h.respondFormErrors(w, fieldErrors, form.echo())
		return
	}

	user, err := h.userUseCase.Register(r.Context(), usecase.RegisterParams{
		Username:  form.Username,
		Password:  form.Password,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateUsername):
			h.respondFormErrors(w, map[string]string{"username": "Имя пользователя занято, попробуйте другое"}, form.echo())
		case errors.Is(err, domain.ErrDuplicateEmail):
			h.respondFormErrors(w, map[string]string{"email": "Email уже зарегистрирован"}, form.echo())
		default:
			h.logger.Error("failed to register user", "error", err)
			respondWithError(w, http.StatusInternalServerError, "Не удалось создать учетную запись", h.logger)
		}
		return
	}

	if err := h.openSession(w, user.ID); err != nil {
		return
	}

	h.logger.Info("user registered and logged in", "user_id", user.ID)
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Добро пожаловать! Учетная запись создана",
		"user":    user,
	}, h.logger)
}

// Login — вход по имени и паролю.
// В ответе специально не уточняется, что именно было неверным.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUserID(r.Context()); ok {
		respondWithError(w, http.StatusConflict, "Вы уже вошли в систему", h.logger)
		return
	}

	var form LoginForm
	if err := decodeForm(r, &form); err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректные данные формы", h.logger)
		return
	}

	if fieldErrors := validateForm(&form); fieldErrors != nil {
		h.respondFormErrors(w, fieldErrors, map[string]string{"username": form.Username})
		return
	}

	user, err := h.userUseCase.Authenticate(r.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			h.respondFormErrors(w, map[string]string{"username": "Неверное имя пользователя или пароль"},
				map[string]string{"username": form.Username})
			return
		}
		h.logger.Error("failed to authenticate user", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Не удалось выполнить вход", h.logger)
		return
	}

	if err := h.openSession(w, user.ID); err != nil {
		return
	}

	h.logger.Info("user logged in", "user_id", user.ID)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "С возвращением, " + user.Username,
		"user":    user,
	}, h.logger)
}

// Logout — завершение сессии.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessions.ClearCookie())
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Вы вышли из системы"}, h.logger)
}

// ShowUser — профиль пользователя вместе с его закладками. Только для владельца.
// Проверка сессии идет строго до обращения к бд.
func (h *UserHandler) ShowUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireProfileOwner(w, r)
	if !ok {
		return
	}

	bookmarks, err := h.bookmarkUseCase.ListFor(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("failed to list bookmarks", "user_id", user.ID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Не удалось получить закладки", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user":      user,
		"bookmarks": bookmarks,
	}, h.logger)
}

// DeleteUser — удаление учетной записи вместе с закладками (каскад в бд)
// и закрытие сессии.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireProfileOwner(w, r)
	if !ok {
		return
	}

	if err := h.userUseCase.Delete(r.Context(), user.ID); err != nil {
		h.logger.Error("failed to delete user", "user_id", user.ID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Не удалось удалить учетную запись", h.logger)
		return
	}

	http.SetCookie(w, h.sessions.ClearCookie())
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Учетная запись удалена"}, h.logger)
}

// EditUserPage — текущие значения профиля для предзаполнения формы.
func (h *UserHandler) EditUserPage(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireProfileOwner(w, r)
	if !ok {
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"user": user}, h.logger)
}

// EditUser — обновление профиля; пароль меняется, только если поле заполнено.
func (h *UserHandler) EditUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireProfileOwner(w, r)
	if !ok {
		return
	}

	var form EditForm
	if err := decodeForm(r, &form); err != nil {
		respondWithError(w, http.StatusBadRequest, "Некорректные данные формы", h.logger)
		return
	}

	if fieldErrors := validateForm(&form); fieldErrors != nil {
		h.respondFormErrors(w, fieldErrors, form.echo())
		return
	}

	updated, err := h.userUseCase.Edit(r.Context(), user.ID, usecase.EditParams{
		Username:  form.Username,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Password:  form.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateUsername):
			h.respondFormErrors(w, map[string]string{"username": "Имя пользователя занято, попробуйте другое"}, form.echo())
		case errors.Is(err, domain.ErrDuplicateEmail):
			h.respondFormErrors(w, map[string]string{"email": "Email уже зарегистрирован"}, form.echo())
		default:
			h.logger.Error("failed to edit user", "user_id", user.ID, "error", err)
			respondWithError(w, http.StatusInternalServerError, "Не удалось обновить профиль", h.logger)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Профиль обновлен",
		"user":    updated,
	}, h.logger)
}

// requireProfileOwner проверяет сессию, находит пользователя из URL и
// пропускает дальше только владельца профиля. Порядок важен: сначала
// аутентификация, потом обращение к бд.
func (h *UserHandler) requireProfileOwner(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	if _, err := auth.RequireLogin(r.Context()); err != nil {
		respondWithDomainError(w, err, h.logger)
		return nil, false
	}

	username := chi.URLParam(r, "username")
	user, err := h.userUseCase.GetByUsername(r.Context(), username)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return nil, false
	}

	if err := auth.RequireOwner(r.Context(), user.ID); err != nil {
		respondWithDomainError(w, err, h.logger)
		return nil, false
	}

	return user, true
}

// openSession выпускает сессионную cookie; ошибки подписи — это 500.
func (h *UserHandler) openSession(w http.ResponseWriter, userID int64) error {
	cookie, err := h.sessions.IssueCookie(userID)
	if err != nil {
		h.logger.Error("failed to issue session cookie", "user_id", userID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Не удалось открыть сессию", h.logger)
		return err
	}
	http.SetCookie(w, cookie)
	return nil
}

// respondFormErrors возвращает ошибки по полям вместе с введенными значениями,
// чтобы форма не теряла данные пользователя.
func (h *UserHandler) respondFormErrors(w http.ResponseWriter, fieldErrors, formValues map[string]string) {
	respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
		"errors": fieldErrors,
		"form":   formValues,
	}, h.logger)
}

// echo возвращает введенные значения формы регистрации без пароля.
func (f *RegisterForm) echo() map[string]string {
	return map[string]string{
		"username":   f.Username,
		"email":      f.Email,
		"first_name": f.FirstName,
		"last_name":  f.LastName,
	}
}

// echo возвращает введенные значения формы редактирования без пароля.
func (f *EditForm) echo() map[string]string {
	return map[string]string{
		"username":   f.Username,
		"email":      f.Email,
		"first_name": f.FirstName,
		"last_name":  f.LastName,
	}
}
