package domain

import "errors"

// Ошибки-сентинелы доменного уровня.
// Проверяются через errors.Is, обработчики маппят их в HTTP-статусы.
var (
	// Поиск
	ErrEmptyQuery          = errors.New("пустой поисковый запрос")
	ErrNoResults           = errors.New("по запросу ничего не найдено")
	ErrUpstreamUnavailable = errors.New("внешний API недоступен")

	// Авторизация
	ErrNotAuthenticated = errors.New("требуется вход в систему")
	ErrForbidden        = errors.New("доступ запрещён")

	// Хранилища
	ErrNotFound          = errors.New("запись не найдена")
	ErrAlreadyBookmarked = errors.New("препарат уже в закладках")
	ErrDuplicateUsername = errors.New("имя пользователя уже занято")
	ErrDuplicateEmail    = errors.New("email уже зарегистрирован")
)
