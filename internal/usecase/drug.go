package usecase

import (
	"context"

	"github.com/GoArmGo/PharmaApp/internal/domain"
)

// Сколько сырых записей запрашивается у внешнего API за один поиск
// и сколько результатов помещается на страницу выдачи.
const (
	fetchLimit = 20
	pageSize   = 5
)

// DrugFetcher определяет интерфейс для получения записей о препаратах
// из внешнего источника (openFDA drug label API).
type DrugFetcher interface {
	// FetchLabels выполняет один запрос с серверным OR-фильтром по
	// brand_name/generic_name и возвращает не больше limit записей.
	FetchLabels(ctx context.Context, query string, limit int) ([]domain.DrugRecord, error)
}

// DrugUseCase определяет бизнес-логику поиска препаратов:
// фильтрация, ранжирование и пагинация поверх сырой выдачи API.
type DrugUseCase interface {
	// Search возвращает страницу page (нумерация с 1) результатов по запросу.
	// Пустой запрос — domain.ErrEmptyQuery, пустая выдача после фильтрации —
	// domain.ErrNoResults. Страница за пределами выдачи — пустой список, не ошибка.
	Search(ctx context.Context, query string, page int) (*domain.SearchPage, error)
}
