package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/GoArmGo/PharmaApp/internal/domain"
)

// drugUseCase implements DrugUseCase
type drugUseCase struct {
	fetcher DrugFetcher
	logger  *slog.Logger
}

// NewDrugUseCase создает новый экземпляр DrugUseCase
func NewDrugUseCase(fetcher DrugFetcher, logger *slog.Logger) DrugUseCase {
	return &drugUseCase{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Search выполняет полный конвейер поиска:
// запрос к API -> клиентская фильтрация -> ранжирование -> пагинация.
func (uc *drugUseCase) Search(ctx context.Context, query string, page int) (*domain.SearchPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	if page < 1 {
		page = 1
	}

	uc.logger.Info("searching drug labels", "query", query, "page", page)

	records, err := uc.fetcher.FetchLabels(ctx, query, fetchLimit)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при поиске препаратов: %w", err)
	}

	// Серверный фильтр openFDA довольно вольный, поэтому пересеиваем
	// выдачу локально по подстроке в первом бренде/дженерике
	filtered := filterRecords(records, query)
	if len(filtered) == 0 {
		return nil, domain.ErrNoResults
	}

	rankRecords(filtered, query)

	return paginate(filtered, page), nil
}

// filterRecords оставляет записи, у которых brand_name или generic_name
// содержит запрос как подстроку без учета регистра.
func filterRecords(records []domain.DrugRecord, query string) []domain.DrugRecord {
	lowered := strings.ToLower(query)

	var filtered []domain.DrugRecord
	for _, record := range records {
		if strings.Contains(strings.ToLower(record.BrandName), lowered) ||
			strings.Contains(strings.ToLower(record.GenericName), lowered) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// rankRecords сортирует записи по релевантности: точное совпадение бренда — 2,
// точное совпадение дженерика — 1, остальные — 0. Сортировка стабильная,
// при равном счете исходный порядок выдачи API сохраняется.
func rankRecords(records []domain.DrugRecord, query string) {
	score := func(record domain.DrugRecord) int {
		switch {
		case strings.EqualFold(record.BrandName, query):
			return 2
		case strings.EqualFold(record.GenericName, query):
			return 1
		default:
			return 0
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return score(records[i]) > score(records[j])
	})
}

// paginate нарезает отранжированный список на страницы фиксированного размера.
// Страница за пределами выдачи — пустой список, а не ошибка.
func paginate(records []domain.DrugRecord, page int) *domain.SearchPage {
	totalPages := (len(records) + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(records) {
		start = len(records)
	}
	if end > len(records) {
		end = len(records)
	}

	return &domain.SearchPage{
		Results:    records[start:end],
		Page:       page,
		TotalPages: totalPages,
	}
}
