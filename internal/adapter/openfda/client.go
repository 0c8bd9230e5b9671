// internal/adapter/openfda/client.go
package openfda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/GoArmGo/PharmaApp/internal/config"
	"github.com/GoArmGo/PharmaApp/internal/domain"
)

const defaultBaseURL = "https://api.fda.gov" // Базовый URL для openFDA API

// Client представляет клиент для взаимодействия с openFDA drug label API.
type Client struct {
	httpClient *http.Client // HTTP-клиент для выполнения запросов
	apiKey     string       // Ваш openFDA API key
	baseURL    string
}

// NewClient создает новый экземпляр Client.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second}, // Устанавливаем таймаут для HTTP-запросов
		apiKey:     cfg.OpenFDAAPIKey,
		baseURL:    defaultBaseURL,
	}
}

// FetchLabels выполняет один запрос к openFDA: серверный OR-фильтр по
// brand_name/generic_name, не больше limit записей.
// Любой не-2xx статус маппится в domain.ErrUpstreamUnavailable,
// отсутствие results — в domain.ErrNoResults.
func (c *Client) FetchLabels(ctx context.Context, query string, limit int) ([]domain.DrugRecord, error) {
	// Кавычки внутри запроса сломали бы синтаксис поискового выражения
	query = strings.ReplaceAll(query, `"`, "")

	params := url.Values{}
	params.Add("api_key", c.apiKey)
	// Пробел между условиями openFDA трактует как OR
	params.Add("search", fmt.Sprintf("openfda.brand_name:%q openfda.generic_name:%q", query, query))
	params.Add("limit", strconv.Itoa(limit))

	endpoint := fmt.Sprintf("%s/drug/label.json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания HTTP-запроса к openFDA: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close() // Важно закрыть тело ответа

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: openFDA вернул статус %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var searchResponse LabelSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResponse); err != nil {
		return nil, fmt.Errorf("%w: ошибка декодирования JSON ответа openFDA: %v", domain.ErrUpstreamUnavailable, err)
	}

	if len(searchResponse.Results) == 0 {
		return nil, domain.ErrNoResults
	}

	records := make([]domain.DrugRecord, 0, len(searchResponse.Results))
	for _, result := range searchResponse.Results {
		records = append(records, mapLabelToDomain(&result))
	}
	return records, nil
}

// mapLabelToDomain преобразует LabelResult в плоскую domain.DrugRecord.
func mapLabelToDomain(label *LabelResult) domain.DrugRecord {
	return domain.DrugRecord{
		BrandName:        first(label.OpenFDA.BrandName),
		GenericName:      first(label.OpenFDA.GenericName),
		ActiveIngredient: first(label.ActiveIngredient),
		Purpose:          first(label.Purpose),
		Warnings:         first(label.Warnings),
		Indications:      first(label.Indications),
		Dosage:           first(label.Dosage),
		AdverseReactions: first(label.AdverseReactions),
		Storage:          first(label.Storage),
	}
}

// first возвращает первый элемент массива openFDA или пустую строку.
func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
