package openfda

// OpenFDAFields — вложенный объект openfda с нормализованными именами.
// Названия приходят массивами, нас интересует первый элемент.
type OpenFDAFields struct {
	BrandName   []string `json:"brand_name"`
	GenericName []string `json:"generic_name"`
}

// LabelResult — одна запись листка-вкладыша из ответа openFDA.
// Все текстовые секции тоже приходят массивами строк.
type LabelResult struct {
	ActiveIngredient []string `json:"active_ingredient"`
	Purpose          []string `json:"purpose"`
	Warnings         []string `json:"warnings"`
	Indications      []string `json:"indications_and_usage"`
	Dosage           []string `json:"dosage_and_administration"`
	AdverseReactions []string `json:"adverse_reactions"`
	Storage          []string `json:"storage_and_handling"`

	OpenFDA OpenFDAFields `json:"openfda"`
}

// LabelSearchResponse — ответ эндпоинта /drug/label.json.
// Отсутствие списка results означает, что ничего не найдено.
type LabelSearchResponse struct {
	Results []LabelResult `json:"results"`
}
