package domain

// DrugRecord представляет одну запись о препарате, полученную из внешнего API.
// Поля уже приведены к плоскому виду (первый элемент соответствующего массива openfda).
// В бд не сохраняется, пока пользователь не сделает из неё закладку.
type DrugRecord struct {
	BrandName        string `json:"brand_name"`
	GenericName      string `json:"generic_name"`
	ActiveIngredient string `json:"active_ingredient,omitempty"`
	Purpose          string `json:"purpose,omitempty"`
	Warnings         string `json:"warnings,omitempty"`
	Indications      string `json:"indications_and_usage,omitempty"`
	Dosage           string `json:"dosage_and_administration,omitempty"`
	AdverseReactions string `json:"adverse_reactions,omitempty"`
	Storage          string `json:"storage,omitempty"`
}

// SearchPage — одна страница результатов поиска после фильтрации и ранжирования.
type SearchPage struct {
	Results    []DrugRecord `json:"results"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
}
