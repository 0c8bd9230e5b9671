package domain

import (
	"time"
)

// Bookmark представляет сохранённый пользователем препарат,
// соответствует таблице bookmarks в бд.
// Закладка принадлежит ровно одному пользователю и удаляется каскадно вместе с ним.
// Пара (UserID, BrandName) уникальна.
type Bookmark struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	BrandName   string `json:"brand_name"`
	GenericName string `json:"generic_name"`

	// Необязательные описательные поля из листка-вкладыша, NULL если не заполнены
	ActiveIngredient *string `json:"active_ingredient,omitempty"`
	Purpose          *string `json:"purpose,omitempty"`
	Warnings         *string `json:"warnings,omitempty"`
	Indications      *string `json:"indications_and_usage,omitempty" gorm:"column:indications_and_usage"`
	Dosage           *string `json:"dosage_and_administration,omitempty" gorm:"column:dosage_and_administration"`
	AdverseReactions *string `json:"adverse_reactions,omitempty"`
	Storage          *string `json:"storage,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
