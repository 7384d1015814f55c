package models

import "strings"

// Ingredient is a raw material identified by its INCI name.
type Ingredient struct {
	ID         int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	INCIName   string `gorm:"column:inci_name;not null" json:"inci_name"`
	CommonName string `json:"common_name"`
	Function   string `gorm:"column:function" json:"function"`
	CAS        string `gorm:"column:cas" json:"cas"`
}

func (Ingredient) TableName() string { return TableIngredients }

// INCIKey is the case-insensitive identity used to deduplicate ingredients.
func INCIKey(name string) string {
	return strings.ToLower(name)
}
