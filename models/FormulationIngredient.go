package models

import (
	"strconv"
	"strings"
)

// FormulationIngredient links an ingredient into a formulation.
type FormulationIngredient struct {
	ID            int64 `gorm:"primaryKey;autoIncrement:false" json:"id"`
	FormulationID int64 `gorm:"index;not null" json:"formulation_id"` // Parent Formulation
	IngredientID  int64 `gorm:"index;not null" json:"ingredient_id"`

	// Percentage is stored as entered; sheets commonly hold "q.s." or ranges here.
	Percentage string `json:"percentage"`
	Phase      string `json:"phase"`
	Notes      string `gorm:"type:text" json:"notes"`
}

func (FormulationIngredient) TableName() string { return TableFormulationIngredients }

// PercentageValue returns the numeric percentage when the stored text parses as a number.
func (fi FormulationIngredient) PercentageValue() (float64, bool) {
	value := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(fi.Percentage), "%"))
	if value == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
