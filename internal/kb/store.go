// Package kb is the formulation knowledge base: a session over the four
// tables with the browse queries and the submission workflows built on it.
package kb

import (
	"context"

	"formulakb/models"
)

// Tables is a full read of the backing store.
type Tables struct {
	Brands                 []models.Brand
	Formulations           []models.Formulation
	Ingredients            []models.Ingredient
	FormulationIngredients []models.FormulationIngredient
}

// Store is the tabular backend. Appends never update or delete existing rows.
type Store interface {
	Load(ctx context.Context) (Tables, error)
	AppendBrand(ctx context.Context, brand models.Brand) error
	AppendFormulation(ctx context.Context, formulation models.Formulation) error
	AppendIngredient(ctx context.Context, ingredient models.Ingredient) error
	AppendFormulationIngredient(ctx context.Context, link models.FormulationIngredient) error
}

// Diagnostics describes the connection to a store for troubleshooting.
type Diagnostics struct {
	Backend        string   `json:"backend"`
	Identifier     string   `json:"identifier"`
	ServiceAccount string   `json:"service_account,omitempty"`
	Tables         []string `json:"tables"`
}

// Diagnoser is implemented by stores that can describe their connection.
type Diagnoser interface {
	Diagnose(ctx context.Context) (Diagnostics, error)
}

// ShortIdentifier trims a store identifier for display.
func ShortIdentifier(id string) string {
	const keep = 6
	runes := []rune(id)
	if len(runes) <= keep {
		return id
	}
	return string(runes[:keep]) + "…"
}
