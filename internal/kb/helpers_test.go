package kb

import (
	"context"
	"errors"

	"formulakb/models"
)

var errStoreDown = errors.New("store unavailable")

// fakeStore records appends and can fail on a chosen table.
type fakeStore struct {
	tables Tables
	failOn string
}

func (f *fakeStore) Load(context.Context) (Tables, error) {
	return f.tables, nil
}

func (f *fakeStore) AppendBrand(_ context.Context, brand models.Brand) error {
	if f.failOn == models.TableBrands {
		return errStoreDown
	}
	f.tables.Brands = append(f.tables.Brands, brand)
	return nil
}

func (f *fakeStore) AppendFormulation(_ context.Context, formulation models.Formulation) error {
	if f.failOn == models.TableFormulations {
		return errStoreDown
	}
	f.tables.Formulations = append(f.tables.Formulations, formulation)
	return nil
}

func (f *fakeStore) AppendIngredient(_ context.Context, ingredient models.Ingredient) error {
	if f.failOn == models.TableIngredients {
		return errStoreDown
	}
	f.tables.Ingredients = append(f.tables.Ingredients, ingredient)
	return nil
}

func (f *fakeStore) AppendFormulationIngredient(_ context.Context, link models.FormulationIngredient) error {
	if f.failOn == models.TableFormulationIngredients {
		return errStoreDown
	}
	f.tables.FormulationIngredients = append(f.tables.FormulationIngredients, link)
	return nil
}

func sampleTables() Tables {
	return Tables{
		Brands: []models.Brand{
			{ID: 1, Name: "Acme"},
			{ID: 2, Name: "Verdant"},
		},
		Formulations: []models.Formulation{
			{ID: 1, Name: "Daily Wash", BrandID: 1, Category: "Bodycare", ProductType: "Body Wash"},
			{ID: 2, Name: "Gentle Wash", BrandID: 2, Category: "Bodycare", ProductType: "Body Wash"},
			{ID: 3, Name: "Foam Cleanser", BrandID: 1, Category: "Skincare", ProductType: "Facial Cleanser"},
		},
		Ingredients: []models.Ingredient{
			{ID: 1, INCIName: "Aqua", CommonName: "Water", Function: "Solvent"},
			{ID: 2, INCIName: "Glycerin", CommonName: "Glycerin", Function: "Humectant"},
			{ID: 3, INCIName: "Coco-Glucoside", CommonName: "Coco Glucoside", Function: "Surfactant"},
		},
		FormulationIngredients: []models.FormulationIngredient{
			{ID: 1, FormulationID: 1, IngredientID: 1, Percentage: "70"},
			{ID: 2, FormulationID: 1, IngredientID: 1, Percentage: "5"},
			{ID: 3, FormulationID: 1, IngredientID: 2, Percentage: "3"},
			{ID: 4, FormulationID: 2, IngredientID: 1, Percentage: "65"},
			{ID: 5, FormulationID: 3, IngredientID: 3, Percentage: "10"},
		},
	}
}

func newTestSession(tables Tables) (*Session, *fakeStore) {
	store := &fakeStore{tables: tables}
	return NewSession(store, tables), store
}

// Formulation4 has a brand id that is not in the Brand table.
func Formulation4() models.Formulation {
	return models.Formulation{ID: 4, Name: "Orphan", BrandID: 9, Category: "Bodycare", ProductType: "Body Wash"}
}

func linkRow(id, formulationID, ingredientID int64, percentage string) models.FormulationIngredient {
	return models.FormulationIngredient{ID: id, FormulationID: formulationID, IngredientID: ingredientID, Percentage: percentage}
}
