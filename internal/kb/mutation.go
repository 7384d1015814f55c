package kb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	applog "formulakb/internal/log"
	"formulakb/models"
)

var (
	// ErrBrandNameRequired is returned when a new brand is requested without a name.
	ErrBrandNameRequired = errors.New("please enter a new brand name")
	// ErrUnknownBrand is returned when the selected brand is not in the Brand table.
	ErrUnknownBrand = errors.New("selected brand does not exist")
	// ErrNoTokens is returned when a bulk import contains no INCI names.
	ErrNoTokens = errors.New("no INCI names detected")
)

// FormulationInput is a single formulation submission.
type FormulationInput struct {
	Name        string
	Category    string
	ProductType string
	Notes       string

	// Brand names an existing brand. It is ignored when NewBrand is set.
	Brand        string
	NewBrand     bool
	NewBrandName string

	// Ingredients holds one "INCI | Common | Function | % | Phase | Notes" line per ingredient.
	Ingredients string
}

// AddFormulationResult reports what a submission wrote. On error it holds
// the rows written before the failure.
type AddFormulationResult struct {
	Brand              models.Brand
	BrandCreated       bool
	Formulation        models.Formulation
	CreatedIngredients []models.Ingredient
	Links              []models.FormulationIngredient
	SkippedLines       int
}

// AddFormulation resolves or creates the brand, appends the formulation and
// links every parsed ingredient line, creating ingredients that are not yet
// known by case-insensitive INCI name. Appends are not rolled back when a
// later step fails.
func (s *Session) AddFormulation(ctx context.Context, in FormulationInput) (AddFormulationResult, error) {
	var result AddFormulationResult

	brand, create, err := s.resolveBrand(in)
	if err != nil {
		return result, err
	}
	if create {
		if err := s.Brands.Append(ctx, brand); err != nil {
			return result, fmt.Errorf("append brand %q: %w", brand.Name, err)
		}
		applog.Debug(ctx, "brand created", "id", brand.ID, "name", brand.Name)
		result.BrandCreated = true
	}
	result.Brand = brand

	formulation := models.Formulation{
		ID:          s.Formulations.NextID(),
		Name:        strings.TrimSpace(in.Name),
		BrandID:     brand.ID,
		Category:    strings.TrimSpace(in.Category),
		ProductType: strings.TrimSpace(in.ProductType),
		Notes:       strings.TrimSpace(in.Notes),
	}
	if err := s.Formulations.Append(ctx, formulation); err != nil {
		return result, fmt.Errorf("append formulation %q: %w", formulation.Name, err)
	}
	result.Formulation = formulation

	lines, skipped := ParseIngredientLines(in.Ingredients)
	result.SkippedLines = skipped
	if skipped > 0 {
		applog.Debug(ctx, "ingredient lines skipped", "formulationID", formulation.ID, "skipped", skipped)
	}

	nextLinkID := s.FormulationIngredients.NextID()
	for i, line := range lines {
		ingredientID, created, err := s.resolveIngredient(ctx, line.INCI, line.CommonName, line.Function)
		if err != nil {
			return result, fmt.Errorf("ingredient line %d (%s): %w", i+1, line.INCI, err)
		}
		if created != nil {
			result.CreatedIngredients = append(result.CreatedIngredients, *created)
		}

		link := models.FormulationIngredient{
			ID:            nextLinkID,
			FormulationID: formulation.ID,
			IngredientID:  ingredientID,
			Percentage:    line.Percentage,
			Phase:         line.Phase,
			Notes:         line.Notes,
		}
		if err := s.FormulationIngredients.Append(ctx, link); err != nil {
			return result, fmt.Errorf("ingredient line %d (%s): append link: %w", i+1, line.INCI, err)
		}
		nextLinkID++
		result.Links = append(result.Links, link)
	}

	applog.Info(ctx, "formulation saved",
		"id", formulation.ID,
		"name", formulation.Name,
		"brandID", brand.ID,
		"links", len(result.Links),
		"newIngredients", len(result.CreatedIngredients),
	)
	return result, nil
}

func (s *Session) resolveBrand(in FormulationInput) (models.Brand, bool, error) {
	if in.NewBrand {
		name := strings.TrimSpace(in.NewBrandName)
		if name == "" {
			return models.Brand{}, false, ErrBrandNameRequired
		}
		return models.Brand{ID: s.Brands.NextID(), Name: name}, true, nil
	}

	brand, ok := s.Brands.FindByKey(in.Brand)
	if !ok {
		return models.Brand{}, false, fmt.Errorf("%w: %q", ErrUnknownBrand, in.Brand)
	}
	return brand, false, nil
}

// resolveIngredient returns the id of the ingredient named inci, appending a
// new ingredient when none matches. The created row is returned when one was
// written.
func (s *Session) resolveIngredient(ctx context.Context, inci, common, function string) (int64, *models.Ingredient, error) {
	if existing, ok := s.Ingredients.FindByKey(models.INCIKey(inci)); ok {
		if existing.ID != 0 {
			return existing.ID, nil, nil
		}
		// The matching row has no usable id; fall back to the newest one.
		return s.Ingredients.MaxID(), nil, nil
	}

	ingredient := models.Ingredient{
		ID:         s.Ingredients.NextID(),
		INCIName:   inci,
		CommonName: common,
		Function:   function,
		CAS:        "",
	}
	if err := s.Ingredients.Append(ctx, ingredient); err != nil {
		return 0, nil, fmt.Errorf("append ingredient: %w", err)
	}
	return ingredient.ID, &ingredient, nil
}

// BulkInput is a pasted INCI list with the defaults applied to new rows.
type BulkInput struct {
	Raw               string
	Dedup             bool
	DefaultCommonName string
	DefaultFunction   string
}

// BulkResult reports the tokens considered and the ingredients written.
type BulkResult struct {
	Tokens []string
	Added  []models.Ingredient
}

// NothingAdded reports the informational case where every name already existed.
func (r BulkResult) NothingAdded() bool {
	return len(r.Tokens) > 0 && len(r.Added) == 0
}

// BulkAddIngredients appends every INCI name from the pasted list that is not
// yet in the Ingredient table, comparing names case-insensitively. Names added
// earlier in the same batch count as existing. ErrNoTokens is returned when
// the list holds no names.
func (s *Session) BulkAddIngredients(ctx context.Context, in BulkInput) (BulkResult, error) {
	tokens := TokenizeINCI(in.Raw)
	if len(tokens) == 0 {
		return BulkResult{}, ErrNoTokens
	}
	if in.Dedup {
		tokens = DedupTokens(tokens)
	}
	result := BulkResult{Tokens: tokens}

	existing := make(map[string]struct{}, s.Ingredients.Len())
	for _, ingredient := range s.Ingredients.List() {
		if ingredient.INCIName == "" {
			continue
		}
		existing[models.INCIKey(ingredient.INCIName)] = struct{}{}
	}

	nextID := s.Ingredients.NextID()
	for _, inci := range tokens {
		key := models.INCIKey(inci)
		if _, ok := existing[key]; ok {
			continue
		}
		ingredient := models.Ingredient{
			ID:         nextID,
			INCIName:   inci,
			CommonName: in.DefaultCommonName,
			Function:   in.DefaultFunction,
			CAS:        "",
		}
		if err := s.Ingredients.Append(ctx, ingredient); err != nil {
			return result, fmt.Errorf("append ingredient %q: %w", inci, err)
		}
		existing[key] = struct{}{}
		nextID++
		result.Added = append(result.Added, ingredient)
	}

	applog.Info(ctx, "bulk ingredient import finished", "tokens", len(tokens), "added", len(result.Added))
	return result, nil
}
