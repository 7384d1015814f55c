package mock

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"formulakb/internal/kb"
	applog "formulakb/internal/log"
	"formulakb/models"
)

// New returns an in-memory sqlite database seeded with a small demo knowledge base.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:formulakb-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.Brand{},
		&models.Formulation{},
		&models.Ingredient{},
		&models.FormulationIngredient{},
	); err != nil {
		return nil, err
	}

	var existing int64
	if err := db.WithContext(ctx).Model(&models.Brand{}).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing == 0 {
		if err := seed(ctx, db); err != nil {
			return nil, err
		}
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

// SampleTables is the demo knowledge base used by the mock database and the
// in-memory store.
func SampleTables() kb.Tables {
	return kb.Tables{
		Brands: []models.Brand{
			{ID: 1, Name: "Marisol"},
			{ID: 2, Name: "Fernhill Naturals"},
		},
		Formulations: []models.Formulation{
			{ID: 1, Name: "Everyday Body Wash", BrandID: 1, Category: "Bodycare", ProductType: "Body Wash", Notes: "Classic SLES/CAPB base, salt thickened."},
			{ID: 2, Name: "Oat Milk Body Wash", BrandID: 2, Category: "Bodycare", ProductType: "Body Wash", Notes: "Sulfate-free, mild."},
			{ID: 3, Name: "Gel Facial Cleanser", BrandID: 2, Category: "Skincare", ProductType: "Facial Cleanser"},
		},
		Ingredients: []models.Ingredient{
			{ID: 1, INCIName: "Aqua", CommonName: "Water", Function: "Solvent"},
			{ID: 2, INCIName: "Sodium Laureth Sulfate", CommonName: "SLES", Function: "Primary surfactant"},
			{ID: 3, INCIName: "Cocamidopropyl Betaine", CommonName: "CAPB", Function: "Secondary surfactant"},
			{ID: 4, INCIName: "Coco-Glucoside", CommonName: "APG", Function: "Primary surfactant"},
			{ID: 5, INCIName: "Glycerin", CommonName: "Glycerin", Function: "Humectant"},
			{ID: 6, INCIName: "Sodium Chloride", CommonName: "Salt", Function: "Thickener"},
			{ID: 7, INCIName: "Citric Acid", CommonName: "Citric Acid", Function: "pH adjuster"},
		},
		FormulationIngredients: []models.FormulationIngredient{
			{ID: 1, FormulationID: 1, IngredientID: 1, Percentage: "q.s.", Phase: "A"},
			{ID: 2, FormulationID: 1, IngredientID: 2, Percentage: "10", Phase: "A"},
			{ID: 3, FormulationID: 1, IngredientID: 3, Percentage: "4", Phase: "A"},
			{ID: 4, FormulationID: 1, IngredientID: 6, Percentage: "1", Phase: "C", Notes: "adjust to viscosity"},
			{ID: 5, FormulationID: 2, IngredientID: 1, Percentage: "q.s.", Phase: "A"},
			{ID: 6, FormulationID: 2, IngredientID: 4, Percentage: "10", Phase: "A"},
			{ID: 7, FormulationID: 2, IngredientID: 3, Percentage: "6", Phase: "A"},
			{ID: 8, FormulationID: 2, IngredientID: 5, Percentage: "3", Phase: "B"},
			{ID: 9, FormulationID: 2, IngredientID: 7, Percentage: "0.2", Phase: "C", Notes: "to pH 5.5"},
			{ID: 10, FormulationID: 3, IngredientID: 1, Percentage: "q.s.", Phase: "A"},
			{ID: 11, FormulationID: 3, IngredientID: 4, Percentage: "6", Phase: "A"},
			{ID: 12, FormulationID: 3, IngredientID: 5, Percentage: "5", Phase: "A"},
		},
	}
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	tables := SampleTables()
	if err := db.WithContext(ctx).Create(&tables.Brands).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(&tables.Formulations).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(&tables.Ingredients).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(&tables.FormulationIngredients).Error; err != nil {
		return err
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
