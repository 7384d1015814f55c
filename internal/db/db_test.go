package db

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"formulakb/internal/config"
	"formulakb/internal/kb"
	"formulakb/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func TestInitializeRequiresURL(t *testing.T) {
	t.Parallel()

	db, err := Initialize(config.DatabaseConfig{URL: ""})
	if err == nil {
		t.Fatal("expected error when database URL is empty")
	}
	if db != nil {
		t.Fatal("expected returned db handle to be nil on error")
	}
}

func TestAutoMigrateRejectsNilDatabase(t *testing.T) {
	t.Parallel()

	if err := AutoMigrate(nil); err == nil {
		t.Fatal("expected error when database handle is nil")
	}
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	sqliteDB, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	if err := AutoMigrate(sqliteDB); err != nil {
		t.Fatalf("automigrate sqlite database: %v", err)
	}
	return sqliteDB
}

func TestAutoMigrateWithSQLite(t *testing.T) {
	t.Parallel()

	sqliteDB := openSQLite(t)
	for _, table := range models.TableOrder {
		if !sqliteDB.Migrator().HasTable(table) {
			t.Fatalf("expected table %s to exist", table)
		}
	}
}

func TestInitializeOpensSQLiteURL(t *testing.T) {
	t.Parallel()

	database, err := Initialize(config.DatabaseConfig{URL: "sqlite:file:initialize?mode=memory&cache=shared", MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}
	if name := database.Dialector.Name(); name != "sqlite" {
		t.Fatalf("expected sqlite dialector, got %s", name)
	}
}

func TestConfigurePropagatesInitializationError(t *testing.T) {
	t.Parallel()

	if _, err := Configure(config.DatabaseConfig{}); err == nil {
		t.Fatal("expected configuration error when initialize fails")
	}
}

func TestStoreRoundTripsThroughSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := NewStore(openSQLite(t), "kb.sqlite")
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	session, err := kb.Open(ctx, store)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	if _, err := session.AddFormulation(ctx, kb.FormulationInput{
		Name:         "Sea Salt Wash",
		Category:     "Bodycare",
		ProductType:  "Body Wash",
		NewBrand:     true,
		NewBrandName: "Tidal",
		Ingredients:  "Aqua | Water | Solvent | 80\nSodium Chloride | Salt | Thickener | 1",
	}); err != nil {
		t.Fatalf("AddFormulation returned error: %v", err)
	}

	reloaded, err := kb.Open(ctx, store)
	if err != nil {
		t.Fatalf("reload session: %v", err)
	}
	rows := reloaded.FilterFormulations(kb.Filter{Brand: "Tidal"})
	if len(rows) != 1 || rows[0].Name != "Sea Salt Wash" || rows[0].Brand != "Tidal" {
		t.Fatalf("unexpected formulations after reload: %+v", rows)
	}
	if got := reloaded.Ingredients.Len(); got != 2 {
		t.Fatalf("expected 2 ingredients, got %d", got)
	}

	diag, err := store.Diagnose(ctx)
	if err != nil {
		t.Fatalf("Diagnose returned error: %v", err)
	}
	if diag.Backend != "sql/sqlite" || len(diag.Tables) != len(models.TableOrder) {
		t.Fatalf("unexpected diagnostics %+v", diag)
	}
}

func TestStoreRejectsDuplicateIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := NewStore(openSQLite(t), "")
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	if err := store.AppendBrand(ctx, models.Brand{ID: 1, Name: "One"}); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if err := store.AppendBrand(ctx, models.Brand{ID: 1, Name: "Again"}); err == nil {
		t.Fatal("expected primary key violation")
	}
}

func TestNewStoreRejectsNil(t *testing.T) {
	t.Parallel()

	if _, err := NewStore(nil, ""); err == nil {
		t.Fatal("expected error for nil database")
	}
}
