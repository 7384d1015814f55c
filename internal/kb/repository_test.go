package kb

import (
	"context"
	"errors"
	"testing"

	"formulakb/models"
)

func brandRepository(rows []models.Brand, appendFn func(context.Context, models.Brand) error) *Repository[models.Brand] {
	return NewRepository(rows,
		func(b models.Brand) int64 { return b.ID },
		func(b models.Brand) string { return b.Name },
		appendFn)
}

func TestRepositoryIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rows     []models.Brand
		wantMax  int64
		wantNext int64
	}{
		{name: "empty", wantMax: 0, wantNext: 1},
		{name: "gaps", rows: []models.Brand{{ID: 4, Name: "A"}, {ID: 2, Name: "B"}}, wantMax: 4, wantNext: 5},
		{name: "missing ids", rows: []models.Brand{{Name: "A"}, {Name: "B"}}, wantMax: 0, wantNext: 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := brandRepository(tt.rows, nil)
			if got := r.MaxID(); got != tt.wantMax {
				t.Fatalf("MaxID() = %d, want %d", got, tt.wantMax)
			}
			if got := r.NextID(); got != tt.wantNext {
				t.Fatalf("NextID() = %d, want %d", got, tt.wantNext)
			}
		})
	}
}

func TestRepositoryAppendIsVisibleOnlyAfterWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := brandRepository([]models.Brand{{ID: 1, Name: "Acme"}}, nil)
	if err := r.Append(ctx, models.Brand{ID: r.NextID(), Name: "Nimbus"}); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	if got, ok := r.FindByKey("Nimbus"); !ok || got.ID != 2 {
		t.Fatalf("expected Nimbus with id 2, got %+v (found=%v)", got, ok)
	}
	if got := r.NextID(); got != 3 {
		t.Fatalf("NextID() = %d after append, want 3", got)
	}

	failing := brandRepository(nil, func(context.Context, models.Brand) error { return errors.New("quota") })
	if err := failing.Append(ctx, models.Brand{ID: 1, Name: "Lost"}); err == nil {
		t.Fatal("expected append error")
	}
	if _, ok := failing.FindByKey("Lost"); ok {
		t.Fatal("rejected row must not be mirrored")
	}
}
