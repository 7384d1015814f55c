package kb

import (
	"context"

	"formulakb/models"
)

// Repository mirrors one table in memory and writes through to the store.
// An append is visible to List and FindByKey as soon as the store accepts it,
// so later steps of the same submission read their own writes.
type Repository[T any] struct {
	rows     []T
	id       func(T) int64
	key      func(T) string
	index    map[string]int
	appendFn func(context.Context, T) error
}

// NewRepository builds a repository over rows. key may be nil when the table
// has no lookup key. On duplicate keys the first row wins.
func NewRepository[T any](rows []T, id func(T) int64, key func(T) string, appendFn func(context.Context, T) error) *Repository[T] {
	r := &Repository[T]{
		rows:     rows,
		id:       id,
		key:      key,
		appendFn: appendFn,
	}
	if key != nil {
		r.index = make(map[string]int, len(rows))
		for i, row := range rows {
			r.indexRow(i, row)
		}
	}
	return r
}

func (r *Repository[T]) indexRow(i int, row T) {
	if r.key == nil {
		return
	}
	k := r.key(row)
	if _, exists := r.index[k]; !exists {
		r.index[k] = i
	}
}

// List returns the rows in store order. Callers must not modify the slice.
func (r *Repository[T]) List() []T {
	return r.rows
}

// Len reports the number of rows.
func (r *Repository[T]) Len() int {
	return len(r.rows)
}

// FindByKey returns the first row whose key matches.
func (r *Repository[T]) FindByKey(key string) (T, bool) {
	var zero T
	if r.index == nil {
		return zero, false
	}
	i, ok := r.index[key]
	if !ok {
		return zero, false
	}
	return r.rows[i], true
}

// MaxID is the largest id present, zero for an empty table.
func (r *Repository[T]) MaxID() int64 {
	return r.NextID() - 1
}

// NextID is MaxID plus one.
func (r *Repository[T]) NextID() int64 {
	ids := make([]int64, len(r.rows))
	for i, row := range r.rows {
		ids[i] = r.id(row)
	}
	return models.NextID(ids...)
}

// Append writes row to the store and, on success, to the mirror.
func (r *Repository[T]) Append(ctx context.Context, row T) error {
	if r.appendFn != nil {
		if err := r.appendFn(ctx, row); err != nil {
			return err
		}
	}
	r.rows = append(r.rows, row)
	r.indexRow(len(r.rows)-1, row)
	return nil
}
