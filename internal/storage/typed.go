package storage

import (
	"context"

	"github.com/mmynk/expenses/internal/models"
)

// WriteAs is EntityStore.Write for callers holding a concrete variant.
func WriteAs[T models.Entity](ctx context.Context, s EntityStore, delta T) (T, error) {
	out, err := s.Write(ctx, delta)
	if err != nil {
		var zero T
		return zero, err
	}
	return out.(T), nil
}

// ReadAs is EntityStore.Read for callers holding a concrete variant.
func ReadAs[T models.Entity](ctx context.Context, s EntityStore, ref T) (T, error) {
	out, err := s.Read(ctx, ref)
	if err != nil {
		var zero T
		return zero, err
	}
	return out.(T), nil
}
