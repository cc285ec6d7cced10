package ports

import (
	"context"

	"basaegochi/internal/domain/pet"
)

// PetStore persists the single pet record per owner. Saves are guarded by
// optimistic versioning: expectedVersion 0 creates, anything else must match
// the stored version or the save fails with ErrConflict.
type PetStore interface {
	Get(ctx context.Context, ownerID string) (pet.Record, error)
	Save(ctx context.Context, ownerID string, rec pet.Record, expectedVersion int64) error
}
