package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"basaegochi/internal/app/ports"
	"basaegochi/internal/domain/pet"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "pets.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	born := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := pet.NewRecord(pet.SpeciesEthDragon, "Vitalik", born)

	if err := s.Save(ctx, "o", rec, 0); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.Get(ctx, "o")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Vitalik" || got.Species != pet.SpeciesEthDragon {
		t.Fatalf("got %+v", got)
	}
	if got.Version != 1 {
		t.Fatalf("version = %d, want 1", got.Version)
	}
	if !got.BornTime.Equal(born) {
		t.Fatalf("born time = %v, want %v", got.BornTime, born)
	}
}

func TestStore_GetMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Get(context.Background(), "nobody"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestStore_OptimisticUpdate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	rec := pet.NewRecord(pet.SpeciesCryptoCat, "Satoshi", time.Now().UTC())

	if err := s.Save(ctx, "o", rec, 0); err != nil {
		t.Fatalf("create: %v", err)
	}

	rec.Hunger = 40
	rec.Version = 2
	if err := s.Save(ctx, "o", rec, 1); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := s.Get(ctx, "o")
	if got.Hunger != 40 || got.Version != 2 {
		t.Fatalf("after update: %+v", got)
	}

	// Replaying the same expected version loses the race.
	if err := s.Save(ctx, "o", rec, 1); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("stale update = %v, want ErrConflict", err)
	}
}

func TestStore_DuplicateCreateConflicts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	rec := pet.NewRecord(pet.SpeciesBaseBull, "Bully", time.Now().UTC())

	if err := s.Save(ctx, "o", rec, 0); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Save(ctx, "o", rec, 0); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("duplicate create = %v, want ErrConflict", err)
	}
}
