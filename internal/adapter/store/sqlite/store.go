// Package sqlite is the default local pet store: one row per owner holding
// the record as a JSON blob, versioned for optimistic saves.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"basaegochi/internal/app/ports"
	"basaegochi/internal/domain/pet"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS pets (
		owner_id TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		version INTEGER NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate pets table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(ctx context.Context, ownerID string) (pet.Record, error) {
	var blob string
	var version int64
	row := s.db.QueryRowContext(ctx, `SELECT data, version FROM pets WHERE owner_id = ?`, ownerID)
	if err := row.Scan(&blob, &version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pet.Record{}, ports.ErrNotFound
		}
		return pet.Record{}, fmt.Errorf("load pet %q: %w", ownerID, err)
	}

	var rec pet.Record
	if err := json.Unmarshal([]byte(blob), &rec); err != nil {
		return pet.Record{}, fmt.Errorf("decode pet %q: %w", ownerID, err)
	}
	rec.Version = version
	return rec, nil
}

func (s *Store) Save(ctx context.Context, ownerID string, rec pet.Record, expectedVersion int64) error {
	blob, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode pet %q: %w", ownerID, err)
	}

	if expectedVersion == 0 {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO pets (owner_id, data, version) VALUES (?, ?, ?)`,
			ownerID, string(blob), rec.Version)
		if err != nil {
			// A concurrent create shows up as a primary-key violation.
			return fmt.Errorf("%w: create pet %q: %v", ports.ErrConflict, ownerID, err)
		}
		return nil
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE pets SET data = ?, version = ? WHERE owner_id = ? AND version = ?`,
		string(blob), rec.Version, ownerID, expectedVersion)
	if err != nil {
		return fmt.Errorf("save pet %q: %w", ownerID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save pet %q: %w", ownerID, err)
	}
	if affected == 0 {
		return ports.ErrConflict
	}
	return nil
}

var _ ports.PetStore = (*Store)(nil)
