package gormstore

import (
	"context"
	"errors"
	"time"

	"basaegochi/internal/app/ports"
	"basaegochi/internal/domain/pet"

	"gorm.io/gorm"
)

type petRow struct {
	OwnerID    string `gorm:"primaryKey;column:owner_id"`
	Species    string
	Name       string
	Level      int32
	Experience int32
	Health     int32
	Happiness  int32
	Hunger     int32
	LastFed    time.Time
	LastPlayed time.Time
	Wins       int32
	Losses     int32
	BornTime   time.Time
	Version    int64
	UpdatedAt  time.Time
}

func (petRow) TableName() string { return "pets" }

type PetRepo struct {
	db *gorm.DB
}

func NewPetRepo(db *gorm.DB) PetRepo {
	return PetRepo{db: db}
}

func (r PetRepo) Get(ctx context.Context, ownerID string) (pet.Record, error) {
	var row petRow
	if err := getDBFromCtx(ctx, r.db).Where("owner_id = ?", ownerID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pet.Record{}, ports.ErrNotFound
		}
		return pet.Record{}, err
	}
	return pet.Record{
		Species:    pet.Species(row.Species),
		Name:       row.Name,
		Level:      int(row.Level),
		Experience: int(row.Experience),
		Health:     int(row.Health),
		Happiness:  int(row.Happiness),
		Hunger:     int(row.Hunger),
		LastFed:    row.LastFed,
		LastPlayed: row.LastPlayed,
		Wins:       int(row.Wins),
		Losses:     int(row.Losses),
		BornTime:   row.BornTime,
		Version:    row.Version,
		UpdatedAt:  row.UpdatedAt,
	}, nil
}

func (r PetRepo) Save(ctx context.Context, ownerID string, rec pet.Record, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	row := toRow(ownerID, rec)

	if expectedVersion == 0 {
		if err := db.Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	res := db.Model(&petRow{}).
		Where("owner_id = ? AND version = ?", ownerID, expectedVersion).
		Updates(map[string]any{
			"species":     row.Species,
			"name":        row.Name,
			"level":       row.Level,
			"experience":  row.Experience,
			"health":      row.Health,
			"happiness":   row.Happiness,
			"hunger":      row.Hunger,
			"last_fed":    row.LastFed,
			"last_played": row.LastPlayed,
			"wins":        row.Wins,
			"losses":      row.Losses,
			"version":     row.Version,
			"updated_at":  row.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func toRow(ownerID string, rec pet.Record) petRow {
	return petRow{
		OwnerID:    ownerID,
		Species:    string(rec.Species),
		Name:       rec.Name,
		Level:      int32(rec.Level),
		Experience: int32(rec.Experience),
		Health:     int32(rec.Health),
		Happiness:  int32(rec.Happiness),
		Hunger:     int32(rec.Hunger),
		LastFed:    rec.LastFed,
		LastPlayed: rec.LastPlayed,
		Wins:       int32(rec.Wins),
		Losses:     int32(rec.Losses),
		BornTime:   rec.BornTime,
		Version:    rec.Version,
		UpdatedAt:  rec.UpdatedAt,
	}
}

var _ ports.PetStore = PetRepo{}
