package petcare

import (
	"context"
	"errors"
	"strings"
	"time"

	"basaegochi/internal/app/ports"
	"basaegochi/internal/domain/pet"
)

var (
	ErrInvalidRequest = errors.New("invalid pet request")
	ErrAlreadyAdopted = errors.New("pet already adopted")
)

// UseCase owns the care loop: adopt a pet, read its decayed state, apply
// feed/play/heal. Every read settles the lazy decay first so stored state
// never runs ahead of wall time.
type UseCase struct {
	TxManager     ports.TxManager
	Store         ports.PetStore
	DecayInterval time.Duration
	Now           func() time.Time
}

func (u UseCase) Adopt(ctx context.Context, req AdoptRequest) (Response, error) {
	req.OwnerID = strings.TrimSpace(req.OwnerID)
	req.Name = strings.TrimSpace(req.Name)
	if req.OwnerID == "" || req.Name == "" || !pet.ValidSpecies(req.Species) {
		return Response{}, ErrInvalidRequest
	}

	now := u.now()
	var out Response
	err := u.runInTx(ctx, func(txCtx context.Context) error {
		_, err := u.Store.Get(txCtx, req.OwnerID)
		if err == nil {
			return ErrAlreadyAdopted
		}
		if !errors.Is(err, ports.ErrNotFound) {
			return err
		}
		rec := pet.NewRecord(req.Species, req.Name, now)
		if err := u.Store.Save(txCtx, req.OwnerID, rec, 0); err != nil {
			return err
		}
		out = buildResponse(rec, false)
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

// State settles decay and persists the settled record when anything drained.
func (u UseCase) State(ctx context.Context, req StateRequest) (Response, error) {
	if strings.TrimSpace(req.OwnerID) == "" {
		return Response{}, ErrInvalidRequest
	}

	now := u.now()
	var out Response
	err := u.runInTx(ctx, func(txCtx context.Context) error {
		rec, err := u.Store.Get(txCtx, req.OwnerID)
		if err != nil {
			return err
		}
		settled := pet.Settle(rec, now, u.DecayInterval)
		if settled != rec {
			settled.Version = rec.Version + 1
			if err := u.Store.Save(txCtx, req.OwnerID, settled, rec.Version); err != nil {
				return err
			}
		}
		out = buildResponse(settled, false)
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

func (u UseCase) Care(ctx context.Context, req CareRequest) (Response, error) {
	if strings.TrimSpace(req.OwnerID) == "" || !pet.ValidCareAction(req.Action) {
		return Response{}, ErrInvalidRequest
	}

	now := u.now()
	var out Response
	err := u.runInTx(ctx, func(txCtx context.Context) error {
		rec, err := u.Store.Get(txCtx, req.OwnerID)
		if err != nil {
			return err
		}
		settled := pet.Settle(rec, now, u.DecayInterval)
		next := pet.ApplyCare(settled, req.Action, now)
		next.UpdatedAt = now
		next.Version = rec.Version + 1
		if err := u.Store.Save(txCtx, req.OwnerID, next, rec.Version); err != nil {
			return err
		}
		out = buildResponse(next, next.Level > settled.Level)
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func (u UseCase) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if u.TxManager == nil {
		return fn(ctx)
	}
	return u.TxManager.RunInTx(ctx, fn)
}

func buildResponse(rec pet.Record, leveledUp bool) Response {
	return Response{
		Pet:         rec,
		Stage:       rec.Stage(),
		BattleLevel: rec.BattleLevel(),
		LeveledUp:   leveledUp,
	}
}
