package petcare

import "basaegochi/internal/domain/pet"

type AdoptRequest struct {
	OwnerID string
	Species pet.Species
	Name    string
}

type CareRequest struct {
	OwnerID string
	Action  pet.CareAction
}

type StateRequest struct {
	OwnerID string
}

type Response struct {
	Pet         pet.Record `json:"pet"`
	Stage       pet.Stage  `json:"stage"`
	BattleLevel int        `json:"battle_level"`
	LeveledUp   bool       `json:"leveled_up,omitempty"`
}
