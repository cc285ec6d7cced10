package arena

import "basaegochi/internal/domain/pet"

// Opponent is the randomly matched combatant. Species, stage and address are
// cosmetic; only Level carries gameplay weight.
type Opponent struct {
	Species pet.Species `json:"species"`
	Stage   pet.Stage   `json:"stage"`
	Level   int         `json:"level"`
	Address string      `json:"address"`
}

// Outcome is the authoritative result of one battle resolution. It is created
// once by Resolve and never mutated: exactly one side's health is zero and
// the winner's health falls in the band dictated by the level difference.
type Outcome struct {
	PlayerWins     bool `json:"player_wins"`
	PlayerHealth   int  `json:"player_health"`
	OpponentHealth int  `json:"opponent_health"`
	WinChance      int  `json:"win_chance"`
}

// LogStep is one narrated beat of the battle playback. The first six steps of
// a script carry fixed non-negative flavor damage; the last step is corrective
// so that the running totals land exactly on the outcome's health values. The
// corrective damage may be negative when the flavor steps overshot, which
// plays back as a late recovery.
type LogStep struct {
	Message        string `json:"message"`
	PlayerDamage   int    `json:"player_damage"`
	OpponentDamage int    `json:"opponent_damage"`
}
