package session

import "basaegochi/internal/domain/arena"

// Session is the single mutable record of the battle currently owned by a
// controller. It is created at battle start and discarded on return to lobby.
type Session struct {
	PlayerLevel    int
	Opponent       *arena.Opponent
	Outcome        *arena.Outcome
	Steps          []arena.LogStep
	NextStep       int
	PlayerHealth   int
	OpponentHealth int
	Log            []string
	Recorded       bool
	LastTx         string
}

func emptySession() Session {
	return Session{
		PlayerHealth:   arena.StartingHealth,
		OpponentHealth: arena.StartingHealth,
	}
}

// Snapshot is the immutable view handed to the HTTP layer.
type Snapshot struct {
	SessionID      string          `json:"session_id"`
	State          string          `json:"state"`
	PlayerLevel    int             `json:"player_level"`
	Opponent       *arena.Opponent `json:"opponent,omitempty"`
	Outcome        *arena.Outcome  `json:"outcome,omitempty"`
	PlayerHealth   int             `json:"player_health"`
	OpponentHealth int             `json:"opponent_health"`
	Log            []string        `json:"log"`
	Recorded       bool            `json:"recorded"`
	LastTx         string          `json:"last_tx,omitempty"`
}
