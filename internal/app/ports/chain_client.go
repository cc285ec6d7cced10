package ports

import "context"

// ZeroAddress is the sentinel the battle contract pads unranked leaderboard
// slots with. Consumers must filter it out.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// TxHandle identifies a submitted transaction (its hash) so confirmation can
// be awaited independently of the write call.
type TxHandle string

// PlayerRecord mirrors the contract's per-player battle tally.
type PlayerRecord struct {
	Wins             uint64 `json:"wins"`
	Losses           uint64 `json:"losses"`
	TotalBattles     uint64 `json:"total_battles"`
	LastBattleTime   uint64 `json:"last_battle_time"`
	WinStreak        uint64 `json:"win_streak"`
	HighestWinStreak uint64 `json:"highest_win_streak"`
}

// ChainClient abstracts the battle contract and the signing wallet. All reads
// are best-effort and all writes are retry-safe; nothing here enforces
// timeouts beyond the caller's context.
type ChainClient interface {
	Connected() bool
	// Address returns the signing wallet address, if one is configured.
	Address() (string, bool)
	PlayerRecord(ctx context.Context, address string) (PlayerRecord, error)
	// Leaderboard returns the contract's parallel arrays: addresses and win
	// counts, padded with ZeroAddress up to limit.
	Leaderboard(ctx context.Context, limit int) ([]string, []uint64, error)
	RecordBattleResult(ctx context.Context, opponent string, playerWon bool, playerScore, opponentScore uint64) (TxHandle, error)
	WaitForConfirmation(ctx context.Context, tx TxHandle) error
}
