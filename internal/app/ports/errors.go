package ports

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	// ErrWalletNotConnected blocks on-chain recording until the chain client
	// reports a connected wallet. Recoverable; the record action stays offered.
	ErrWalletNotConnected = errors.New("wallet not connected")
	// ErrTxFailed marks a rejected or failed contract write. The battle
	// outcome is untouched and the write may be retried.
	ErrTxFailed = errors.New("transaction failed")
	// ErrLeaderboardUnavailable maps any chain read failure on the
	// leaderboard path; the view degrades to empty instead of blocking play.
	ErrLeaderboardUnavailable = errors.New("leaderboard unavailable")
)
