package leaderboard

import (
	"context"
	"fmt"
	"strings"

	"basaegochi/internal/app/ports"
)

const DefaultLimit = 100

type Request struct {
	// CallerAddress, when set, marks the caller's entry and rank.
	CallerAddress string
	Limit         int
}

type Entry struct {
	Rank    int    `json:"rank"`
	Address string `json:"address"`
	Wins    uint64 `json:"wins"`
	IsSelf  bool   `json:"is_self,omitempty"`
}

type Response struct {
	Entries    []Entry `json:"entries"`
	CallerRank int     `json:"caller_rank,omitempty"`
}

// UseCase reads the on-chain leaderboard. The contract returns fixed-size
// parallel arrays padded with the zero address; those slots are dropped here.
// Any chain failure degrades to ErrLeaderboardUnavailable so the view can
// render empty without blocking battles.
type UseCase struct {
	Chain ports.ChainClient
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	limit := req.Limit
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}

	addrs, wins, err := u.Chain.Leaderboard(ctx, limit)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ports.ErrLeaderboardUnavailable, err)
	}
	if len(addrs) != len(wins) {
		return Response{}, fmt.Errorf("%w: mismatched arrays (%d addresses, %d win counts)",
			ports.ErrLeaderboardUnavailable, len(addrs), len(wins))
	}

	caller := strings.ToLower(strings.TrimSpace(req.CallerAddress))
	resp := Response{Entries: make([]Entry, 0, len(addrs))}
	for i, addr := range addrs {
		if strings.EqualFold(addr, ports.ZeroAddress) {
			continue
		}
		entry := Entry{
			Rank:    len(resp.Entries) + 1,
			Address: addr,
			Wins:    wins[i],
			IsSelf:  caller != "" && strings.EqualFold(addr, caller),
		}
		if entry.IsSelf {
			resp.CallerRank = entry.Rank
		}
		resp.Entries = append(resp.Entries, entry)
	}
	return resp, nil
}
