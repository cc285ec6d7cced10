package profile

import (
	"context"
	"math"

	"basaegochi/internal/app/ports"
)

type Request struct{}

type Response struct {
	Connected bool               `json:"connected"`
	Address   string             `json:"address,omitempty"`
	Record    ports.PlayerRecord `json:"record"`
	WinRate   int                `json:"win_rate"`
}

// UseCase reads the caller's on-chain battle record. A missing wallet is not
// an error: the profile renders zeroed and disconnected.
type UseCase struct {
	Chain ports.ChainClient
}

func (u UseCase) Execute(ctx context.Context, _ Request) (Response, error) {
	addr, ok := u.Chain.Address()
	if !ok || !u.Chain.Connected() {
		return Response{}, nil
	}

	rec, err := u.Chain.PlayerRecord(ctx, addr)
	if err != nil {
		// Best-effort read: degrade to a zeroed record for this address.
		return Response{Connected: true, Address: addr}, nil
	}

	return Response{
		Connected: true,
		Address:   addr,
		Record:    rec,
		WinRate:   winRate(rec.Wins, rec.Losses),
	}, nil
}

func winRate(wins, losses uint64) int {
	total := wins + losses
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(wins) / float64(total) * 100))
}
