// Package memory simulates the battle contract for offline play and tests:
// the same records, streaks and padded leaderboard shape, no chain.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"basaegochi/internal/app/ports"

	"github.com/google/uuid"
)

type Client struct {
	mu        sync.Mutex
	address   string
	connected bool
	records   map[string]ports.PlayerRecord
	now       func() time.Time
}

func NewClient(address string) *Client {
	return &Client{
		address:   address,
		connected: address != "",
		records:   make(map[string]ports.PlayerRecord),
		now:       time.Now,
	}
}

// SetConnected toggles the simulated wallet connection.
func (c *Client) SetConnected(connected bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = connected
}

func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *Client) Address() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.address == "" {
		return "", false
	}
	return c.address, true
}

func (c *Client) PlayerRecord(_ context.Context, address string) (ports.PlayerRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.records[address], nil
}

func (c *Client) Leaderboard(_ context.Context, limit int) ([]string, []uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	type ranked struct {
		addr string
		wins uint64
	}
	board := make([]ranked, 0, len(c.records))
	for addr, rec := range c.records {
		if rec.Wins == 0 {
			continue
		}
		board = append(board, ranked{addr: addr, wins: rec.Wins})
	}
	sort.Slice(board, func(i, j int) bool {
		if board[i].wins != board[j].wins {
			return board[i].wins > board[j].wins
		}
		return board[i].addr < board[j].addr
	})

	// The real contract returns fixed-size arrays padded with the zero
	// address; mirror that so consumers exercise the same filtering.
	addrs := make([]string, limit)
	wins := make([]uint64, limit)
	for i := range addrs {
		if i < len(board) {
			addrs[i] = board[i].addr
			wins[i] = board[i].wins
			continue
		}
		addrs[i] = ports.ZeroAddress
	}
	return addrs, wins, nil
}

func (c *Client) RecordBattleResult(_ context.Context, opponent string, playerWon bool, playerScore, opponentScore uint64) (ports.TxHandle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected || c.address == "" {
		return "", ports.ErrWalletNotConnected
	}

	rec := c.records[c.address]
	rec.TotalBattles++
	rec.LastBattleTime = uint64(c.now().Unix())
	if playerWon {
		rec.Wins++
		rec.WinStreak++
		if rec.WinStreak > rec.HighestWinStreak {
			rec.HighestWinStreak = rec.WinStreak
		}
	} else {
		rec.Losses++
		rec.WinStreak = 0
	}
	c.records[c.address] = rec

	opp := c.records[opponent]
	opp.TotalBattles++
	if playerWon {
		opp.Losses++
	} else {
		opp.Wins++
	}
	c.records[opponent] = opp

	return ports.TxHandle(fmt.Sprintf("0xsim%s", uuid.NewString())), nil
}

func (c *Client) WaitForConfirmation(_ context.Context, _ ports.TxHandle) error {
	return nil
}

var _ ports.ChainClient = (*Client)(nil)
