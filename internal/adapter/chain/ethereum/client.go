// Package ethereum implements the chain client against the deployed battle
// contract through go-ethereum's bound-contract layer.
package ethereum

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"basaegochi/internal/app/ports"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

type Config struct {
	RPCURL          string
	ContractAddress string
	// PrivateKeyHex signs result writes. Without it the client is read-only
	// and reports no connected wallet.
	PrivateKeyHex string
	// ChainID 0 means ask the node.
	ChainID int64
}

type Client struct {
	eth      *ethclient.Client
	contract *bind.BoundContract
	key      *ecdsa.PrivateKey
	from     common.Address
	chainID  *big.Int

	mu      sync.Mutex
	pending map[common.Hash]*types.Transaction
}

func Dial(ctx context.Context, cfg Config) (*Client, error) {
	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, fmt.Errorf("invalid contract address %q", cfg.ContractAddress)
	}

	eth, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.RPCURL, err)
	}

	parsed, err := abi.JSON(strings.NewReader(battleContractABI))
	if err != nil {
		return nil, fmt.Errorf("parse battle contract abi: %w", err)
	}

	c := &Client{
		eth:      eth,
		contract: bind.NewBoundContract(common.HexToAddress(cfg.ContractAddress), parsed, eth, eth, eth),
		pending:  make(map[common.Hash]*types.Transaction),
	}

	if cfg.ChainID != 0 {
		c.chainID = big.NewInt(cfg.ChainID)
	} else {
		c.chainID, err = eth.ChainID(ctx)
		if err != nil {
			return nil, fmt.Errorf("query chain id: %w", err)
		}
	}

	if cfg.PrivateKeyHex != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKeyHex, "0x"))
		if err != nil {
			return nil, fmt.Errorf("parse signer key: %w", err)
		}
		c.key = key
		c.from = crypto.PubkeyToAddress(key.PublicKey)
	}
	return c, nil
}

func (c *Client) Close() {
	c.eth.Close()
}

func (c *Client) Connected() bool {
	return c.key != nil
}

func (c *Client) Address() (string, bool) {
	if c.key == nil {
		return "", false
	}
	return c.from.Hex(), true
}

// playerRecordTuple matches the layout abigen would generate for the
// contract's PlayerRecord struct.
type playerRecordTuple struct {
	Player           common.Address
	Wins             *big.Int
	Losses           *big.Int
	TotalBattles     *big.Int
	LastBattleTime   *big.Int
	WinStreak        *big.Int
	HighestWinStreak *big.Int
}

func (c *Client) PlayerRecord(ctx context.Context, address string) (ports.PlayerRecord, error) {
	var out []interface{}
	opts := &bind.CallOpts{Context: ctx}
	if err := c.contract.Call(opts, &out, "getPlayerRecord", common.HexToAddress(address)); err != nil {
		return ports.PlayerRecord{}, fmt.Errorf("getPlayerRecord(%s): %w", address, err)
	}
	rec := *abi.ConvertType(out[0], new(playerRecordTuple)).(*playerRecordTuple)
	return ports.PlayerRecord{
		Wins:             rec.Wins.Uint64(),
		Losses:           rec.Losses.Uint64(),
		TotalBattles:     rec.TotalBattles.Uint64(),
		LastBattleTime:   rec.LastBattleTime.Uint64(),
		WinStreak:        rec.WinStreak.Uint64(),
		HighestWinStreak: rec.HighestWinStreak.Uint64(),
	}, nil
}

func (c *Client) Leaderboard(ctx context.Context, limit int) ([]string, []uint64, error) {
	var out []interface{}
	opts := &bind.CallOpts{Context: ctx}
	if err := c.contract.Call(opts, &out, "getLeaderboard", big.NewInt(int64(limit))); err != nil {
		return nil, nil, fmt.Errorf("getLeaderboard(%d): %w", limit, err)
	}
	rawAddrs := *abi.ConvertType(out[0], new([]common.Address)).(*[]common.Address)
	rawWins := *abi.ConvertType(out[1], new([]*big.Int)).(*[]*big.Int)

	addrs := make([]string, len(rawAddrs))
	for i, a := range rawAddrs {
		addrs[i] = a.Hex()
	}
	wins := make([]uint64, len(rawWins))
	for i, w := range rawWins {
		wins[i] = w.Uint64()
	}
	return addrs, wins, nil
}

func (c *Client) RecordBattleResult(ctx context.Context, opponent string, playerWon bool, playerScore, opponentScore uint64) (ports.TxHandle, error) {
	if c.key == nil {
		return "", ports.ErrWalletNotConnected
	}

	opts, err := bind.NewKeyedTransactorWithChainID(c.key, c.chainID)
	if err != nil {
		return "", fmt.Errorf("build transactor: %w", err)
	}
	opts.Context = ctx

	tx, err := c.contract.Transact(opts, "recordBattleResult",
		common.HexToAddress(opponent), playerWon,
		new(big.Int).SetUint64(playerScore), new(big.Int).SetUint64(opponentScore))
	if err != nil {
		return "", fmt.Errorf("recordBattleResult: %w", err)
	}

	c.mu.Lock()
	c.pending[tx.Hash()] = tx
	c.mu.Unlock()
	return ports.TxHandle(tx.Hash().Hex()), nil
}

func (c *Client) WaitForConfirmation(ctx context.Context, handle ports.TxHandle) error {
	hash := common.HexToHash(string(handle))

	c.mu.Lock()
	tx, ok := c.pending[hash]
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: unknown transaction %s", ports.ErrTxFailed, handle)
	}

	receipt, err := bind.WaitMined(ctx, c.eth, tx)
	if err != nil {
		return fmt.Errorf("wait mined %s: %w", handle, err)
	}

	c.mu.Lock()
	delete(c.pending, hash)
	c.mu.Unlock()

	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("%w: transaction %s reverted", ports.ErrTxFailed, handle)
	}
	return nil
}

var _ ports.ChainClient = (*Client)(nil)
