package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"basaegochi/internal/app/ports"
	"basaegochi/internal/domain/arena"

	"github.com/enetx/fsm"
)

const (
	StateLobby     fsm.State = "lobby"
	StateSearching fsm.State = "searching"
	StateInBattle  fsm.State = "battle"
	StateResult    fsm.State = "result"
)

const (
	eventFindMatch   fsm.Event = "find_match"
	eventMatchFound  fsm.Event = "match_found"
	eventBattleEnded fsm.Event = "battle_ended"
	eventReturn      fsm.Event = "return_to_lobby"
)

var (
	ErrBattleInProgress = errors.New("battle already in progress")
	ErrNoBattleResult   = errors.New("no battle result to act on")
	ErrSessionClosed    = errors.New("session closed")
)

// Config carries the playback timing. One step delay elapses between log
// steps; matchmaking holds for two of them by default.
type Config struct {
	StepDelay  time.Duration
	MatchDelay time.Duration
}

func (c Config) withDefaults() Config {
	if c.StepDelay <= 0 {
		c.StepDelay = time.Second
	}
	if c.MatchDelay <= 0 {
		c.MatchDelay = 2 * c.StepDelay
	}
	return c
}

// Controller sequences one battle from matchmaking through result and
// optional on-chain recording. All mutation funnels through the state
// machine; timer callbacks re-check the current state so a stale fire against
// an abandoned session is a no-op.
type Controller struct {
	mu      sync.Mutex
	id      string
	machine *fsm.FSM
	cfg     Config

	rng     arena.Source
	sched   ports.Scheduler
	chain   ports.ChainClient
	metrics ports.BattleMetrics

	closed  bool
	pending []ports.CancelFunc
	sess    Session
}

func NewController(id string, cfg Config, rng arena.Source, sched ports.Scheduler, chain ports.ChainClient, metrics ports.BattleMetrics) *Controller {
	machine := fsm.New(StateLobby).
		Transition(StateLobby, eventFindMatch, StateSearching).
		Transition(StateSearching, eventMatchFound, StateInBattle).
		Transition(StateInBattle, eventBattleEnded, StateResult).
		Transition(StateResult, eventReturn, StateLobby)

	return &Controller{
		id:      id,
		machine: machine,
		cfg:     cfg.withDefaults(),
		rng:     rng,
		sched:   sched,
		chain:   chain,
		metrics: metrics,
		sess:    emptySession(),
	}
}

func (c *Controller) ID() string { return c.id }

// StartBattle leaves the lobby, generates an opponent and schedules the
// matchmaking delay. The outcome is not computed yet; that happens when the
// match is "found".
func (c *Controller) StartBattle(playerLevel int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrSessionClosed
	}
	if err := c.machine.Trigger(eventFindMatch); err != nil {
		return ErrBattleInProgress
	}

	if playerLevel < 1 {
		playerLevel = 1
	}
	c.sess = emptySession()
	c.sess.PlayerLevel = playerLevel
	opp := arena.GenerateOpponent(playerLevel, c.rng)
	c.sess.Opponent = &opp

	if c.metrics != nil {
		c.metrics.RecordBattleStarted()
	}
	c.schedule(c.cfg.MatchDelay, c.beginBattle)
	return nil
}

// beginBattle fires when the matchmaking delay elapses: resolve the outcome,
// script the log and start step playback.
func (c *Controller) beginBattle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.machine.Current() != StateSearching || c.sess.Opponent == nil {
		return
	}
	if err := c.machine.Trigger(eventMatchFound); err != nil {
		return
	}

	out := arena.Resolve(c.sess.PlayerLevel, c.sess.Opponent.Level, c.rng)
	c.sess.Outcome = &out
	c.sess.Steps = arena.Script(out)
	c.sess.NextStep = 0
	c.appendLog(fmt.Sprintf("Win chance: %d%% (Level %d vs Level %d)",
		out.WinChance, c.sess.PlayerLevel, c.sess.Opponent.Level))

	c.schedule(c.cfg.StepDelay, c.playStep)
}

// playStep emits one log step and applies its damage to the running health
// values. Playback halts early once either side is knocked out; either way
// the final health is force-set from the outcome so the displayed end state
// always matches the engine's result.
func (c *Controller) playStep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.machine.Current() != StateInBattle || c.sess.Outcome == nil {
		return
	}

	step := c.sess.Steps[c.sess.NextStep]
	c.sess.NextStep++
	c.appendLog(step.Message)
	c.sess.PlayerHealth = clampHealth(c.sess.PlayerHealth - step.PlayerDamage)
	c.sess.OpponentHealth = clampHealth(c.sess.OpponentHealth - step.OpponentDamage)

	knockout := c.sess.PlayerHealth <= 0 || c.sess.OpponentHealth <= 0
	if knockout || c.sess.NextStep >= len(c.sess.Steps) {
		c.finishBattle()
		return
	}
	c.schedule(c.cfg.StepDelay, c.playStep)
}

// finishBattle runs under the lock held by playStep.
func (c *Controller) finishBattle() {
	out := c.sess.Outcome
	c.sess.PlayerHealth = out.PlayerHealth
	c.sess.OpponentHealth = out.OpponentHealth

	if out.PlayerWins {
		c.appendLog("Victory! 🎉")
		c.appendLog("You earned +1 Win!")
		if c.metrics != nil {
			c.metrics.RecordWin()
		}
	} else {
		c.appendLog("Defeat! 💔")
		c.appendLog("Better luck next time!")
		if c.metrics != nil {
			c.metrics.RecordLoss()
		}
	}
	_ = c.machine.Trigger(eventBattleEnded)
}

// RecordOnChain writes the finished battle through the chain client. It fails
// closed when no wallet is connected and leaves the session in result either
// way, so a rejected transaction can simply be retried; the outcome is never
// recomputed.
func (c *Controller) RecordOnChain(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrSessionClosed
	}
	if c.machine.Current() != StateResult || c.sess.Outcome == nil || c.sess.Opponent == nil {
		c.mu.Unlock()
		return ErrNoBattleResult
	}
	if _, ok := c.chain.Address(); !ok || !c.chain.Connected() {
		c.appendLog("⚠️ Please connect wallet first")
		c.mu.Unlock()
		return ports.ErrWalletNotConnected
	}

	out := *c.sess.Outcome
	opponent := c.sess.Opponent.Address
	c.appendLog("Opening wallet for signature...")
	c.mu.Unlock()

	tx, err := c.chain.RecordBattleResult(ctx, opponent, out.PlayerWins,
		uint64(out.PlayerHealth), uint64(out.OpponentHealth))
	if err != nil {
		return c.recordFailed(fmt.Errorf("%w: %v", ports.ErrTxFailed, err))
	}
	if err := c.chain.WaitForConfirmation(ctx, tx); err != nil {
		return c.recordFailed(fmt.Errorf("%w: %v", ports.ErrTxFailed, err))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sess.Recorded = true
	c.sess.LastTx = string(tx)
	c.appendLog("✅ Result recorded on Base Chain!")
	c.appendLog("Check the leaderboard!")
	if c.metrics != nil {
		c.metrics.RecordChainWrite(true)
	}
	return nil
}

func (c *Controller) recordFailed(err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.appendLog(fmt.Sprintf("❌ Transaction failed: %v", err))
	if c.metrics != nil {
		c.metrics.RecordChainWrite(false)
	}
	return err
}

// ReturnToLobby discards the battle session: pending timers are cancelled,
// running health resets to 100/100 and opponent/outcome are cleared.
func (c *Controller) ReturnToLobby() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrSessionClosed
	}
	if err := c.machine.Trigger(eventReturn); err != nil {
		return ErrNoBattleResult
	}
	c.cancelPending()
	c.sess = emptySession()
	return nil
}

// Close abandons the session. Pending timer callbacks are dropped silently.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.cancelPending()
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	logCopy := make([]string, len(c.sess.Log))
	copy(logCopy, c.sess.Log)

	snap := Snapshot{
		SessionID:      c.id,
		State:          string(c.machine.Current()),
		PlayerLevel:    c.sess.PlayerLevel,
		PlayerHealth:   c.sess.PlayerHealth,
		OpponentHealth: c.sess.OpponentHealth,
		Log:            logCopy,
		Recorded:       c.sess.Recorded,
		LastTx:         c.sess.LastTx,
	}
	if c.sess.Opponent != nil {
		opp := *c.sess.Opponent
		snap.Opponent = &opp
	}
	if c.sess.Outcome != nil {
		out := *c.sess.Outcome
		snap.Outcome = &out
	}
	return snap
}

func (c *Controller) appendLog(line string) {
	c.sess.Log = append(c.sess.Log, line)
}

func (c *Controller) schedule(d time.Duration, fn func()) {
	cancel := c.sched.After(d, fn)
	c.pending = append(c.pending, cancel)
}

func (c *Controller) cancelPending() {
	for _, cancel := range c.pending {
		cancel()
	}
	c.pending = nil
}

func clampHealth(v int) int {
	if v < 0 {
		return 0
	}
	if v > arena.StartingHealth {
		return arena.StartingHealth
	}
	return v
}
