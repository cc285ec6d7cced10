package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"basaegochi/internal/app/ports"
)

// scriptedSource replays fixed values so battles resolve deterministically.
type scriptedSource struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *scriptedSource) Float64() float64 {
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *scriptedSource) Intn(n int) int {
	v := s.ints[s.ii%len(s.ints)]
	s.ii++
	return v % n
}

// fakeScheduler queues callbacks and fires them only when the test says so.
type fakeScheduler struct {
	mu      sync.Mutex
	entries []*schedEntry
}

type schedEntry struct {
	fn        func()
	cancelled bool
}

var _ ports.Scheduler = (*fakeScheduler)(nil)

func (s *fakeScheduler) After(_ time.Duration, fn func()) ports.CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := &schedEntry{fn: fn}
	s.entries = append(s.entries, e)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		e.cancelled = true
	}
}

func (s *fakeScheduler) fire() bool {
	s.mu.Lock()
	var fn func()
	for len(s.entries) > 0 {
		e := s.entries[0]
		s.entries = s.entries[1:]
		if !e.cancelled {
			fn = e.fn
			break
		}
	}
	s.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

func (s *fakeScheduler) drain() {
	for s.fire() {
	}
}

type fakeChain struct {
	connected  bool
	addr       string
	recordErr  error
	confirmErr error

	recordCalls  int
	lastOpponent string
	lastWon      bool
}

var _ ports.ChainClient = (*fakeChain)(nil)

func (f *fakeChain) Connected() bool { return f.connected }

func (f *fakeChain) Address() (string, bool) {
	if f.addr == "" {
		return "", false
	}
	return f.addr, true
}

func (f *fakeChain) PlayerRecord(context.Context, string) (ports.PlayerRecord, error) {
	return ports.PlayerRecord{}, nil
}

func (f *fakeChain) Leaderboard(context.Context, int) ([]string, []uint64, error) {
	return nil, nil, nil
}

func (f *fakeChain) RecordBattleResult(_ context.Context, opponent string, playerWon bool, _, _ uint64) (ports.TxHandle, error) {
	f.recordCalls++
	f.lastOpponent = opponent
	f.lastWon = playerWon
	if f.recordErr != nil {
		return "", f.recordErr
	}
	return ports.TxHandle("0xtesttx"), nil
}

func (f *fakeChain) WaitForConfirmation(context.Context, ports.TxHandle) error {
	return f.confirmErr
}

type fakeMetrics struct {
	started, wins, losses int
	chainOK, chainFail    int
}

var _ ports.BattleMetrics = (*fakeMetrics)(nil)

func (m *fakeMetrics) RecordBattleStarted() { m.started++ }
func (m *fakeMetrics) RecordWin()           { m.wins++ }
func (m *fakeMetrics) RecordLoss()          { m.losses++ }
func (m *fakeMetrics) RecordChainWrite(ok bool) {
	if ok {
		m.chainOK++
	} else {
		m.chainFail++
	}
}

// winningSource scripts an even match that the player wins with 25 health left.
func winningSource() *scriptedSource {
	return &scriptedSource{floats: []float64{0.0, 0.5}, ints: []int{4}}
}

func newTestController(chain ports.ChainClient, src *scriptedSource) (*Controller, *fakeScheduler, *fakeMetrics) {
	sched := &fakeScheduler{}
	metrics := &fakeMetrics{}
	ctrl := NewController("sess-1", Config{}, src, sched, chain, metrics)
	return ctrl, sched, metrics
}

func hasLogLine(log []string, want string) bool {
	for _, line := range log {
		if line == want {
			return true
		}
	}
	return false
}

func TestController_FullBattleFlow(t *testing.T) {
	ctrl, sched, metrics := newTestController(&fakeChain{}, winningSource())

	if got := ctrl.Snapshot().State; got != string(StateLobby) {
		t.Fatalf("initial state = %s", got)
	}
	if err := ctrl.StartBattle(5); err != nil {
		t.Fatalf("StartBattle: %v", err)
	}

	snap := ctrl.Snapshot()
	if snap.State != string(StateSearching) {
		t.Fatalf("state after start = %s, want searching", snap.State)
	}
	if snap.Opponent == nil || snap.Opponent.Level != 5 {
		t.Fatalf("opponent = %+v, want level 5", snap.Opponent)
	}
	if metrics.started != 1 {
		t.Fatalf("battles started = %d", metrics.started)
	}

	// Matchmaking delay elapses.
	if !sched.fire() {
		t.Fatal("no matchmaking timer queued")
	}
	snap = ctrl.Snapshot()
	if snap.State != string(StateInBattle) {
		t.Fatalf("state after match = %s, want battle", snap.State)
	}
	if !hasLogLine(snap.Log, "Win chance: 50% (Level 5 vs Level 5)") {
		t.Fatalf("missing win chance line in %v", snap.Log)
	}
	if snap.Outcome == nil || !snap.Outcome.PlayerWins {
		t.Fatalf("outcome = %+v, want player win", snap.Outcome)
	}

	sched.drain()
	snap = ctrl.Snapshot()
	if snap.State != string(StateResult) {
		t.Fatalf("state after playback = %s, want result", snap.State)
	}
	if snap.PlayerHealth != 25 || snap.OpponentHealth != 0 {
		t.Fatalf("final health %d/%d, want 25/0", snap.PlayerHealth, snap.OpponentHealth)
	}
	if !hasLogLine(snap.Log, "Victory! 🎉") || !hasLogLine(snap.Log, "You earned +1 Win!") {
		t.Fatalf("missing victory lines in %v", snap.Log)
	}
	if metrics.wins != 1 || metrics.losses != 0 {
		t.Fatalf("wins=%d losses=%d", metrics.wins, metrics.losses)
	}
}

func TestController_DefeatFlow(t *testing.T) {
	src := &scriptedSource{floats: []float64{0.99, 0.5}, ints: []int{4}}
	ctrl, sched, metrics := newTestController(&fakeChain{}, src)

	if err := ctrl.StartBattle(5); err != nil {
		t.Fatalf("StartBattle: %v", err)
	}
	sched.drain()

	snap := ctrl.Snapshot()
	if snap.State != string(StateResult) {
		t.Fatalf("state = %s, want result", snap.State)
	}
	if snap.PlayerHealth != 0 || snap.OpponentHealth != 25 {
		t.Fatalf("final health %d/%d, want 0/25", snap.PlayerHealth, snap.OpponentHealth)
	}
	if !hasLogLine(snap.Log, "Defeat! 💔") {
		t.Fatalf("missing defeat line in %v", snap.Log)
	}
	if metrics.losses != 1 {
		t.Fatalf("losses = %d", metrics.losses)
	}
}

func TestController_StartWhileInProgress(t *testing.T) {
	ctrl, sched, _ := newTestController(&fakeChain{}, winningSource())

	if err := ctrl.StartBattle(5); err != nil {
		t.Fatalf("StartBattle: %v", err)
	}
	if err := ctrl.StartBattle(5); !errors.Is(err, ErrBattleInProgress) {
		t.Fatalf("second start = %v, want ErrBattleInProgress", err)
	}
	sched.fire() // in battle now
	if err := ctrl.StartBattle(5); !errors.Is(err, ErrBattleInProgress) {
		t.Fatalf("start mid-battle = %v, want ErrBattleInProgress", err)
	}
}

func TestController_RecordRequiresResult(t *testing.T) {
	ctrl, _, _ := newTestController(&fakeChain{connected: true, addr: "0xabc"}, winningSource())
	if err := ctrl.RecordOnChain(context.Background()); !errors.Is(err, ErrNoBattleResult) {
		t.Fatalf("record in lobby = %v, want ErrNoBattleResult", err)
	}
}

func TestController_RecordWithoutWallet(t *testing.T) {
	chain := &fakeChain{}
	ctrl, sched, _ := newTestController(chain, winningSource())

	ctrl.StartBattle(5)
	sched.drain()

	err := ctrl.RecordOnChain(context.Background())
	if !errors.Is(err, ports.ErrWalletNotConnected) {
		t.Fatalf("err = %v, want ErrWalletNotConnected", err)
	}
	snap := ctrl.Snapshot()
	if !hasLogLine(snap.Log, "⚠️ Please connect wallet first") {
		t.Fatalf("missing wallet warning in %v", snap.Log)
	}
	if snap.State != string(StateResult) {
		t.Fatalf("state = %s, failed record must stay in result", snap.State)
	}
	if chain.recordCalls != 0 {
		t.Fatalf("chain write attempted without wallet")
	}
}

func TestController_RecordFailureIsRetryable(t *testing.T) {
	chain := &fakeChain{connected: true, addr: "0xplayer", recordErr: errors.New("user rejected")}
	ctrl, sched, metrics := newTestController(chain, winningSource())

	ctrl.StartBattle(5)
	sched.drain()
	before := *ctrl.Snapshot().Outcome

	err := ctrl.RecordOnChain(context.Background())
	if !errors.Is(err, ports.ErrTxFailed) {
		t.Fatalf("err = %v, want ErrTxFailed", err)
	}
	snap := ctrl.Snapshot()
	if snap.Recorded {
		t.Fatal("failed record must not mark session recorded")
	}
	var found bool
	for _, line := range snap.Log {
		if strings.HasPrefix(line, "❌ Transaction failed:") {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing failure line in %v", snap.Log)
	}
	if metrics.chainFail != 1 {
		t.Fatalf("chain failures = %d", metrics.chainFail)
	}

	// Retry with the wallet cooperating; the outcome must not be recomputed.
	chain.recordErr = nil
	if err := ctrl.RecordOnChain(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	snap = ctrl.Snapshot()
	if *snap.Outcome != before {
		t.Fatalf("outcome changed across retry: %+v vs %+v", *snap.Outcome, before)
	}
	if !snap.Recorded || snap.LastTx != "0xtesttx" {
		t.Fatalf("recorded=%v lastTx=%q", snap.Recorded, snap.LastTx)
	}
	if !hasLogLine(snap.Log, "✅ Result recorded on Base Chain!") ||
		!hasLogLine(snap.Log, "Check the leaderboard!") {
		t.Fatalf("missing success lines in %v", snap.Log)
	}
	if chain.recordCalls != 2 || !chain.lastWon {
		t.Fatalf("recordCalls=%d lastWon=%v", chain.recordCalls, chain.lastWon)
	}
	if metrics.chainOK != 1 {
		t.Fatalf("chain writes = %d", metrics.chainOK)
	}
}

func TestController_ReturnToLobbyResets(t *testing.T) {
	ctrl, sched, _ := newTestController(&fakeChain{}, winningSource())

	ctrl.StartBattle(5)
	sched.drain()

	if err := ctrl.ReturnToLobby(); err != nil {
		t.Fatalf("ReturnToLobby: %v", err)
	}
	snap := ctrl.Snapshot()
	if snap.State != string(StateLobby) {
		t.Fatalf("state = %s, want lobby", snap.State)
	}
	if snap.PlayerHealth != 100 || snap.OpponentHealth != 100 {
		t.Fatalf("health %d/%d, want 100/100", snap.PlayerHealth, snap.OpponentHealth)
	}
	if snap.Opponent != nil || snap.Outcome != nil || len(snap.Log) != 0 {
		t.Fatalf("session not cleared: %+v", snap)
	}

	// A fresh battle can start immediately.
	if err := ctrl.StartBattle(5); err != nil {
		t.Fatalf("restart: %v", err)
	}
}

func TestController_ReturnOutsideResult(t *testing.T) {
	ctrl, _, _ := newTestController(&fakeChain{}, winningSource())
	if err := ctrl.ReturnToLobby(); !errors.Is(err, ErrNoBattleResult) {
		t.Fatalf("return from lobby = %v, want ErrNoBattleResult", err)
	}
}

func TestController_CloseDropsPendingTimers(t *testing.T) {
	ctrl, sched, metrics := newTestController(&fakeChain{}, winningSource())

	ctrl.StartBattle(5)
	ctrl.Close()

	sched.drain()
	snap := ctrl.Snapshot()
	if snap.State != string(StateSearching) {
		t.Fatalf("state advanced after close: %s", snap.State)
	}
	if metrics.wins != 0 || metrics.losses != 0 {
		t.Fatal("battle settled after close")
	}

	if err := ctrl.StartBattle(5); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("start after close = %v, want ErrSessionClosed", err)
	}
	if err := ctrl.RecordOnChain(context.Background()); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("record after close = %v, want ErrSessionClosed", err)
	}
}

func TestController_StaleTimerIsNoOp(t *testing.T) {
	ctrl, sched, _ := newTestController(&fakeChain{}, winningSource())

	ctrl.StartBattle(5)
	sched.drain()
	ctrl.ReturnToLobby()

	// Fire anything that survived cancellation; nothing may move the session.
	sched.drain()
	if got := ctrl.Snapshot().State; got != string(StateLobby) {
		t.Fatalf("state = %s, want lobby", got)
	}
}
