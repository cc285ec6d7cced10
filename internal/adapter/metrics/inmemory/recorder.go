package inmemory

import "sync"

type Snapshot struct {
	BattlesStarted  uint64 `json:"battles_started"`
	BattlesFinished uint64 `json:"battles_finished"`
	Wins            uint64 `json:"wins"`
	Losses          uint64 `json:"losses"`
	ChainWriteOK    uint64 `json:"chain_write_ok"`
	ChainWriteFail  uint64 `json:"chain_write_fail"`
}

type Recorder struct {
	mu        sync.Mutex
	started   uint64
	wins      uint64
	losses    uint64
	writeOK   uint64
	writeFail uint64
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) RecordBattleStarted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started++
}

func (r *Recorder) RecordWin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wins++
}

func (r *Recorder) RecordLoss() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.losses++
}

func (r *Recorder) RecordChainWrite(ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ok {
		r.writeOK++
	} else {
		r.writeFail++
	}
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		BattlesStarted:  r.started,
		BattlesFinished: r.wins + r.losses,
		Wins:            r.wins,
		Losses:          r.losses,
		ChainWriteOK:    r.writeOK,
		ChainWriteFail:  r.writeFail,
	}
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
