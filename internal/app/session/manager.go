package session

import (
	"sync"
	"time"

	"basaegochi/internal/app/ports"
	"basaegochi/internal/domain/arena"

	"github.com/google/uuid"
)

// Manager hands out one controller per owner, creating lazily. Closing the
// manager abandons every live session.
type Manager struct {
	mu          sync.Mutex
	cfg         Config
	sched       ports.Scheduler
	chain       ports.ChainClient
	metrics     ports.BattleMetrics
	newSource   func() arena.Source
	controllers map[string]*Controller
}

func NewManager(cfg Config, sched ports.Scheduler, chain ports.ChainClient, metrics ports.BattleMetrics) *Manager {
	return &Manager{
		cfg:     cfg,
		sched:   sched,
		chain:   chain,
		metrics: metrics,
		newSource: func() arena.Source {
			return arena.NewSource(time.Now().UnixNano())
		},
		controllers: make(map[string]*Controller),
	}
}

// WithSourceFactory overrides the per-session randomness, for deterministic
// replay in tests.
func (m *Manager) WithSourceFactory(fn func() arena.Source) *Manager {
	m.newSource = fn
	return m
}

func (m *Manager) For(ownerID string) *Controller {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.controllers[ownerID]; ok {
		return c
	}
	c := NewController(uuid.NewString(), m.cfg, m.newSource(), m.sched, m.chain, m.metrics)
	m.controllers[ownerID] = c
	return c
}

func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.controllers {
		c.Close()
	}
	m.controllers = make(map[string]*Controller)
}
