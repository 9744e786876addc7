package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tasklyst/backend/storage"
)

const probeKey = "task_lyst_monitor_probe"

// Monitor periodically probes the key-value store so callers can warn about
// unavailable storage without touching the data path.
type Monitor struct {
	store storage.Store

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	logger   *zap.Logger
}

func New(store storage.Store, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		store:    store,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Storage
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Refresh probes the store once and caches the result.
func (m *Monitor) Refresh() Status {
	status := Status{
		Storage:   m.checkStorage(),
		LastCheck: time.Now(),
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
	return status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Refresh()
	for {
		select {
		case <-ticker.C:
			m.Refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) checkStorage() bool {
	if m.store == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := m.store.Write(ctx, probeKey, "ok"); err != nil {
		m.logger.Warn("storage probe write failed", zap.Error(err))
		return false
	}
	if err := m.store.Remove(ctx, probeKey); err != nil {
		m.logger.Warn("storage probe remove failed", zap.Error(err))
		return false
	}
	return true
}
