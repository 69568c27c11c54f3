package connectivity

import (
	"context"
	"sync"

	pkgerrors "github.com/stockalert-app/stockalert-backend/pkg/errors"
	"github.com/stockalert-app/stockalert-backend/pkg/logger"
)

// Monitor mirrors the source's last-observed state so readers never touch
// platform globals directly. Close unregisters the subscription; a closed
// monitor keeps answering with the final observed state.
type Monitor struct {
	log *logger.Logger

	mu          sync.Mutex
	online      bool
	unsubscribe func()
}

// NewMonitor reads the initial state and subscribes to transitions.
func NewMonitor(source Source, log *logger.Logger) (*Monitor, error) {
	if source == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "connectivity source required")
	}
	monitor := &Monitor{
		log:    log,
		online: source.Online(),
	}
	monitor.unsubscribe = source.OnChange(monitor.observe)
	return monitor, nil
}

func (m *Monitor) observe(online bool) {
	m.mu.Lock()
	changed := m.online != online
	m.online = online
	m.mu.Unlock()

	if changed && m.log != nil {
		ctx := m.log.WithField(context.Background(), "online", online)
		m.log.Info(ctx, "connectivity changed")
	}
}

// Online returns the last observed state.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Close unregisters from the source. Safe to call more than once.
func (m *Monitor) Close() {
	m.mu.Lock()
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	m.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}
