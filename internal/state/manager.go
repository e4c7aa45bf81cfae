// Package state persists which zones have already been alerted on, so
// restarts do not replay notifications. The detection engine itself is
// stateless; this store belongs to the notification pipeline around it.
package state

import (
	"fmt"
	"sync"

	"BlockSentinel/internal/model"
)

// Manager is a concurrency-safe, persistent set of zone fingerprints.
type Manager struct {
	mu       sync.Mutex
	seen     map[string]struct{}
	filePath string
}

// NewManager creates a Manager, loading any previously persisted state.
func NewManager(filePath string) (*Manager, error) {
	st, err := loadFile(filePath)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(st.SeenZones))
	for _, k := range st.SeenZones {
		seen[k] = struct{}{}
	}
	return &Manager{seen: seen, filePath: filePath}, nil
}

// ZoneKey builds the dedup fingerprint for a zone on an instrument/timeframe
// pair. The score is rounded to 2 decimals so float noise cannot split one
// logical zone into several alerts.
func ZoneKey(symbol, timeframe string, z model.Zone) string {
	return fmt.Sprintf("%s_%s_%d_%s_%.2f", symbol, timeframe, z.OriginIndex, z.Direction, z.Score)
}

// MarkSeen records a fingerprint and persists the store. Returns true if the
// fingerprint was new.
func (m *Manager) MarkSeen(key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.seen[key]; ok {
		return false, nil
	}
	m.seen[key] = struct{}{}
	return true, m.save()
}

// IsSeen reports whether a fingerprint has been recorded before.
func (m *Manager) IsSeen(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.seen[key]
	return ok
}

// Len returns the number of recorded fingerprints.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.seen)
}

func (m *Manager) save() error {
	keys := make([]string, 0, len(m.seen))
	for k := range m.seen {
		keys = append(keys, k)
	}
	return saveFile(m.filePath, &fileState{SeenZones: keys})
}
