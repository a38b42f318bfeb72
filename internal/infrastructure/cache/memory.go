package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/lunchradar/backend/internal/domain"
)

// Memory is a thread-safe in-memory implementation of
// domain.MenuRepository and domain.SubscriptionRepository. It mirrors the
// sqlite store's semantics (last-write-wins upsert, unique subscription
// pairs) without persistence; handy for tests and ephemeral deployments.
type Memory struct {
	mutex sync.RWMutex
	menus map[string]string          // "url\x00date" -> menu JSON
	subs  map[string]map[string]bool // url -> set of targets
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		menus: make(map[string]string),
		subs:  make(map[string]map[string]bool),
	}
}

func menuKey(url, date string) string {
	return url + "\x00" + date
}

// Get retrieves the record cached for (url, date)
func (m *Memory) Get(ctx context.Context, url, date string) (*domain.MenuRecord, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	raw, ok := m.menus[menuKey(url, date)]
	if !ok {
		return nil, domain.ErrCacheMiss
	}

	var record domain.MenuRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Upsert stores the record under (record.SourceURL, record.Date),
// replacing any previous entry. Records are stored serialized so callers
// never share memory with the store.
func (m *Memory) Upsert(ctx context.Context, record *domain.MenuRecord) error {
	if record == nil || record.SourceURL == "" || record.Date == "" {
		return domain.ErrInvalidRequest
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.menus[menuKey(record.SourceURL, record.Date)] = string(raw)
	return nil
}

// ListSources returns the distinct source URLs ever cached
func (m *Memory) ListSources(ctx context.Context) ([]string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	seen := make(map[string]bool)
	for key := range m.menus {
		for i := 0; i < len(key); i++ {
			if key[i] == 0 {
				seen[key[:i]] = true
				break
			}
		}
	}
	return sortedKeys(seen), nil
}

// Register stores a (url, target) subscription pair
func (m *Memory) Register(ctx context.Context, url, target string) error {
	if url == "" || target == "" {
		return domain.ErrInvalidRequest
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	targets := m.subs[url]
	if targets == nil {
		targets = make(map[string]bool)
		m.subs[url] = targets
	}
	if targets[target] {
		return fmt.Errorf("%w: %s -> %s", domain.ErrDuplicateSubscription, url, target)
	}
	targets[target] = true
	return nil
}

// Unregister removes a subscription pair; absent pairs are a no-op
func (m *Memory) Unregister(ctx context.Context, url, target string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if targets := m.subs[url]; targets != nil {
		delete(targets, target)
		if len(targets) == 0 {
			delete(m.subs, url)
		}
	}
	return nil
}

// Subscribers returns all targets registered for the source
func (m *Memory) Subscribers(ctx context.Context, url string) ([]string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return sortedKeys(m.subs[url]), nil
}

// SubscribedSources returns the distinct sources with at least one subscriber
func (m *Memory) SubscribedSources(ctx context.Context) ([]string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	seen := make(map[string]bool)
	for url := range m.subs {
		seen[url] = true
	}
	return sortedKeys(seen), nil
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
