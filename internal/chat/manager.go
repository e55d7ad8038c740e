package chat

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Manager holds live Conversation instances keyed by visitor and tab
// session. Conversation state is owned exclusively by one widget instance;
// the persisted projection survives eviction.
type Manager struct {
	mu     sync.RWMutex
	active map[string]*Conversation // visitorID:sessionID -> conversation

	model      ModelClient
	sessions   *SessionStore
	notifier   Notifier
	contact    string
	resetDelay time.Duration
}

// NewManager creates a conversation registry.
func NewManager(model ModelClient, sessions *SessionStore, notifier Notifier, contactEmail string, resetDelay time.Duration) *Manager {
	return &Manager{
		active:     make(map[string]*Conversation),
		model:      model,
		sessions:   sessions,
		notifier:   notifier,
		contact:    contactEmail,
		resetDelay: resetDelay,
	}
}

func conversationKey(visitorID, sessionID string) string {
	return visitorID + ":" + sessionID
}

// Conversation returns the live conversation for a visitor/tab, creating and
// restoring it on first use.
func (m *Manager) Conversation(ctx context.Context, visitorID, sessionID string) *Conversation {
	key := conversationKey(visitorID, sessionID)

	m.mu.RLock()
	conv, ok := m.active[key]
	m.mu.RUnlock()
	if ok {
		return conv
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if conv, ok := m.active[key]; ok {
		return conv
	}

	dispatcher := NewDispatcher(m.notifier, m.contact, m.resetDelay)
	conv = NewConversation(ctx, visitorID, m.model, m.sessions, dispatcher)
	m.active[key] = conv
	slog.Info("Conversation created", "visitor_id", visitorID, "session_id", sessionID)
	return conv
}

// Remove drops a live conversation. Persisted state is untouched.
func (m *Manager) Remove(visitorID, sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, conversationKey(visitorID, sessionID))
}

// StartJanitor evicts conversations idle longer than ttl. Runs until ctx is
// cancelled. Eviction only frees memory; transcripts stay persisted.
func (m *Manager) StartJanitor(ctx context.Context, ttl, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.evictIdle(ttl)
			}
		}
	}()
}

func (m *Manager) evictIdle(ttl time.Duration) {
	cutoff := time.Now().Add(-ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	for key, conv := range m.active {
		// Never evict mid-call; the pending flag clears when it settles.
		if conv.Pending() {
			continue
		}
		if conv.LastActive().Before(cutoff) {
			delete(m.active, key)
			slog.Debug("Evicted idle conversation", "key", key)
		}
	}
}
