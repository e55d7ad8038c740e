package chat

import (
	"context"
	"testing"
	"time"

	"github.com/alexswami/portfolio-server/internal/domain"
)

func newTestManager(repo *fakeRepo) *Manager {
	sessions := NewSessionStore(repo)
	return NewManager(&fakeModel{}, sessions, &fakeNotifier{}, "alex@alextech.dev", time.Minute)
}

func TestManagerReturnsSameConversation(t *testing.T) {
	t.Parallel()

	m := newTestManager(newFakeRepo())

	a := m.Conversation(context.Background(), "anon_visitor", "tab1")
	b := m.Conversation(context.Background(), "anon_visitor", "tab1")
	if a != b {
		t.Error("same visitor/session returned different conversations")
	}
}

func TestManagerIsolatesTabs(t *testing.T) {
	t.Parallel()

	m := newTestManager(newFakeRepo())

	a := m.Conversation(context.Background(), "anon_visitor", "tab1")
	b := m.Conversation(context.Background(), "anon_visitor", "tab2")
	if a == b {
		t.Error("different tab sessions share a conversation")
	}
}

func TestManagerRestoresPersistedState(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	sessions := NewSessionStore(repo)
	sessions.Persist(context.Background(), "anon_visitor",
		[]domain.Message{domain.NewUserMessage("hello")}, domain.PersonaDesigner)

	m := newTestManager(repo)
	conv := m.Conversation(context.Background(), "anon_visitor", "default")

	if got := conv.Transcript(); len(got) != 1 {
		t.Errorf("restored transcript has %d messages, want 1", len(got))
	}
	if conv.Persona() != domain.PersonaDesigner {
		t.Errorf("restored persona = %q, want %q", conv.Persona(), domain.PersonaDesigner)
	}
}

func TestManagerRemove(t *testing.T) {
	t.Parallel()

	m := newTestManager(newFakeRepo())

	a := m.Conversation(context.Background(), "anon_visitor", "tab1")
	m.Remove("anon_visitor", "tab1")
	b := m.Conversation(context.Background(), "anon_visitor", "tab1")
	if a == b {
		t.Error("Remove did not drop the live conversation")
	}
}

func TestManagerEvictsIdleConversations(t *testing.T) {
	t.Parallel()

	m := newTestManager(newFakeRepo())

	a := m.Conversation(context.Background(), "anon_visitor", "tab1")
	time.Sleep(5 * time.Millisecond)
	m.evictIdle(time.Millisecond)

	b := m.Conversation(context.Background(), "anon_visitor", "tab1")
	if a == b {
		t.Error("idle conversation survived eviction")
	}
}

func TestManagerKeepsPendingConversations(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	model := &fakeModel{block: block}
	sessions := NewSessionStore(newFakeRepo())
	m := NewManager(model, sessions, &fakeNotifier{}, "alex@alextech.dev", time.Minute)

	conv := m.Conversation(context.Background(), "anon_visitor", "tab1")
	go conv.Submit(context.Background(), "hello")
	waitFor(t, conv.Pending)

	m.evictIdle(0)
	if got := m.Conversation(context.Background(), "anon_visitor", "tab1"); got != conv {
		t.Error("pending conversation was evicted")
	}

	close(block)
	waitFor(t, func() bool { return !conv.Pending() })
}
