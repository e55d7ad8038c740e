package chat

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/alexswami/portfolio-server/internal/domain"
	"github.com/alexswami/portfolio-server/internal/gemini"
)

func newCookieJar() (http.CookieJar, error) {
	return cookiejar.New(nil)
}

// fakeModel is a scriptable ModelClient.
type fakeModel struct {
	mu          sync.Mutex
	reply       *gemini.Reply
	err         error
	block       chan struct{} // when non-nil, Chat waits for it to close
	calls       int
	lastSystem  string
	lastHistory []domain.Message
	lastMessage string
}

func (m *fakeModel) Chat(ctx context.Context, systemInstruction string, history []domain.Message, message string) (*gemini.Reply, error) {
	m.mu.Lock()
	m.calls++
	m.lastSystem = systemInstruction
	m.lastHistory = append([]domain.Message(nil), history...)
	m.lastMessage = message
	block := m.block
	reply := m.reply
	err := m.err
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	if reply == nil {
		return &gemini.Reply{}, nil
	}
	return reply, nil
}

func (m *fakeModel) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// fakeRepo is an in-memory store.Repository.
type fakeRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.ChatSession
	getErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: make(map[string]*domain.ChatSession)}
}

func (r *fakeRepo) GetChatSession(_ context.Context, visitorID string) (*domain.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	s, ok := r.sessions[visitorID]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (r *fakeRepo) UpsertChatSession(_ context.Context, session *domain.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	if existing, ok := r.sessions[session.VisitorID]; ok && copied.HistoryJSON == "" {
		copied.HistoryJSON = existing.HistoryJSON
	}
	r.sessions[session.VisitorID] = &copied
	return nil
}

func (r *fakeRepo) DeleteChatSession(_ context.Context, visitorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, visitorID)
	return nil
}

func (r *fakeRepo) Ping(context.Context) error { return nil }
func (r *fakeRepo) Close() error               { return nil }

// fakeNotifier records sent emails.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []Email
	err  error
}

func (n *fakeNotifier) Send(_ context.Context, email Email) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, email)
	return nil
}

func (n *fakeNotifier) sentEmails() []Email {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Email(nil), n.sent...)
}

// fakeRecognizer is a controllable voice-capture capability.
type fakeRecognizer struct {
	mu        sync.Mutex
	supported bool
	started   int
	stopped   int
}

func (r *fakeRecognizer) Supported() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.supported
}

func (r *fakeRecognizer) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started++
	return nil
}

func (r *fakeRecognizer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped++
}

func newTestConversation(model ModelClient, repo *fakeRepo) *Conversation {
	sessions := NewSessionStore(repo)
	dispatcher := NewDispatcher(&fakeNotifier{}, "alex@alextech.dev", 50*time.Millisecond)
	return NewConversation(context.Background(), "anon_visitor", model, sessions, dispatcher)
}
