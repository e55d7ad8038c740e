package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alexswami/portfolio-server/internal/domain"
)

// Conversation is the state machine behind one chat widget instance: the
// active persona, the append-only transcript, the pending flag serializing
// submissions, the voice-capture state, and the action dispatcher.
//
// All mutations go through the session store so the persisted projection
// stays in sync. The pending guard drops (never queues) a submission that
// arrives while another is in flight; persona switches are allowed at any
// time, including while a model call is pending.
type Conversation struct {
	visitorID string

	mu         sync.Mutex
	persona    domain.Persona
	transcript []domain.Message
	pending    bool
	listening  bool
	input      string
	recognizer Recognizer
	lastActive time.Time

	model      ModelClient
	sessions   *SessionStore
	dispatcher *Dispatcher
}

// NewConversation creates a conversation, restoring persisted transcript and
// persona for the visitor.
func NewConversation(ctx context.Context, visitorID string, model ModelClient, sessions *SessionStore, dispatcher *Dispatcher) *Conversation {
	transcript, persona := sessions.Restore(ctx, visitorID)
	return &Conversation{
		visitorID:  visitorID,
		persona:    persona,
		transcript: transcript,
		recognizer: NullRecognizer{},
		lastActive: time.Now(),
		model:      model,
		sessions:   sessions,
		dispatcher: dispatcher,
	}
}

// Persona returns the active persona.
func (c *Conversation) Persona() domain.Persona {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.persona
}

// Pending reports whether a model call is in flight.
func (c *Conversation) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Listening reports whether voice capture is active.
func (c *Conversation) Listening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listening
}

// Input returns the current input buffer (populated by voice capture).
func (c *Conversation) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// ActionStatus returns the dispatcher lifecycle state.
func (c *Conversation) ActionStatus() ActionStatus {
	return c.dispatcher.Status()
}

// LastActive returns the time of the last visitor interaction.
func (c *Conversation) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

// Transcript returns a copy of the transcript.
func (c *Conversation) Transcript() []domain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Message(nil), c.transcript...)
}

// SwitchPersona changes the active persona. Switching to the already-active
// persona is a no-op. Otherwise exactly one notification message is appended;
// prior messages are never touched and the model is not contacted.
func (c *Conversation) SwitchPersona(ctx context.Context, p domain.Persona) []domain.Message {
	c.mu.Lock()
	if p == c.persona || !p.Valid() {
		c.mu.Unlock()
		return nil
	}

	c.persona = p
	notice := domain.NewModelMessage(fmt.Sprintf("🔄 Context switched to **%s**.\n\n*%s*", p.Label(), p.Description()))
	c.transcript = append(c.transcript, notice)
	c.touchLocked()
	transcript := append([]domain.Message(nil), c.transcript...)
	c.mu.Unlock()

	c.sessions.Persist(ctx, c.visitorID, transcript, p)
	return []domain.Message{notice}
}

// Submit runs one request/response cycle with the model. It returns the
// messages appended as a result of this submission.
//
// Blank input returns ErrEmptyInput; a submission while another is pending
// returns ErrBusy and is dropped. The pending flag is cleared on every
// outcome, including a panic inside action handling.
func (c *Conversation) Submit(ctx context.Context, text string) ([]domain.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	if c.listening {
		c.stopListeningLocked()
	}

	// Context window for the model: the transcript as it stood before this
	// submission.
	history := append([]domain.Message(nil), c.transcript...)
	persona := c.persona

	userMsg := domain.NewUserMessage(text)
	c.transcript = append(c.transcript, userMsg)
	c.input = ""
	c.pending = true
	c.touchLocked()
	transcript := append([]domain.Message(nil), c.transcript...)
	c.mu.Unlock()

	c.sessions.Persist(ctx, c.visitorID, transcript, persona)

	defer func() {
		c.mu.Lock()
		c.pending = false
		c.mu.Unlock()
	}()

	appended := []domain.Message{userMsg}

	reply, err := c.model.Chat(ctx, persona.SystemInstruction(), history, text)
	if err != nil {
		slog.Warn("Model call failed", "visitor_id", c.visitorID, "error", err)
		appended = append(appended, c.append(ctx, domain.NewModelMessage(apologyText)))
		return appended, nil
	}

	switch {
	case len(reply.Calls) > 0:
		// Requested actions take priority; freeform text riding along with
		// them is dropped.
		for _, call := range reply.Calls {
			confirmation, err := c.dispatcher.Dispatch(ctx, ParseAction(call))
			if err != nil {
				slog.Warn("Action dispatch failed", "visitor_id", c.visitorID, "action", call.Name, "error", err)
				appended = append(appended, c.append(ctx, domain.NewModelMessage(apologyText)))
				return appended, nil
			}
			if confirmation != "" {
				appended = append(appended, c.append(ctx, domain.NewModelMessage(confirmation)))
			}
		}
	case strings.TrimSpace(reply.Text) != "":
		appended = append(appended, c.append(ctx, domain.NewModelMessage(reply.Text)))
	default:
		// Neither text nor recognizable actions: nothing to append.
		slog.Debug("Model returned neither text nor actions", "visitor_id", c.visitorID)
	}

	return appended, nil
}

// Reset clears the transcript and persisted state. The active persona is
// kept.
func (c *Conversation) Reset(ctx context.Context) error {
	c.mu.Lock()
	c.transcript = nil
	c.input = ""
	c.touchLocked()
	c.mu.Unlock()

	if err := c.sessions.Clear(ctx, c.visitorID); err != nil {
		return fmt.Errorf("clear chat session: %w", err)
	}
	return nil
}

// append adds a message to the transcript and persists the mutation.
func (c *Conversation) append(ctx context.Context, msg domain.Message) domain.Message {
	c.mu.Lock()
	c.transcript = append(c.transcript, msg)
	transcript := append([]domain.Message(nil), c.transcript...)
	persona := c.persona
	c.mu.Unlock()

	c.sessions.Persist(ctx, c.visitorID, transcript, persona)
	return msg
}

func (c *Conversation) touchLocked() {
	c.lastActive = time.Now()
}
