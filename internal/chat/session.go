package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/alexswami/portfolio-server/internal/domain"
	"github.com/alexswami/portfolio-server/internal/store"
)

// SessionStore mirrors conversation state to durable storage so a transcript
// and active persona survive page reloads. It never fails the widget:
// corrupt or missing state degrades to an empty transcript and the default
// persona, and write errors are logged, not surfaced.
type SessionStore struct {
	repo store.Repository
}

// NewSessionStore creates a session store over the given repository.
func NewSessionStore(repo store.Repository) *SessionStore {
	return &SessionStore{repo: repo}
}

// Restore loads the persisted transcript and persona for a visitor.
// Unparseable history yields an empty transcript; an unrecognized persona
// identifier yields the default persona.
func (s *SessionStore) Restore(ctx context.Context, visitorID string) ([]domain.Message, domain.Persona) {
	session, err := s.repo.GetChatSession(ctx, visitorID)
	if err != nil {
		slog.Warn("Failed to load chat session, starting fresh", "visitor_id", visitorID, "error", err)
		return nil, domain.DefaultPersona
	}
	if session == nil {
		return nil, domain.DefaultPersona
	}

	var transcript []domain.Message
	if session.HistoryJSON != "" {
		if err := json.Unmarshal([]byte(session.HistoryJSON), &transcript); err != nil {
			slog.Debug("Discarding unparseable chat history", "visitor_id", visitorID, "error", err)
			transcript = nil
		}
	}

	persona, ok := domain.ParsePersona(session.Persona)
	if !ok && session.Persona != "" {
		slog.Debug("Ignoring unknown persisted persona", "visitor_id", visitorID, "persona", session.Persona)
	}

	return transcript, persona
}

// Persist writes the current transcript and persona. The transcript is only
// written when non-empty; the persona is always written. Called on every
// mutation, no debouncing.
func (s *SessionStore) Persist(ctx context.Context, visitorID string, transcript []domain.Message, persona domain.Persona) {
	session := &domain.ChatSession{
		VisitorID: visitorID,
		Persona:   string(persona),
		UpdatedAt: time.Now(),
	}

	if len(transcript) > 0 {
		data, err := json.Marshal(transcript)
		if err != nil {
			slog.Warn("Failed to serialize transcript", "visitor_id", visitorID, "error", err)
		} else {
			session.HistoryJSON = string(data)
		}
	}

	if err := s.repo.UpsertChatSession(ctx, session); err != nil {
		slog.Warn("Failed to persist chat session", "visitor_id", visitorID, "error", err)
	}
}

// Clear removes persisted state for a visitor.
func (s *SessionStore) Clear(ctx context.Context, visitorID string) error {
	return s.repo.DeleteChatSession(ctx, visitorID)
}
