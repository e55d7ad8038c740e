// Package chat implements the persona chat assistant: per-visitor
// conversation state, the persona switch and submit/receive cycle, the
// side-effect dispatcher for model-requested actions, and the HTTP/WebSocket
// surface the chat widget talks to.
package chat

import (
	"context"
	"errors"

	"github.com/alexswami/portfolio-server/internal/domain"
	"github.com/alexswami/portfolio-server/internal/gemini"
)

// apologyText is appended when a model call fails. The visitor retries by
// submitting again; there is no automatic retry.
const apologyText = "Neural link lost. Try again!"

var (
	// ErrBusy is returned when a submission arrives while another is in
	// flight. The submission is dropped, not queued.
	ErrBusy = errors.New("chat: a submission is already pending")

	// ErrEmptyInput is returned for blank or whitespace-only submissions.
	ErrEmptyInput = errors.New("chat: empty input")
)

// ModelClient is the chat capability of the generative model.
type ModelClient interface {
	Chat(ctx context.Context, systemInstruction string, history []domain.Message, message string) (*gemini.Reply, error)
}

// SpeechSynthesizer is the speech capability of the generative model.
// Returns raw 16-bit little-endian mono PCM.
type SpeechSynthesizer interface {
	Speech(ctx context.Context, text string) ([]byte, error)
}

// Email is a notification delivered by a Notifier.
type Email struct {
	To         string
	Subject    string
	Body       string
	SenderName string
}

// Notifier performs the external send side effect for email actions. The
// default implementation simulates delivery with a fixed delay; production
// deployments substitute a transactional email capability.
type Notifier interface {
	Send(ctx context.Context, email Email) error
}

// ChatRequest is the body of POST /api/chat/message.
type ChatRequest struct {
	Text string `json:"text"`
}

// PersonaRequest is the body of POST /api/chat/persona.
type PersonaRequest struct {
	Persona string `json:"persona"`
}

// SpeakRequest is the body of POST /api/chat/speak.
type SpeakRequest struct {
	Text string `json:"text"`
}

// ChatResponse is returned by message and persona endpoints: the messages
// appended by the operation plus the current widget state.
type ChatResponse struct {
	Messages     []domain.Message `json:"messages"`
	Persona      string           `json:"persona"`
	Pending      bool             `json:"pending"`
	Listening    bool             `json:"listening"`
	ActionStatus ActionStatus     `json:"actionStatus"`
}

// HistoryResponse is returned by GET /api/chat/history.
type HistoryResponse struct {
	Messages     []domain.Message `json:"messages"`
	Persona      string           `json:"persona"`
	Personas     []PersonaInfo    `json:"personas"`
	Pending      bool             `json:"pending"`
	Listening    bool             `json:"listening"`
	ActionStatus ActionStatus     `json:"actionStatus"`
}

// PersonaInfo describes one selectable persona for the widget header.
type PersonaInfo struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}
