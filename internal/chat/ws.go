package chat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/alexswami/portfolio-server/internal/identity"
	"github.com/coder/websocket"
)

// wsMessage is the WebSocket frame structure for the voice channel.
//
// Client -> server: voice_started, voice_ended, voice_interim, voice_final.
// Server -> client: capture_start, capture_stop (recognizer control), input
// (input buffer echo), listening (flag change).
type wsMessage struct {
	Type      string `json:"type"`
	Text      string `json:"text,omitempty"`
	Listening bool   `json:"listening,omitempty"`
}

// VoiceHandler bridges browser-side speech recognition to conversation
// state over a WebSocket. While a socket is connected the conversation's
// voice capability is supported; when it closes the controls go inert again.
type VoiceHandler struct {
	manager *Manager
	isDev   bool
}

// NewVoiceHandler creates a WebSocket voice handler.
func NewVoiceHandler(manager *Manager, isDev bool) *VoiceHandler {
	return &VoiceHandler{manager: manager, isDev: isDev}
}

// wsRecognizer implements Recognizer over a live voice socket. Start/Stop
// relay capture commands to the browser, which owns the actual speech
// recognition session.
type wsRecognizer struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (r *wsRecognizer) Supported() bool { return true }

func (r *wsRecognizer) Start() error {
	return r.write(wsMessage{Type: "capture_start"})
}

func (r *wsRecognizer) Stop() {
	if err := r.write(wsMessage{Type: "capture_stop"}); err != nil {
		slog.Debug("Failed to send capture_stop", "error", err)
	}
}

func (r *wsRecognizer) write(msg wsMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.conn.Write(context.Background(), websocket.MessageText, data)
}

// ServeHTTP implements http.Handler for WebSocket upgrade.
func (h *VoiceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	visitorID := identity.VisitorIDFromContext(r.Context())
	sessionID := identity.SessionIDFromContext(r.Context())
	if visitorID == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	slog.Info("Voice channel connection", "visitor_id", visitorID, "session_id", sessionID, "ip", identity.IPFromRequest(r))

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err, "visitor_id", visitorID)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "voice channel closed"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr, "visitor_id", visitorID)
		}
	}()

	conv := h.manager.Conversation(r.Context(), visitorID, sessionID)
	recognizer := &wsRecognizer{conn: ws}
	conv.AttachRecognizer(recognizer)
	defer conv.AttachRecognizer(nil)

	ctx := r.Context()
	for {
		_, data, err := ws.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway ||
				errors.Is(err, io.EOF) || ctx.Err() != nil {
				return
			}
			slog.Debug("Voice channel read error", "error", err, "visitor_id", visitorID)
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Debug("Ignoring malformed voice frame", "error", err, "visitor_id", visitorID)
			continue
		}

		h.handleFrame(conv, recognizer, msg)
	}
}

func (h *VoiceHandler) handleFrame(conv *Conversation, recognizer *wsRecognizer, msg wsMessage) {
	switch msg.Type {
	case "voice_started":
		conv.mu.Lock()
		conv.listening = true
		conv.mu.Unlock()
		h.echoListening(recognizer, true)
	case "voice_ended":
		conv.mu.Lock()
		conv.listening = false
		conv.mu.Unlock()
		h.echoListening(recognizer, false)
	case "voice_interim":
		conv.VoiceTranscript(msg.Text, false)
		h.echoInput(recognizer, conv.Input())
	case "voice_final":
		conv.VoiceTranscript(msg.Text, true)
		h.echoInput(recognizer, conv.Input())
		h.echoListening(recognizer, conv.Listening())
	default:
		slog.Debug("Ignoring unknown voice frame type", "type", msg.Type)
	}
}

func (h *VoiceHandler) echoInput(r *wsRecognizer, text string) {
	if err := r.write(wsMessage{Type: "input", Text: text}); err != nil {
		slog.Debug("Failed to echo input buffer", "error", err)
	}
}

func (h *VoiceHandler) echoListening(r *wsRecognizer, listening bool) {
	if err := r.write(wsMessage{Type: "listening", Listening: listening}); err != nil {
		slog.Debug("Failed to echo listening state", "error", err)
	}
}
