package chat

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexswami/portfolio-server/internal/api"
	"github.com/alexswami/portfolio-server/internal/domain"
	"github.com/alexswami/portfolio-server/internal/identity"
	"github.com/go-chi/chi/v5"
)

// maxRequestBodySize caps chat request bodies (64KB).
const maxRequestBodySize = 64 << 10

// Handler exposes the chat assistant over HTTP.
type Handler struct {
	manager     *Manager
	tts         SpeechSynthesizer
	sampleRate  int
	rateLimiter *RateLimiter
}

// NewHandler creates a chat handler. tts may be nil, in which case the speak
// endpoint answers 204 (feature silently inert).
func NewHandler(manager *Manager, tts SpeechSynthesizer, sampleRate int, rateLimiter *RateLimiter) *Handler {
	return &Handler{
		manager:     manager,
		tts:         tts,
		sampleRate:  sampleRate,
		rateLimiter: rateLimiter,
	}
}

// RegisterRoutes registers chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/chat", func(r chi.Router) {
		r.Post("/message", h.HandleMessage)
		r.Post("/persona", h.HandlePersona)
		r.Get("/history", h.HandleHistory)
		r.Delete("/history", h.HandleReset)
		r.Post("/speak", h.HandleSpeak)
	})
}

func (h *Handler) conversation(r *http.Request) (*Conversation, string, bool) {
	visitorID := identity.VisitorIDFromContext(r.Context())
	if visitorID == "" {
		return nil, "", false
	}
	sessionID := identity.SessionIDFromContext(r.Context())
	return h.manager.Conversation(r.Context(), visitorID, sessionID), visitorID, true
}

func (h *Handler) stateResponse(conv *Conversation, appended []domain.Message) ChatResponse {
	if appended == nil {
		appended = []domain.Message{}
	}
	return ChatResponse{
		Messages:     appended,
		Persona:      string(conv.Persona()),
		Pending:      conv.Pending(),
		Listening:    conv.Listening(),
		ActionStatus: conv.ActionStatus(),
	}
}

// HandleMessage handles POST /api/chat/message.
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	conv, visitorID, ok := h.conversation(r)
	if !ok {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if !h.rateLimiter.Allow(visitorID) {
		api.Error(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	slog.Info("Chat message", "visitor_id", visitorID, "message_length", len(req.Text))

	appended, err := conv.Submit(r.Context(), req.Text)
	switch {
	case errors.Is(err, ErrEmptyInput):
		api.Error(w, http.StatusBadRequest, "message is required")
		return
	case errors.Is(err, ErrBusy):
		api.Error(w, http.StatusTooManyRequests, "a reply is already pending")
		return
	case err != nil:
		slog.Error("Chat submit failed", "visitor_id", visitorID, "error", err)
		api.Error(w, http.StatusInternalServerError, "chat failed")
		return
	}

	api.JSON(w, http.StatusOK, h.stateResponse(conv, appended))
}

// HandlePersona handles POST /api/chat/persona.
func (h *Handler) HandlePersona(w http.ResponseWriter, r *http.Request) {
	conv, visitorID, ok := h.conversation(r)
	if !ok {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req PersonaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	persona, known := domain.ParsePersona(req.Persona)
	if !known {
		api.Error(w, http.StatusBadRequest, "unknown persona")
		return
	}

	slog.Info("Persona switch", "visitor_id", visitorID, "persona", persona.Label())

	appended := conv.SwitchPersona(r.Context(), persona)
	api.JSON(w, http.StatusOK, h.stateResponse(conv, appended))
}

// HandleHistory handles GET /api/chat/history.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	conv, _, ok := h.conversation(r)
	if !ok {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	personas := make([]PersonaInfo, 0, len(domain.Personas()))
	for _, p := range domain.Personas() {
		personas = append(personas, PersonaInfo{
			ID:          string(p),
			Label:       p.Label(),
			Description: p.Description(),
		})
	}

	api.JSON(w, http.StatusOK, HistoryResponse{
		Messages:     conv.Transcript(),
		Persona:      string(conv.Persona()),
		Personas:     personas,
		Pending:      conv.Pending(),
		Listening:    conv.Listening(),
		ActionStatus: conv.ActionStatus(),
	})
}

// HandleReset handles DELETE /api/chat/history.
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	conv, visitorID, ok := h.conversation(r)
	if !ok {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := conv.Reset(r.Context()); err != nil {
		slog.Error("Failed to reset chat history", "visitor_id", visitorID, "error", err)
		api.Error(w, http.StatusInternalServerError, "failed to reset history")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSpeak handles POST /api/chat/speak: best-effort speech synthesis.
// Failures answer 204 with no body — the feature is non-critical and never
// errors out loud.
func (h *Handler) HandleSpeak(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := h.conversation(r); !ok {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req SpeakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		api.Error(w, http.StatusBadRequest, "text is required")
		return
	}

	if h.tts == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	pcm, err := h.tts.Speech(r.Context(), req.Text)
	if err != nil {
		slog.Debug("Speech synthesis failed", "error", err)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(WAVFromPCM16(pcm, h.sampleRate)); err != nil {
		slog.Debug("Failed to write speech response", "error", err)
	}
}
