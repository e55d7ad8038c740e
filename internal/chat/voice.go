package chat

import (
	"log/slog"
)

// Recognizer is the optional platform voice-capture capability. In the
// browser deployment recognition runs client-side and a WebSocket relays
// transcript events; Supported is probed, never assumed. With no capability
// attached the listening controls are inert.
type Recognizer interface {
	// Supported reports whether voice capture is available.
	Supported() bool
	// Start asks the capability to begin capturing.
	Start() error
	// Stop asks the capability to stop capturing.
	Stop()
}

// NullRecognizer is the absent-capability fallback: unsupported and inert.
type NullRecognizer struct{}

func (NullRecognizer) Supported() bool { return false }
func (NullRecognizer) Start() error    { return nil }
func (NullRecognizer) Stop()           {}

// AttachRecognizer wires a voice-capture capability to the conversation.
// Passing nil detaches, restoring the inert fallback.
func (c *Conversation) AttachRecognizer(r Recognizer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r == nil {
		r = NullRecognizer{}
	}
	if c.listening {
		c.stopListeningLocked()
	}
	c.recognizer = r
}

// ToggleListening starts or stops voice capture. A no-op when the capability
// is unsupported. Returns the resulting listening state.
func (c *Conversation) ToggleListening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.recognizer.Supported() {
		return false
	}

	if c.listening {
		c.stopListeningLocked()
		return false
	}

	if err := c.recognizer.Start(); err != nil {
		// Best-effort feature: failure leaves the control inert.
		slog.Debug("Voice capture failed to start", "visitor_id", c.visitorID, "error", err)
		return false
	}
	c.listening = true
	return true
}

// VoiceTranscript applies an interim or final recognition result to the
// input buffer. Final results stop the capture, mirroring the one-shot
// recognition mode of the widget.
func (c *Conversation) VoiceTranscript(text string, final bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.input = text
	if final && c.listening {
		c.stopListeningLocked()
	}
}

// stopListeningLocked stops capture. Callers must hold c.mu.
func (c *Conversation) stopListeningLocked() {
	c.recognizer.Stop()
	c.listening = false
}
