package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexswami/portfolio-server/internal/domain"
	"github.com/alexswami/portfolio-server/internal/gemini"
	"github.com/alexswami/portfolio-server/internal/identity"
	"github.com/go-chi/chi/v5"
)

type fakeSpeech struct {
	pcm []byte
	err error
}

func (s *fakeSpeech) Speech(context.Context, string) ([]byte, error) {
	return s.pcm, s.err
}

func newTestServer(t *testing.T, model ModelClient, tts SpeechSynthesizer) *httptest.Server {
	t.Helper()

	sessions := NewSessionStore(newFakeRepo())
	manager := NewManager(model, sessions, &fakeNotifier{}, "alex@alextech.dev", time.Minute)
	handler := NewHandler(manager, tts, gemini.SpeechSampleRate, NewRateLimiter(100, time.Minute))

	r := chi.NewRouter()
	r.Use(identity.Middleware(true))
	handler.RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, client *http.Client, url string, body any) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

// clientWithJar returns a client that keeps the anonymous identity cookie
// across requests, like a browser would.
func clientWithJar(t *testing.T) *http.Client {
	t.Helper()
	jar, err := newCookieJar()
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func TestHandleMessage(t *testing.T) {
	t.Parallel()

	model := &fakeModel{reply: &gemini.Reply{Text: "I build Go services."}}
	srv := newTestServer(t, model, nil)
	client := clientWithJar(t)

	resp := postJSON(t, client, srv.URL+"/api/chat/message", ChatRequest{Text: "What do you do?"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Messages) != 2 {
		t.Fatalf("response has %d messages, want 2", len(body.Messages))
	}
	if body.Messages[1].Text != "I build Go services." {
		t.Errorf("reply text = %q", body.Messages[1].Text)
	}
	if body.Pending {
		t.Error("Pending = true in settled response")
	}
}

func TestHandleMessageBlankInput(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeModel{}, nil)
	client := clientWithJar(t)

	resp := postJSON(t, client, srv.URL+"/api/chat/message", ChatRequest{Text: "   "})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestHandleMessageBusy(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	model := &fakeModel{reply: &gemini.Reply{Text: "done"}, block: block}
	srv := newTestServer(t, model, nil)
	client := clientWithJar(t)

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		body := bytes.NewReader([]byte(`{"text":"first"}`))
		resp, err := client.Post(srv.URL+"/api/chat/message", "application/json", body)
		if err == nil {
			resp.Body.Close()
		}
	}()

	waitFor(t, func() bool { return model.callCount() == 1 })

	resp := postJSON(t, client, srv.URL+"/api/chat/message", ChatRequest{Text: "second"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("concurrent status = %d, want %d", resp.StatusCode, http.StatusTooManyRequests)
	}

	close(block)
	<-firstDone
}

func TestHandlePersona(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeModel{}, nil)
	client := clientWithJar(t)

	resp := postJSON(t, client, srv.URL+"/api/chat/persona", PersonaRequest{Persona: string(domain.PersonaMentor)})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var body ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Persona != string(domain.PersonaMentor) {
		t.Errorf("persona = %q, want %q", body.Persona, domain.PersonaMentor)
	}
	if len(body.Messages) != 1 {
		t.Errorf("response has %d messages, want 1 switch notice", len(body.Messages))
	}
}

func TestHandlePersonaUnknown(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeModel{}, nil)
	client := clientWithJar(t)

	resp := postJSON(t, client, srv.URL+"/api/chat/persona", PersonaRequest{Persona: "villain"})
	resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestHandleHistoryAndReset(t *testing.T) {
	t.Parallel()

	model := &fakeModel{reply: &gemini.Reply{Text: "hello back"}}
	srv := newTestServer(t, model, nil)
	client := clientWithJar(t)

	resp := postJSON(t, client, srv.URL+"/api/chat/message", ChatRequest{Text: "hello"})
	resp.Body.Close()

	histResp, err := client.Get(srv.URL + "/api/chat/history")
	if err != nil {
		t.Fatalf("GET history: %v", err)
	}
	var history HistoryResponse
	if err := json.NewDecoder(histResp.Body).Decode(&history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	histResp.Body.Close()

	if len(history.Messages) != 2 {
		t.Fatalf("history has %d messages, want 2", len(history.Messages))
	}
	if len(history.Personas) != len(domain.Personas()) {
		t.Errorf("history lists %d personas, want %d", len(history.Personas), len(domain.Personas()))
	}

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/chat/history", nil)
	if err != nil {
		t.Fatalf("build DELETE request: %v", err)
	}
	delResp, err := client.Do(req)
	if err != nil {
		t.Fatalf("DELETE history: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want %d", delResp.StatusCode, http.StatusNoContent)
	}

	histResp, err = client.Get(srv.URL + "/api/chat/history")
	if err != nil {
		t.Fatalf("GET history after reset: %v", err)
	}
	history = HistoryResponse{}
	if err := json.NewDecoder(histResp.Body).Decode(&history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	histResp.Body.Close()
	if len(history.Messages) != 0 {
		t.Errorf("history has %d messages after reset, want 0", len(history.Messages))
	}
}

func TestHandleSpeak(t *testing.T) {
	t.Parallel()

	pcm := []byte{0x00, 0x40, 0x00, 0xC0}
	srv := newTestServer(t, &fakeModel{}, &fakeSpeech{pcm: pcm})
	client := clientWithJar(t)

	resp := postJSON(t, client, srv.URL+"/api/chat/speak", SpeakRequest{Text: "hello"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "audio/wav" {
		t.Errorf("Content-Type = %q, want audio/wav", ct)
	}
}

func TestHandleSpeakSynthesisFailureAnswers204(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeModel{}, &fakeSpeech{err: errors.New("voice model down")})
	client := clientWithJar(t)

	resp := postJSON(t, client, srv.URL+"/api/chat/speak", SpeakRequest{Text: "hello"})
	resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
}

func TestHandleSpeakWithoutSynthesizerAnswers204(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeModel{}, nil)
	client := clientWithJar(t)

	resp := postJSON(t, client, srv.URL+"/api/chat/speak", SpeakRequest{Text: "hello"})
	resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
}

func TestRateLimitExceeded(t *testing.T) {
	t.Parallel()

	sessions := NewSessionStore(newFakeRepo())
	manager := NewManager(&fakeModel{reply: &gemini.Reply{Text: "ok"}}, sessions, &fakeNotifier{}, "alex@alextech.dev", time.Minute)
	handler := NewHandler(manager, nil, gemini.SpeechSampleRate, NewRateLimiter(2, time.Minute))

	r := chi.NewRouter()
	r.Use(identity.Middleware(true))
	handler.RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	client := clientWithJar(t)
	for i := 0; i < 2; i++ {
		resp := postJSON(t, client, srv.URL+"/api/chat/message", ChatRequest{Text: "hello"})
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d status = %d, want %d", i+1, resp.StatusCode, http.StatusOK)
		}
	}

	resp := postJSON(t, client, srv.URL+"/api/chat/message", ChatRequest{Text: "one too many"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusTooManyRequests)
	}
}
