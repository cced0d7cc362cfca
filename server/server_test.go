package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	portfolio "github.com/Mohamed-Adam-Jemal/Portfolio"
	"github.com/Mohamed-Adam-Jemal/Portfolio/content"
	"github.com/Mohamed-Adam-Jemal/Portfolio/models"
	"github.com/Mohamed-Adam-Jemal/Portfolio/models/gemini"
	"github.com/Mohamed-Adam-Jemal/Portfolio/sessions"
	"github.com/Mohamed-Adam-Jemal/Portfolio/stores"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// fakeModel streams scripted fragments and records what it was asked.
type fakeModel struct {
	mu        sync.Mutex
	fragments []string
	err       error

	lastMessage string
	lastPrompt  string
	lastHistory []models.Turn
}

func (m *fakeModel) Stream_Model_Request(ctx context.Context, message, systemPrompt string, history []models.Turn) (<-chan string, <-chan error) {
	m.mu.Lock()
	m.lastMessage = message
	m.lastPrompt = systemPrompt
	m.lastHistory = append([]models.Turn(nil), history...)
	fragments := append([]string(nil), m.fragments...)
	err := m.err
	m.mu.Unlock()

	fragChan := make(chan string)
	errChan := make(chan error, 1)
	go func() {
		defer close(fragChan)
		defer close(errChan)
		for _, f := range fragments {
			fragChan <- f
		}
		if err != nil {
			errChan <- err
		}
	}()
	return fragChan, errChan
}

func (m *fakeModel) last() (string, string, []models.Turn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastMessage, m.lastPrompt, m.lastHistory
}

// memoryStore is an in-process ContactStore for handler tests.
type memoryStore struct {
	mu       sync.Mutex
	saved    []stores.ContactMessage
	failSave bool
	failPing bool
}

func (s *memoryStore) SaveMessage(username, email, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave {
		return errMemoryStore
	}
	s.saved = append(s.saved, stores.ContactMessage{Username: username, Email: email, Message: message})
	return nil
}

func (s *memoryStore) ListMessages(limit int) ([]stores.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := append([]stores.ContactMessage(nil), s.saved...)
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

func (s *memoryStore) PruneOlderThan(cutoff time.Time) (int64, error) { return 0, nil }
func (s *memoryStore) Connect() error                                 { return nil }
func (s *memoryStore) Close() error                                   { return nil }

func (s *memoryStore) Ping() error {
	if s.failPing {
		return errMemoryStore
	}
	return nil
}

var errMemoryStore = errors.New("store offline")

func newTestServer(t *testing.T, model portfolio.Model) (*Server, *memoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	assistant := portfolio.Create_Assistant(model, content.MustLoad())
	store := &memoryStore{}
	return New(assistant, store, 5*time.Second), store
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestChat_StreamsFragments(t *testing.T) {
	model := &fakeModel{fragments: []string{"React ", "and MongoDB."}}
	s, _ := newTestServer(t, model)

	w := postJSON(t, s.Router(), "/api/v1/chat", models.Chat_Request{
		Message: "What technologies were used?",
		History: []models.Turn{models.UserTurn("hi"), models.ModelTurn("hello")},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Body.String(); got != "React and MongoDB." {
		t.Errorf("Expected concatenated fragments, got %q", got)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Expected text/plain response, got %q", ct)
	}

	message, prompt, history := model.last()
	if message != "What technologies were used?" {
		t.Errorf("Message not forwarded: %q", message)
	}
	if !strings.Contains(prompt, "portfolio assistant") {
		t.Error("Expected the whole-portfolio system instruction")
	}
	if len(history) != 2 {
		t.Errorf("History not forwarded: %+v", history)
	}
}

func TestChat_RejectsEmptyMessage(t *testing.T) {
	s, _ := newTestServer(t, &fakeModel{})

	w := postJSON(t, s.Router(), "/api/v1/chat", models.Chat_Request{Message: "   "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty message, got %d", w.Code)
	}
}

func TestChat_RejectsMalformedBody(t *testing.T) {
	s, _ := newTestServer(t, &fakeModel{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	s.Router().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed body, got %d", w.Code)
	}
}

func TestChat_UpstreamFailureBeforeFirstByte(t *testing.T) {
	model := &fakeModel{err: errMemoryStore}
	s, _ := newTestServer(t, model)

	w := postJSON(t, s.Router(), "/api/v1/chat", models.Chat_Request{Message: "hello"})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("Expected 502, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "failed to fetch AI response") {
		t.Errorf("Unexpected error body: %s", w.Body.String())
	}
}

func TestChat_MissingAPIKey(t *testing.T) {
	model := &fakeModel{err: gemini.ErrMissingAPIKey}
	s, _ := newTestServer(t, model)

	w := postJSON(t, s.Router(), "/api/v1/chat", models.Chat_Request{Message: "hello"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500 for missing key, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "assistant is not configured") {
		t.Errorf("Unexpected error body: %s", w.Body.String())
	}
}

func TestChat_MidStreamFailureLeavesPartialBody(t *testing.T) {
	model := &fakeModel{fragments: []string{"partial"}, err: errMemoryStore}
	s, _ := newTestServer(t, model)

	w := postJSON(t, s.Router(), "/api/v1/chat", models.Chat_Request{Message: "hello"})
	// Streaming had begun, so the status is already 200 and the delivered
	// fragments stand.
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 after partial delivery, got %d", w.Code)
	}
	if got := w.Body.String(); got != "partial" {
		t.Errorf("Expected only the delivered fragment, got %q", got)
	}
}

func TestProjectChat_ScopesPromptToProject(t *testing.T) {
	model := &fakeModel{fragments: []string{"ok"}}
	s, _ := newTestServer(t, model)

	project, ok := s.Assistant.Content.ProjectByOrder(1)
	if !ok {
		t.Fatal("Expected project with order 1 in embedded content")
	}

	w := postJSON(t, s.Router(), "/api/v1/projects/1/chat", models.Project_Chat_Request{Message: "tell me more"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	_, prompt, _ := model.last()
	if !strings.Contains(prompt, project.Title) {
		t.Errorf("Expected project-scoped system instruction mentioning %q", project.Title)
	}
}

func TestProjectChat_UnknownProject(t *testing.T) {
	s, _ := newTestServer(t, &fakeModel{})
	router := s.Router()

	w := postJSON(t, router, "/api/v1/projects/999/chat", models.Project_Chat_Request{Message: "hi"})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown project, got %d", w.Code)
	}

	w = postJSON(t, router, "/api/v1/projects/abc/chat", models.Project_Chat_Request{Message: "hi"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for non-numeric project id, got %d", w.Code)
	}
}

func TestContact_SavesMessage(t *testing.T) {
	s, store := newTestServer(t, &fakeModel{})

	w := postJSON(t, s.Router(), "/api/v1/messages", models.Contact_Request{
		Username: "Visitor",
		Email:    "visitor@example.com",
		Message:  "Interested in collaborating.",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp models.Contact_Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success || resp.Message != "Message sent successfully!" {
		t.Errorf("Unexpected response: %+v", resp)
	}

	if len(store.saved) != 1 || store.saved[0].Email != "visitor@example.com" {
		t.Errorf("Message not persisted: %+v", store.saved)
	}
}

func TestContact_RejectsIncompleteBody(t *testing.T) {
	s, store := newTestServer(t, &fakeModel{})

	w := postJSON(t, s.Router(), "/api/v1/messages", models.Contact_Request{Username: "NoEmail"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for incomplete body, got %d", w.Code)
	}
	if len(store.saved) != 0 {
		t.Errorf("Incomplete message must not be persisted")
	}
}

func TestContact_StoreFailure(t *testing.T) {
	s, store := newTestServer(t, &fakeModel{})
	store.failSave = true

	w := postJSON(t, s.Router(), "/api/v1/messages", models.Contact_Request{
		Username: "Visitor",
		Email:    "visitor@example.com",
		Message:  "hello",
	})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500 on store failure, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Failed to send message. Please try again later.") {
		t.Errorf("Unexpected error body: %s", w.Body.String())
	}
}

func TestContentEndpoints(t *testing.T) {
	s, _ := newTestServer(t, &fakeModel{})
	router := s.Router()

	for path, want := range map[string]string{
		"/api/v1/profile":      s.Assistant.Content.Personal.Name,
		"/api/v1/projects":     "projects",
		"/api/v1/skills":       "categories",
		"/api/v1/certificates": "certificates",
		"/api/v1/assistant":    "initialMessage",
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), want) {
			t.Errorf("%s: body missing %q", path, want)
		}
	}
}

func TestHealth(t *testing.T) {
	s, store := newTestServer(t, &fakeModel{})
	router := s.Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}

	store.failPing = true
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 when the store is down, got %d", w.Code)
	}
}

func TestChatWS_RunsExchange(t *testing.T) {
	model := &fakeModel{fragments: []string{"React ", "and MongoDB."}}
	s, _ := newTestServer(t, model)

	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/chat/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	// The welcome turn arrives before any input.
	var welcome models.WS_Chat_Event
	if err := conn.ReadJSON(&welcome); err != nil {
		t.Fatalf("Failed to read welcome frame: %v", err)
	}
	if welcome.Type != models.WSEventWelcome || welcome.Text == "" {
		t.Fatalf("Unexpected welcome frame: %+v", welcome)
	}

	if err := conn.WriteJSON(models.WS_Chat_Message{Message: "What technologies were used?"}); err != nil {
		t.Fatalf("Failed to send message: %v", err)
	}

	var types []string
	var done models.WS_Chat_Event
	for {
		var event models.WS_Chat_Event
		if err := conn.ReadJSON(&event); err != nil {
			t.Fatalf("Failed to read event (got %v so far): %v", types, err)
		}
		types = append(types, event.Type)
		if event.Type == models.WSEventDone || event.Type == models.WSEventError {
			done = event
			break
		}
	}

	want := []string{models.WSEventTyping, models.WSEventChunk, models.WSEventChunk, models.WSEventDone}
	if len(types) != len(want) {
		t.Fatalf("Expected events %v, got %v", want, types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("Event %d: expected %q, got %q", i, want[i], types[i])
		}
	}
	if done.Text != "React and MongoDB." {
		t.Errorf("Expected full reply in done frame, got %q", done.Text)
	}
}

func TestChatWS_FailedExchangeSendsFallback(t *testing.T) {
	model := &fakeModel{err: errMemoryStore}
	s, _ := newTestServer(t, model)

	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/chat/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var welcome models.WS_Chat_Event
	if err := conn.ReadJSON(&welcome); err != nil {
		t.Fatalf("Failed to read welcome frame: %v", err)
	}

	if err := conn.WriteJSON(models.WS_Chat_Message{Message: "hello"}); err != nil {
		t.Fatalf("Failed to send message: %v", err)
	}

	var typing, failed models.WS_Chat_Event
	if err := conn.ReadJSON(&typing); err != nil {
		t.Fatalf("Failed to read typing frame: %v", err)
	}
	if typing.Type != models.WSEventTyping {
		t.Fatalf("Expected typing frame, got %+v", typing)
	}
	if err := conn.ReadJSON(&failed); err != nil {
		t.Fatalf("Failed to read error frame: %v", err)
	}
	if failed.Type != models.WSEventError {
		t.Fatalf("Expected error frame, got %+v", failed)
	}
	if failed.Text != sessions.DefaultFallback {
		t.Errorf("Expected the fallback text in the error frame, got %q", failed.Text)
	}

	// The session recovers: the next exchange streams normally.
	model.mu.Lock()
	model.err = nil
	model.fragments = []string{"recovered"}
	model.mu.Unlock()

	if err := conn.WriteJSON(models.WS_Chat_Message{Message: "try again"}); err != nil {
		t.Fatalf("Failed to send message: %v", err)
	}
	var types []string
	for {
		var event models.WS_Chat_Event
		if err := conn.ReadJSON(&event); err != nil {
			t.Fatalf("Failed to read event (got %v so far): %v", types, err)
		}
		types = append(types, event.Type)
		if event.Type == models.WSEventDone {
			if event.Text != "recovered" {
				t.Errorf("Expected the new reply in the done frame, got %q", event.Text)
			}
			return
		}
		if event.Type == models.WSEventError {
			t.Fatalf("Exchange after a failure must succeed, got error frame (events %v)", types)
		}
	}
}
