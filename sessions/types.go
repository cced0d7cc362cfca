package sessions

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Mohamed-Adam-Jemal/Portfolio/models"
	"github.com/gorilla/websocket"
)

// Model is the gateway a session streams replies through.
type Model interface {
	Stream_Model_Request(ctx context.Context, message string, systemPrompt string, history []models.Turn) (<-chan string, <-chan error)
}

// State is the session's exchange lifecycle. A session is Idle between
// exchanges, Awaiting from submission until the first fragment, and
// Streaming while fragments arrive.
type State int

const (
	StateIdle State = iota
	StateAwaiting
	StateStreaming
)

func (s State) String() string {
	switch s {
	case StateAwaiting:
		return "awaiting"
	case StateStreaming:
		return "streaming"
	default:
		return "idle"
	}
}

// ChatError represents errors that occur during a chat exchange.
type ChatError struct {
	Message string
	Fatal   bool
}

func (e *ChatError) Error() string {
	return e.Message
}

// EventWriter receives the user-visible events of one exchange. Implementors
// must tolerate being called from the session's goroutine.
type EventWriter interface {
	// WriteTyping marks the start of the Awaiting phase.
	WriteTyping() error
	// WriteChunk delivers one fragment; fragments arrive in delivery order.
	WriteChunk(text string) error
	// WriteDone marks a committed exchange with the full reply text.
	WriteDone(full string) error
	// WriteError ends a failed exchange. text is the fallback message when
	// nothing was delivered, or empty when partial text already stands.
	WriteError(text string) error
}

// ChatSession holds the turn state for one logical conversation: the visible
// transcript (which may contain welcome and fallback turns) and the replay
// history (only committed user/model pairs, the part the provider sees).
type ChatSession struct {
	SessionID    string
	Model        Model
	SystemPrompt string
	Fallback     string
	Logger       *log.Logger

	mu         sync.Mutex
	state      State
	epoch      int // bumped on Reset so a stale in-flight exchange commits nothing
	transcript []models.Turn
	history    []models.Turn
}

// WebSocketWriter emits session events as JSON frames on a WebSocket
// connection. Writes are serialized; the first chunk's latency is logged.
type WebSocketWriter struct {
	Conn             *websocket.Conn
	Logger           *log.Logger
	StartTime        time.Time
	FirstTokenTime   *time.Time
	FirstTokenLogged bool
	mu               sync.Mutex
}

func (w *WebSocketWriter) WriteTyping() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.StartTime = time.Now()
	w.FirstTokenTime = nil
	w.FirstTokenLogged = false
	return w.Conn.WriteJSON(models.WS_Chat_Event{Type: models.WSEventTyping})
}

func (w *WebSocketWriter) WriteChunk(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	// Track time to first token
	if !w.FirstTokenLogged && w.FirstTokenTime == nil && !w.StartTime.IsZero() {
		now := time.Now()
		w.FirstTokenTime = &now
		w.Logger.Printf("Time to first token: %v", now.Sub(w.StartTime))
		w.FirstTokenLogged = true
	}
	return w.Conn.WriteJSON(models.WS_Chat_Event{Type: models.WSEventChunk, Text: text})
}

func (w *WebSocketWriter) WriteDone(full string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Conn.WriteJSON(models.WS_Chat_Event{Type: models.WSEventDone, Text: full})
}

func (w *WebSocketWriter) WriteError(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Conn.WriteJSON(models.WS_Chat_Event{Type: models.WSEventError, Text: text})
}
