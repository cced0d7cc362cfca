package sessions

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

// NewChatSession creates a session for one logical conversation.
func NewChatSession(sessionID string, model Model, systemPrompt string) *ChatSession {
	logger := log.New(os.Stdout, fmt.Sprintf("[CHAT %s] ", sessionID), log.LstdFlags)

	return &ChatSession{
		SessionID:    sessionID,
		Model:        model,
		SystemPrompt: systemPrompt,
		Logger:       logger,
	}
}

// NewWebSocketWriter wraps a WebSocket connection as the session's event
// sink.
func NewWebSocketWriter(sessionID string, conn *websocket.Conn) *WebSocketWriter {
	logger := log.New(os.Stdout, fmt.Sprintf("[WS %s] ", sessionID), log.LstdFlags)
	return &WebSocketWriter{
		Conn:      conn,
		Logger:    logger,
		StartTime: time.Now(),
	}
}
