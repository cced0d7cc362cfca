package models

import "strings"

// Turn roles. A conversation replayed to the provider must strictly
// alternate user/model, starting with user.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is one committed message in a conversation.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// UserTurn and ModelTurn are shorthand constructors for committed turns.
func UserTurn(text string) Turn  { return Turn{Role: RoleUser, Text: text} }
func ModelTurn(text string) Turn { return Turn{Role: RoleModel, Text: text} }

// Chat_Request is the body of the general assistant endpoint. History holds
// the committed turns of previous exchanges; the client replays them so the
// server stays stateless.
type Chat_Request struct {
	Message string `json:"message"`
	History []Turn `json:"history"`
}

// Project_Chat_Request is the body of the per-project assistant endpoint.
type Project_Chat_Request struct {
	Message string `json:"message"`
	History []Turn `json:"history"`
}

// Contact_Request is the body of the contact relay endpoint.
type Contact_Request struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Message  string `json:"message" binding:"required"`
}

// WS_Chat_Message is one inbound frame on the WebSocket chat session.
type WS_Chat_Message struct {
	Message string `json:"message"`
}

// ValidHistory reports whether turns form a replayable sequence: starts with
// user, strictly alternates, and only carries protocol roles with text.
func ValidHistory(turns []Turn) bool {
	for i, t := range turns {
		if t.Role != RoleUser && t.Role != RoleModel {
			return false
		}
		if strings.TrimSpace(t.Text) == "" {
			return false
		}
		expected := RoleUser
		if i%2 == 1 {
			expected = RoleModel
		}
		if t.Role != expected {
			return false
		}
	}
	return true
}
