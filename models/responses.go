package models

// GenerationConfig holds the provider generation parameters. They are fixed
// per deployment and forwarded to the provider unmodified.
type GenerationConfig struct {
	Temperature      float64 `json:"temperature"`
	TopP             float64 `json:"topP"`
	TopK             int     `json:"topK"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMimeType string  `json:"responseMimeType"`
}

// DefaultGenerationConfig matches the deployment the site runs with.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Temperature:      0.7,
		TopP:             0.95,
		TopK:             40,
		MaxOutputTokens:  8192,
		ResponseMimeType: "text/plain",
	}
}

// WebSocket event frame types emitted by a chat session.
const (
	WSEventWelcome = "welcome"
	WSEventTyping  = "typing"
	WSEventChunk   = "chunk"
	WSEventDone    = "done"
	WSEventError   = "error"
)

// WS_Chat_Event is one outbound frame on the WebSocket chat session.
// Text carries the fragment for "chunk" frames, the full committed reply for
// "done" frames and the fallback message for "error" frames.
type WS_Chat_Event struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Contact_Response is the contact relay's reply shape.
type Contact_Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
