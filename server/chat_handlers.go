package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Mohamed-Adam-Jemal/Portfolio/content"
	"github.com/Mohamed-Adam-Jemal/Portfolio/models"
	"github.com/Mohamed-Adam-Jemal/Portfolio/models/gemini"
	"github.com/Mohamed-Adam-Jemal/Portfolio/sessions"
	"github.com/gin-gonic/gin"
)

// handleChat relays one whole-portfolio question. The reply is streamed as
// plain concatenable UTF-8 text, flushed fragment by fragment.
func (s *Server) handleChat(c *gin.Context) {
	var req models.Chat_Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	if !models.ValidHistory(req.History) {
		// Unknown-role and blank turns are dropped downstream; anything else
		// is forwarded as-is and left to the provider.
		s.Logger.Printf("Request history is not an alternating user/model sequence")
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.StreamTimeout)
	defer cancel()

	fragChan, errChan := s.Assistant.Run_Stream(ctx, req.Message, req.History)
	s.streamText(c, fragChan, errChan)
}

// handleProjectChat relays one question scoped to the project named in the
// path. Same streamed response shape as the general endpoint.
func (s *Server) handleProjectChat(c *gin.Context) {
	project, ok := s.projectFromPath(c)
	if !ok {
		return
	}

	var req models.Project_Chat_Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	if !models.ValidHistory(req.History) {
		s.Logger.Printf("Request history is not an alternating user/model sequence")
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.StreamTimeout)
	defer cancel()

	fragChan, errChan := s.Assistant.Run_Project_Stream(ctx, project, req.Message, req.History)
	s.streamText(c, fragChan, errChan)
}

// streamText forwards fragments to the response body in delivery order.
// Failures before the first byte become a JSON error; once streaming has
// started the body simply ends and the fragments already written stand.
func (s *Server) streamText(c *gin.Context, fragChan <-chan string, errChan <-chan error) {
	wrote := false

	for fragChan != nil || errChan != nil {
		select {
		case frag, ok := <-fragChan:
			if !ok {
				fragChan = nil
				continue
			}
			if !wrote {
				c.Header("Content-Type", "text/plain; charset=utf-8")
				c.Header("Cache-Control", "no-cache")
				c.Status(http.StatusOK)
				wrote = true
			}
			if _, err := c.Writer.WriteString(frag); err != nil {
				s.Logger.Printf("Error writing stream fragment: %v", err)
				return
			}
			c.Writer.Flush()

		case err, ok := <-errChan:
			if !ok {
				errChan = nil
				continue
			}
			if err == nil {
				continue
			}
			if wrote {
				// Mid-stream failure: delivered fragments are already on the
				// wire and remain valid for the caller.
				s.Logger.Printf("Stream aborted after partial delivery: %v", err)
				return
			}
			s.Logger.Printf("Stream failed before first fragment: %v", err)
			if errors.Is(err, gemini.ErrMissingAPIKey) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "assistant is not configured"})
			} else {
				c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch AI response"})
			}
			return

		case <-c.Request.Context().Done():
			s.Logger.Printf("Client disconnected during stream")
			return
		}
	}
}

// handleChatWS runs a stateful conversation over a WebSocket. The server
// holds the history; the client only sends messages and renders events.
func (s *Server) handleChatWS(c *gin.Context) {
	s.serveSession(c, s.Assistant.NewSession())
}

// handleProjectChatWS runs a per-project dialog session.
func (s *Server) handleProjectChatWS(c *gin.Context) {
	project, ok := s.projectFromPath(c)
	if !ok {
		return
	}
	s.serveSession(c, s.Assistant.NewProjectSession(project))
}

func (s *Server) serveSession(c *gin.Context, session *sessions.ChatSession) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	// Closing the socket discards the conversation; there is no persistence
	// across sessions.
	defer session.Reset()

	writer := sessions.NewWebSocketWriter(session.SessionID, conn)

	for _, turn := range session.Transcript() {
		if err := conn.WriteJSON(models.WS_Chat_Event{Type: models.WSEventWelcome, Text: turn.Text}); err != nil {
			s.Logger.Printf("Error writing welcome event: %v", err)
			return
		}
	}

	for {
		var msg models.WS_Chat_Message
		if err := conn.ReadJSON(&msg); err != nil {
			session.Logger.Printf("Session closed: %v", err)
			return
		}

		// Send blocks for the length of the exchange, so it runs off the read
		// loop; messages arriving while one is in flight are rejected by the
		// session's single-flight guard and dropped.
		go func(text string) {
			ctx, cancel := context.WithTimeout(context.Background(), s.StreamTimeout)
			defer cancel()

			err := session.Send(ctx, text, writer)
			switch {
			case err == nil:
			case errors.Is(err, sessions.ErrBusy), errors.Is(err, sessions.ErrEmptyMessage):
				session.Logger.Printf("Ignoring message: %v", err)
			default:
				session.Logger.Printf("Exchange failed: %v", err)
			}
		}(msg.Message)
	}
}

func (s *Server) projectFromPath(c *gin.Context) (content.Project, bool) {
	order, err := strconv.Atoi(c.Param("order"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return content.Project{}, false
	}
	project, ok := s.Assistant.Content.ProjectByOrder(order)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return content.Project{}, false
	}
	return project, true
}
