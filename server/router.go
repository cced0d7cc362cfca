// Package server exposes the portfolio backend over HTTP: the streaming
// assistant endpoints, the content data and the contact relay.
package server

import (
	"log"
	"net/http"
	"os"
	"time"

	portfolio "github.com/Mohamed-Adam-Jemal/Portfolio"
	"github.com/Mohamed-Adam-Jemal/Portfolio/stores"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Server holds the handler dependencies.
type Server struct {
	Assistant     *portfolio.Assistant
	Store         stores.ContactStore
	StreamTimeout time.Duration
	Logger        *log.Logger

	upgrader websocket.Upgrader
}

// New creates a server around an assistant and a contact store.
func New(assistant *portfolio.Assistant, store stores.ContactStore, streamTimeout time.Duration) *Server {
	return &Server{
		Assistant:     assistant,
		Store:         store,
		StreamTimeout: streamTimeout,
		Logger:        log.New(os.Stdout, "[HTTP] ", log.LstdFlags),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The widget is served from the same origin in production; the
			// check is relaxed so local dev against a separate frontend works.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()

	router.GET("/healthz", s.handleHealth)

	r := router.Group("/api/v1")

	// Assistant
	r.POST("/chat", s.handleChat)
	r.GET("/chat/ws", s.handleChatWS)
	r.POST("/projects/:order/chat", s.handleProjectChat)
	r.GET("/projects/:order/chat/ws", s.handleProjectChatWS)

	// Content
	r.GET("/profile", s.handleProfile)
	r.GET("/projects", s.handleProjects)
	r.GET("/skills", s.handleSkills)
	r.GET("/certificates", s.handleCertificates)
	r.GET("/assistant", s.handleAssistantInfo)

	// Contact relay
	r.POST("/messages", s.handleContactMessage)

	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.Store.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
