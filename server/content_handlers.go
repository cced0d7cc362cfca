package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The content endpoints serve the static data the site is rendered from.
// The same data feeds the prompt builders, so what the assistant says and
// what the page shows can never drift apart.

func (s *Server) handleProfile(c *gin.Context) {
	c.JSON(http.StatusOK, s.Assistant.Content.Personal)
}

func (s *Server) handleProjects(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"projects": s.Assistant.Content.Projects})
}

func (s *Server) handleSkills(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": s.Assistant.Content.Skills})
}

func (s *Server) handleCertificates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"certificates": s.Assistant.Content.Certificates})
}

func (s *Server) handleAssistantInfo(c *gin.Context) {
	c.JSON(http.StatusOK, s.Assistant.Content.Assistant)
}
