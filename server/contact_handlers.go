package server

import (
	"net/http"

	"github.com/Mohamed-Adam-Jemal/Portfolio/models"
	"github.com/gin-gonic/gin"
)

// handleContactMessage accepts a contact-form submission and persists it.
// Fire-and-forget from the site's point of view: the reply only says whether
// the message was stored.
func (s *Server) handleContactMessage(c *gin.Context) {
	var req models.Contact_Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Contact_Response{
			Success: false,
			Error:   "username, email and message are required",
		})
		return
	}

	if err := s.Store.SaveMessage(req.Username, req.Email, req.Message); err != nil {
		s.Logger.Printf("Error saving message: %v", err)
		c.JSON(http.StatusInternalServerError, models.Contact_Response{
			Success: false,
			Error:   "Failed to send message. Please try again later.",
		})
		return
	}

	s.Logger.Printf("Message saved from %s <%s>", req.Username, req.Email)
	c.JSON(http.StatusOK, models.Contact_Response{
		Success: true,
		Message: "Message sent successfully!",
	})
}
