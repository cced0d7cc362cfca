// Package portfolio wires the portfolio content, the prompt builders and the
// Gemini gateway into the assistant the site's chat widgets talk to.
package portfolio

import (
	"context"
	"fmt"

	"github.com/Mohamed-Adam-Jemal/Portfolio/content"
	"github.com/Mohamed-Adam-Jemal/Portfolio/models"
	"github.com/Mohamed-Adam-Jemal/Portfolio/prompts"
	"github.com/Mohamed-Adam-Jemal/Portfolio/sessions"
	"github.com/google/uuid"
)

// Model is the streaming gateway the assistant relays questions through.
type Model interface {
	Stream_Model_Request(ctx context.Context, message string, systemPrompt string, history []models.Turn) (<-chan string, <-chan error)
}

// Assistant answers questions about the portfolio by building the system
// instruction for the requested context and streaming the provider's reply.
type Assistant struct {
	Model   Model
	Content *content.Content
	Prompts *prompts.Builder
}

// Create_Assistant ties a model gateway to the portfolio content.
func Create_Assistant(model Model, c *content.Content) *Assistant {
	return &Assistant{
		Model:   model,
		Content: c,
		Prompts: prompts.NewBuilder(c),
	}
}

// Run_Stream relays one whole-portfolio question. The system instruction is
// built fresh from the content for every call.
func (a *Assistant) Run_Stream(ctx context.Context, message string, history []models.Turn) (<-chan string, <-chan error) {
	return a.Model.Stream_Model_Request(ctx, message, a.Prompts.AssistantPrompt(), history)
}

// Run_Project_Stream relays one question scoped to a single project.
func (a *Assistant) Run_Project_Stream(ctx context.Context, project content.Project, message string, history []models.Turn) (<-chan string, <-chan error) {
	return a.Model.Stream_Model_Request(ctx, message, a.Prompts.ProjectPrompt(project), history)
}

// NewSession opens a stateful conversation for the general assistant, seeded
// with the widget's welcome message. The system instruction is fixed for the
// life of the session.
func (a *Assistant) NewSession() *sessions.ChatSession {
	session := sessions.NewChatSession(uuid.NewString(), a.Model, a.Prompts.AssistantPrompt())
	if a.Content.Assistant.InitialMessage != "" {
		session.Greet(a.Content.Assistant.InitialMessage)
	}
	return session
}

// NewProjectSession opens a stateful conversation scoped to one project.
func (a *Assistant) NewProjectSession(project content.Project) *sessions.ChatSession {
	session := sessions.NewChatSession(uuid.NewString(), a.Model, a.Prompts.ProjectPrompt(project))
	session.Greet(fmt.Sprintf("Hi! I'm here to help you learn more about the \"%s\" project. You can ask me anything about the technologies used, the implementation details, challenges faced, or any other aspects of this project. What would you like to know?", project.Title))
	return session
}
