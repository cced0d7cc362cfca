package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	models "github.com/Mohamed-Adam-Jemal/Portfolio/models"
	"github.com/joho/godotenv"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// ErrMissingAPIKey is returned before any request is made when the provider
// credential is absent. There is no fallback key.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY environment variable not set")

func init() {
	// Load .env file if it exists (not present in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

// Gemini_Model is the gateway to the Gemini streaming API. The zero value
// uses gemini-2.0-flash-exp against the public endpoint with default
// generation parameters.
type Gemini_Model struct {
	Model  string                  `json:"model"`
	Config models.GenerationConfig `json:"generation_config"`

	// BaseURL overrides the API host, for tests.
	BaseURL string `json:"-"`
}

// Stream_Model_Request opens one chat exchange: the request is seeded with
// the system prompt and prior turns, then message is submitted and the reply
// is delivered as a stream of text fragments on the returned channel.
//
// The stream is single-pass and forward-only. A failure before the first
// byte surfaces as a single error with no fragments; a failure mid-stream
// surfaces after whatever fragments were already delivered. Both channels
// are closed when the exchange ends either way.
func (g *Gemini_Model) Stream_Model_Request(ctx context.Context, message string, systemPrompt string, history []models.Turn) (<-chan string, <-chan error) {
	if strings.TrimSpace(message) == "" {
		return failedStream(fmt.Errorf("request must contain a user message"))
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return failedStream(ErrMissingAPIKey)
	}

	request_body, err := create_gemini_request(message, systemPrompt, history, g.Config)
	if err != nil {
		return failedStream(fmt.Errorf("failed to create gemini stream request body: %w", err))
	}

	jsonBytes, err := json.Marshal(request_body)
	if err != nil {
		return failedStream(fmt.Errorf("failed to marshal stream request body: %w", err))
	}

	modelToUse := g.Model
	if modelToUse == "" {
		modelToUse = "gemini-2.0-flash-exp"
	}
	baseURL := g.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return make_request_stream(ctx, baseURL, modelToUse, apiKey, string(jsonBytes))
}

// failedStream returns the pre-stream error shape: a single terminal error
// and no fragments.
func failedStream(err error) (<-chan string, <-chan error) {
	errChan := make(chan error, 1)
	fragChan := make(chan string)
	errChan <- err
	close(errChan)
	close(fragChan)
	return fragChan, errChan
}

// make_request_stream POSTs to streamGenerateContent and decodes the JSON
// array response incrementally, emitting each chunk's text as soon as it is
// decoded rather than waiting for the closing bracket.
func make_request_stream(ctx context.Context, baseURL, model, apiKey, request_body string) (<-chan string, <-chan error) {
	fragChan := make(chan string)
	errChan := make(chan error, 1) // Buffered error channel

	go func() {
		defer close(fragChan)
		defer close(errChan)

		url := fmt.Sprintf("%s/v1beta/models/%s:streamGenerateContent?key=%s", baseURL, model, apiKey)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(request_body))
		if err != nil {
			errChan <- fmt.Errorf("error creating stream request: %w", err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			errChan <- fmt.Errorf("error making POST request: %w", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			bodyBytes, _ := io.ReadAll(resp.Body) // Read body for error details
			errChan <- fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(bodyBytes))
			return
		}

		decoder := json.NewDecoder(resp.Body)

		// Read the opening bracket `[`
		t, err := decoder.Token()
		if err != nil {
			errChan <- fmt.Errorf("error reading opening bracket: %w", err)
			return
		}
		if delim, ok := t.(json.Delim); !ok || delim != '[' {
			remainingBody, _ := io.ReadAll(io.MultiReader(decoder.Buffered(), resp.Body))
			errChan <- fmt.Errorf("expected '[' at start of stream, got %T: %v. Body: %s", t, t, string(remainingBody))
			return
		}

		// Decode each object in the array
		for decoder.More() {
			var response Gemini_response
			if err := decoder.Decode(&response); err != nil {
				errChan <- fmt.Errorf("error decoding JSON object in stream: %w", err)
				return // Stop processing on decode error; delivered fragments stand
			}
			if text := response.Text(); text != "" {
				select {
				case fragChan <- text:
				case <-ctx.Done():
					errChan <- ctx.Err()
					return
				}
			}
		}

		// Read the closing bracket `]` - EOF is tolerated here
		t, err = decoder.Token()
		if err != nil && err != io.EOF {
			errChan <- fmt.Errorf("error reading closing bracket: %w", err)
			return
		}
		if err != io.EOF {
			if delim, ok := t.(json.Delim); !ok || delim != ']' {
				errChan <- fmt.Errorf("expected ']' at end of stream, got %T: %v", t, t)
				return
			}
		}
	}()

	return fragChan, errChan
}

// create_gemini_request assembles the request body: replayed history, the
// new user message, the system instruction and the generation parameters.
// Off-protocol turns (UI-only roles, empty text) are never forwarded.
func create_gemini_request(message string, systemPrompt string, history []models.Turn, cfg models.GenerationConfig) (Gemini_Request_Body, error) {
	allContents := []Gemini_Content{}

	for _, turn := range history {
		if turn.Role != models.RoleUser && turn.Role != models.RoleModel {
			log.Printf("Warning: skipping history turn with unknown role '%s'", turn.Role)
			continue
		}
		if strings.TrimSpace(turn.Text) == "" {
			continue
		}
		allContents = append(allContents, Gemini_Content{
			Role:  turn.Role,
			Parts: []Request_Part{{Text: turn.Text}},
		})
	}

	allContents = append(allContents, Gemini_Content{
		Role:  models.RoleUser,
		Parts: []Request_Part{{Text: message}},
	})

	var systemInstruction *SystemInstruction
	if systemPrompt != "" {
		systemInstruction = &SystemInstruction{
			Parts: []SystemPart{{Text: systemPrompt}},
		}
	}

	request_body := Gemini_Request_Body{
		Contents:          allContents,
		SystemInstruction: systemInstruction,
		GenerationConfig: &GenerationConfig{
			Temperature:      cfg.Temperature,
			TopP:             cfg.TopP,
			TopK:             cfg.TopK,
			MaxOutputTokens:  cfg.MaxOutputTokens,
			ResponseMimeType: cfg.ResponseMimeType,
		},
	}

	return request_body, nil
}
