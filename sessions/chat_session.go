package sessions

import (
	"context"
	"errors"
	"strings"

	"github.com/Mohamed-Adam-Jemal/Portfolio/models"
)

// DefaultFallback is the canned reply shown when an exchange fails. It is
// appended to the visible transcript only and never replayed to the provider.
const DefaultFallback = "I apologize, but I'm having trouble connecting right now. Please try again in a moment, or feel free to contact Adam directly at mohamed.adam.jemal@gmail.com."

var (
	// ErrEmptyMessage rejects empty or whitespace-only input before any
	// network call. No state changes.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrBusy rejects a submission while an exchange is already in flight.
	ErrBusy = errors.New("an exchange is already in flight")
)

// Greet appends a welcome turn to the visible transcript. Welcome turns are
// decoration: they never enter the history replayed to the provider.
func (s *ChatSession) Greet(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, models.ModelTurn(text))
}

// Send runs one exchange: Idle -> Awaiting -> Streaming -> Idle.
//
// On success the accumulated fragments are committed as one model turn and
// the [user, model] pair is appended to the replay history. On failure the
// session still ends Idle: nothing is committed to history, and the visible
// transcript gains either the fallback turn (no fragments delivered) or the
// partial text (mid-stream failure). Events are mirrored to w when non-nil.
func (s *ChatSession) Send(ctx context.Context, message string, w EventWriter) error {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return ErrBusy
	}
	s.state = StateAwaiting
	epoch := s.epoch
	history := append([]models.Turn(nil), s.history...)
	s.transcript = append(s.transcript, models.UserTurn(trimmed))
	s.mu.Unlock()

	if w != nil {
		if err := w.WriteTyping(); err != nil {
			s.Logger.Printf("Error writing typing event: %v", err)
		}
	}

	fragChan, errChan := s.Model.Stream_Model_Request(ctx, trimmed, s.SystemPrompt, history)

	var buffer strings.Builder // fragments of the in-flight model turn
	var streamErr error

	for fragChan != nil || errChan != nil {
		select {
		case frag, ok := <-fragChan:
			if !ok {
				fragChan = nil
				continue
			}
			if buffer.Len() == 0 {
				s.setStreaming(epoch)
			}
			buffer.WriteString(frag)
			if w != nil {
				if err := w.WriteChunk(frag); err != nil {
					s.Logger.Printf("Error writing stream chunk: %v", err)
				}
			}

		case err, ok := <-errChan:
			if !ok {
				errChan = nil
				continue
			}
			if err != nil {
				streamErr = err
			}
			errChan = nil
		}

		if streamErr != nil {
			break
		}
	}

	return s.finish(trimmed, buffer.String(), streamErr, epoch, w)
}

// finish commits or discards the exchange and returns the session to Idle.
func (s *ChatSession) finish(userText, modelText string, streamErr error, epoch int, w EventWriter) error {
	s.mu.Lock()
	stale := epoch != s.epoch
	if !stale {
		s.state = StateIdle
		switch {
		case streamErr == nil:
			s.transcript = append(s.transcript, models.ModelTurn(modelText))
			s.history = append(s.history, models.UserTurn(userText), models.ModelTurn(modelText))
		case modelText == "":
			// Failed before the first fragment: fallback turn, transcript only.
			s.transcript = append(s.transcript, models.ModelTurn(s.fallback()))
		default:
			// Mid-stream failure: partial text stays visible, nothing replayed.
			s.transcript = append(s.transcript, models.ModelTurn(modelText))
		}
	}
	s.mu.Unlock()

	if stale {
		// Session was reset while the exchange was in flight; the result has
		// no UI to land in.
		s.Logger.Printf("Discarding result of stale exchange")
		return nil
	}

	if streamErr == nil {
		if w != nil {
			if err := w.WriteDone(modelText); err != nil {
				s.Logger.Printf("Error writing done event: %v", err)
			}
		}
		return nil
	}

	s.Logger.Printf("Stream error: %v", streamErr)
	if w != nil {
		fallback := ""
		if modelText == "" {
			fallback = s.fallback()
		}
		if err := w.WriteError(fallback); err != nil {
			s.Logger.Printf("Error writing error event: %v", err)
		}
	}
	return &ChatError{Message: "chat stream error: " + streamErr.Error(), Fatal: false}
}

// Reset discards the transcript, the replay history and the result of any
// in-flight exchange. The session is usable again immediately.
func (s *ChatSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.state = StateIdle
	s.transcript = nil
	s.history = nil
}

// State returns the current exchange state.
func (s *ChatSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Transcript returns a copy of the visible turns, welcome and fallback
// turns included.
func (s *ChatSession) Transcript() []models.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Turn(nil), s.transcript...)
}

// History returns a copy of the committed turns replayed to the provider.
func (s *ChatSession) History() []models.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Turn(nil), s.history...)
}

// setStreaming marks the exchange as streaming, unless the session was reset
// while the exchange was in flight; a stale exchange must not touch the state
// a reset already returned to Idle.
func (s *ChatSession) setStreaming(epoch int) {
	s.mu.Lock()
	if epoch == s.epoch {
		s.state = StateStreaming
	}
	s.mu.Unlock()
}

func (s *ChatSession) fallback() string {
	if s.Fallback != "" {
		return s.Fallback
	}
	return DefaultFallback
}
