package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PleasantH/NutriPal-Chatbot/models"
)

// ChatService owns the session registry and the transcript of each
// conversation. Sessions are created on demand and mutated only under
// the service lock.
type ChatService struct {
	mu       sync.RWMutex
	sessions map[string]*models.ChatSession
	llm      Inference
}

func NewChatService(llm Inference) *ChatService {
	return &ChatService{
		sessions: make(map[string]*models.ChatSession),
		llm:      llm,
	}
}

// Session returns the session for id, creating it if needed. An empty
// id gets a fresh uuid.
func (s *ChatService) Session(id string) *models.ChatSession {
	if id == "" {
		id = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = &models.ChatSession{ID: id, CreatedAt: time.Now()}
		s.sessions[id] = sess
	}
	return sess
}

// History returns a copy of the transcript, and whether the session exists.
func (s *ChatService) History(id string) ([]models.ChatMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	out := make([]models.ChatMessage, len(sess.Messages))
	copy(out, sess.Messages)
	return out, true
}

// Send forwards one user turn to the model, streaming fragments through
// onChunk, and records both turns in the transcript. A failed call
// still yields a visible assistant turn carrying the error text, so the
// conversation is never left dangling on a user message.
func (s *ChatService) Send(ctx context.Context, sessionID, userText string, onChunk func(string)) (string, error) {
	sess := s.Session(sessionID)

	history, _ := s.History(sess.ID)

	reply, err := s.llm.Chat(ctx, history, userText, onChunk)
	if err != nil {
		reply = fmt.Sprintf("Error: %v", err)
	}

	s.mu.Lock()
	sess.Messages = append(sess.Messages,
		models.ChatMessage{Role: models.RoleUser, Content: userText},
		models.ChatMessage{Role: models.RoleAssistant, Content: reply},
	)
	s.mu.Unlock()

	return reply, err
}
