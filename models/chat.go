package models

import "time"

// Chat roles as stored in the transcript.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatSession holds one conversation's state. Sessions are explicit
// objects keyed by id, not ambient per-user globals. Mutation goes
// through ChatService, which owns the locking.
type ChatSession struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Messages  []ChatMessage `json:"messages"`
}
