// Package session holds the chat session state: the persisted collection,
// the single draft slot, and the currently selected session.
package session

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat message. Messages are append-only: once created
// they are never edited or removed individually.
type Message struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
}

// Session is one chat conversation. A session is either a draft (no
// messages yet, not persisted) or a member of the persisted collection.
// The JSON field names match the serialized collection format.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	UpdatedAt int64     `json:"updatedAt"` // epoch milliseconds
	IsGroup   bool      `json:"isGroup"`
	GroupLink string    `json:"groupLink,omitempty"`
}

func newID() string {
	return uuid.NewString()
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
