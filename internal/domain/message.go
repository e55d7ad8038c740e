// Package domain contains core domain types for the portfolio server.
package domain

import (
	"time"
)

// Role identifies the author of a transcript message.
type Role string

const (
	// RoleUser marks a message typed by the visitor.
	RoleUser Role = "user"
	// RoleModel marks a message produced by the assistant, including
	// synthesized notices (persona switches, action confirmations).
	RoleModel Role = "model"
)

// Message is a single entry in a conversation transcript. Messages are
// immutable once created; the transcript is append-only.
type Message struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NewUserMessage creates a user-role message stamped with the current time.
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text, Timestamp: time.Now()}
}

// NewModelMessage creates a model-role message stamped with the current time.
func NewModelMessage(text string) Message {
	return Message{Role: RoleModel, Text: text, Timestamp: time.Now()}
}
