package domain

import (
	"time"
)

// ChatSession is the persisted projection of one visitor's conversation
// state: the serialized transcript and the active persona identifier. One
// row per visitor; the transcript survives page reloads and server restarts.
type ChatSession struct {
	VisitorID   string
	HistoryJSON string
	Persona     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
