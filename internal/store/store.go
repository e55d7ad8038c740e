// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"github.com/alexswami/portfolio-server/internal/domain"
)

// Repository defines the interface for persisting chat session state. It is
// a key-value surface: one row per visitor holding the serialized transcript
// and the active persona identifier.
type Repository interface {
	// GetChatSession retrieves persisted chat state for a visitor.
	// Returns (nil, nil) when no state has been persisted yet.
	GetChatSession(ctx context.Context, visitorID string) (*domain.ChatSession, error)

	// UpsertChatSession creates or updates persisted chat state.
	UpsertChatSession(ctx context.Context, session *domain.ChatSession) error

	// DeleteChatSession removes persisted chat state for a visitor.
	DeleteChatSession(ctx context.Context, visitorID string) error

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
