package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alexswami/portfolio-server/internal/domain"
	"github.com/alexswami/portfolio-server/internal/shared"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
	// Serializes chat session writes to prevent SQLITE_BUSY under WAL.
	sessionMu sync.Mutex
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS chat_sessions (
		visitor_id TEXT PRIMARY KEY,
		history_json TEXT NOT NULL DEFAULT '',
		persona TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_chat_sessions_updated ON chat_sessions(updated_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// GetChatSession retrieves persisted chat state for a visitor.
func (s *SQLiteStore) GetChatSession(ctx context.Context, visitorID string) (*domain.ChatSession, error) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	query := `
		SELECT visitor_id, history_json, persona, created_at, updated_at
		FROM chat_sessions WHERE visitor_id = ?`

	row := s.db.QueryRowContext(ctx, query, visitorID)

	var session domain.ChatSession
	var createdAt, updatedAt int64

	err := row.Scan(&session.VisitorID, &session.HistoryJSON, &session.Persona, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan chat session: %w", err)
	}

	session.CreatedAt = time.Unix(createdAt, 0)
	session.UpdatedAt = time.Unix(updatedAt, 0)

	return &session, nil
}

// UpsertChatSession creates or updates persisted chat state. An empty
// HistoryJSON on update leaves the stored transcript untouched so a fresh
// widget cannot wipe history by persisting only a persona change.
// Retries with exponential backoff on SQLite concurrency errors.
func (s *SQLiteStore) UpsertChatSession(ctx context.Context, session *domain.ChatSession) error {
	maxRetries := 3
	baseDelay := 100 * time.Millisecond

	var err error
	for i := 0; i < maxRetries; i++ {
		err = s.upsertChatSessionOnce(ctx, session)
		if err == nil {
			return nil
		}
		if !shared.IsSQLiteConflictError(err) || i == maxRetries-1 {
			break
		}
		delay := baseDelay * time.Duration(1<<i) // 100ms, 200ms, 400ms
		slog.Debug("UpsertChatSession hit SQLite conflict, retrying",
			"visitor_id", session.VisitorID,
			"attempt", i+1,
			"delay", delay)
		time.Sleep(delay)
	}
	return fmt.Errorf("upsert chat session for %s: %w", session.VisitorID, err)
}

func (s *SQLiteStore) upsertChatSessionOnce(ctx context.Context, session *domain.ChatSession) error {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	query := `
		INSERT INTO chat_sessions (visitor_id, history_json, persona, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(visitor_id) DO UPDATE SET
			history_json = CASE WHEN excluded.history_json = '' THEN chat_sessions.history_json ELSE excluded.history_json END,
			persona = excluded.persona,
			updated_at = excluded.updated_at`

	createdAt := session.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	if _, err := s.db.ExecContext(ctx, query,
		session.VisitorID, session.HistoryJSON, session.Persona,
		createdAt.Unix(), time.Now().Unix(),
	); err != nil {
		return err
	}
	return nil
}

// DeleteChatSession removes persisted chat state for a visitor.
func (s *SQLiteStore) DeleteChatSession(ctx context.Context, visitorID string) error {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM chat_sessions WHERE visitor_id = ?`, visitorID); err != nil {
		return fmt.Errorf("delete chat session: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
