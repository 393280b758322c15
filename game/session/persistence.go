package session

import (
	"time"

	"github.com/wricardo/mcp-training/cascadia/game/engine"
	"github.com/wricardo/mcp-training/cascadia/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedPlayer is one player's board as stored on disk. Majority is
// informational; it is recomputed when a finalized session is loaded.
type PersistedPlayer struct {
	Name     string               `json:"name"`
	Board    engine.BoardSnapshot `json:"board"`
	Majority int                  `json:"majority"`
}

// PersistedSessionData represents the JSON structure for persisted sessions
type PersistedSessionData struct {
	ID             string            `json:"id"`
	ConfigName     string            `json:"config_name"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	Finalized      bool              `json:"finalized"`
	Players        []PersistedPlayer `json:"players"`
}
