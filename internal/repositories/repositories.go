package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/ytlink/internal/shared"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// SyncStore holds a single JSON document. Store replaces whatever was there.
//
// Retrieve returns [shared.ErrNothingStored] until the first Store.
type SyncStore interface {
	Store(ctx context.Context, data json.RawMessage) error
	Retrieve(ctx context.Context) (json.RawMessage, error)
	Close() error
}

// NewSyncStore opens the backend named by cfg.Backend; an empty backend selects memory.
func NewSyncStore(cfg shared.SyncConfig) (SyncStore, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemorySyncStore(), nil
	case BackendSQLite:
		return OpenSQLiteSyncStore(cfg.Database)
	default:
		return nil, fmt.Errorf("%w: unknown sync backend %q", shared.ErrInvalidConfig, cfg.Backend)
	}
}

// validDocument reports whether data is a non-empty JSON value.
func validDocument(data json.RawMessage) error {
	if len(data) == 0 || !json.Valid(data) {
		return fmt.Errorf("%w: sync data must be a JSON value", shared.ErrInvalidInput)
	}
	return nil
}

func clone(data json.RawMessage) json.RawMessage {
	return append(json.RawMessage(nil), data...)
}
