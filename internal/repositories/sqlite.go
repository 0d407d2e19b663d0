package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/desertthunder/ytlink/internal/shared"
)

// SQLiteSyncStore keeps the document in the single row of sync_slot.
type SQLiteSyncStore struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenSQLiteSyncStore opens path (":memory:" when empty) and applies pending migrations.
func OpenSQLiteSyncStore(path string) (*SQLiteSyncStore, error) {
	if path == "" {
		path = ":memory:"
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, err
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return NewSQLiteSyncStore(db), nil
}

// NewSQLiteSyncStore wraps an already migrated database.
func NewSQLiteSyncStore(db *sql.DB) *SQLiteSyncStore {
	return &SQLiteSyncStore{db: db}
}

func (s *SQLiteSyncStore) Store(ctx context.Context, data json.RawMessage) error {
	if err := validDocument(data); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO sync_slot (id, data, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to store sync data: %w", err)
	}
	return nil
}

func (s *SQLiteSyncStore) Retrieve(ctx context.Context) (json.RawMessage, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM sync_slot WHERE id = 1").Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrNothingStored
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query sync data: %w", err)
	}
	return json.RawMessage(data), nil
}

func (s *SQLiteSyncStore) Close() error {
	return s.db.Close()
}
