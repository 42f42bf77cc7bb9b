package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/findosh/nomel/internal/session"
)

// SnapshotRepository stores the single session snapshot as one JSON
// payload. It satisfies session.Persister.
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Load returns the stored snapshot, or nil when none exists. A corrupt
// payload reads as no prior state; it never fails the boot.
func (r *SnapshotRepository) Load() (*session.Snapshot, error) {
	var payload string
	err := r.db.QueryRow(`SELECT payload FROM snapshots WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var snap session.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		log.Printf("storage: discarding corrupt snapshot: %v", err)
		return nil, nil
	}
	return &snap, nil
}

// Save upserts the snapshot
func (r *SnapshotRepository) Save(snap session.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	query := `
		INSERT INTO snapshots (id, payload, updated_at)
		VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := r.db.Exec(query, string(payload)); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Delete removes the stored snapshot, if any
func (r *SnapshotRepository) Delete() error {
	if _, err := r.db.Exec(`DELETE FROM snapshots WHERE id = 1`); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}
