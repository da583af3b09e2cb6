package domain

import (
	"context"
	"encoding/json"
	"time"
)

// DeletionRecord is an append-only audit entry for a deleted row.
// Records are never updated or deleted.
type DeletionRecord struct {
	ID          uint            `json:"id"`
	EntityTable string          `json:"entity_table"`
	RecordID    uint            `json:"record_id"`
	Payload     json.RawMessage `json:"payload"`
	DeletedAt   time.Time       `json:"deleted_at"`
}

// HistoryRepository defines the contract for the deletion log
type HistoryRepository interface {
	Append(ctx context.Context, record *DeletionRecord) error
	FindAll(ctx context.Context, entityTable string, limit, offset int) ([]DeletionRecord, error)
	Count(ctx context.Context, entityTable string) (int64, error)
}
