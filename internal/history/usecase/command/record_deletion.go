package command

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mundiclass/backend/internal/history/domain"
)

// RecordDeletionHandler appends an entry to the deletion log.
// Delete commands in the other domains call RecordDeletion as a side
// effect of every delete operation.
type RecordDeletionHandler struct {
	repo domain.HistoryRepository
}

// NewRecordDeletionHandler creates a new record deletion handler
func NewRecordDeletionHandler(repo domain.HistoryRepository) *RecordDeletionHandler {
	return &RecordDeletionHandler{repo: repo}
}

// RecordDeletion snapshots the deleted entity as JSON and appends it to the log
func (h *RecordDeletionHandler) RecordDeletion(ctx context.Context, entityTable string, recordID uint, snapshot interface{}) error {
	if entityTable == "" {
		return fmt.Errorf("entity table is required")
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal deletion snapshot: %w", err)
	}

	record := &domain.DeletionRecord{
		EntityTable: entityTable,
		RecordID:    recordID,
		Payload:     payload,
		DeletedAt:   time.Now(),
	}

	if err := h.repo.Append(ctx, record); err != nil {
		return fmt.Errorf("failed to record deletion: %w", err)
	}
	return nil
}
