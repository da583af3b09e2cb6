package query

import (
	"context"
	"fmt"

	"github.com/mundiclass/backend/internal/history/domain"
)

// ListDeletedQuery represents the query to list deletion records
type ListDeletedQuery struct {
	EntityTable string
	Limit       int
	Offset      int
}

// ListDeletedHandler handles the deletion log query
type ListDeletedHandler struct {
	repo domain.HistoryRepository
}

// NewListDeletedHandler creates a new list deleted handler
func NewListDeletedHandler(repo domain.HistoryRepository) *ListDeletedHandler {
	return &ListDeletedHandler{repo: repo}
}

// Handle returns deletion records ordered newest-first
func (h *ListDeletedHandler) Handle(ctx context.Context, q ListDeletedQuery) ([]domain.DeletionRecord, error) {
	if q.Limit <= 0 {
		q.Limit = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	records, err := h.repo.FindAll(ctx, q.EntityTable, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list deletion records: %w", err)
	}
	return records, nil
}
