package command

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mundiclass/backend/internal/history/domain"
)

type memHistoryRepo struct {
	records []domain.DeletionRecord
}

func (r *memHistoryRepo) Append(ctx context.Context, record *domain.DeletionRecord) error {
	record.ID = uint(len(r.records) + 1)
	r.records = append(r.records, *record)
	return nil
}

func (r *memHistoryRepo) FindAll(ctx context.Context, entityTable string, limit, offset int) ([]domain.DeletionRecord, error) {
	var out []domain.DeletionRecord
	for _, rec := range r.records {
		if entityTable == "" || rec.EntityTable == entityTable {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memHistoryRepo) Count(ctx context.Context, entityTable string) (int64, error) {
	records, _ := r.FindAll(ctx, entityTable, 0, 0)
	return int64(len(records)), nil
}

func TestRecordDeletionSnapshotsEntity(t *testing.T) {
	repo := &memHistoryRepo{}
	handler := NewRecordDeletionHandler(repo)

	snapshot := map[string]interface{}{"id": 7, "name": "Electronics"}
	err := handler.RecordDeletion(context.Background(), "categories", 7, snapshot)
	require.NoError(t, err)

	require.Len(t, repo.records, 1)
	record := repo.records[0]

	assert.Equal(t, "categories", record.EntityTable)
	assert.Equal(t, uint(7), record.RecordID)
	assert.False(t, record.DeletedAt.IsZero())

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(record.Payload, &decoded))
	assert.Equal(t, "Electronics", decoded["name"])
}

func TestRecordDeletionRequiresEntityTable(t *testing.T) {
	handler := NewRecordDeletionHandler(&memHistoryRepo{})

	err := handler.RecordDeletion(context.Background(), "", 7, nil)
	assert.Error(t, err)
}

func TestRecordDeletionAppendsOnly(t *testing.T) {
	repo := &memHistoryRepo{}
	handler := NewRecordDeletionHandler(repo)

	for i := uint(1); i <= 3; i++ {
		require.NoError(t, handler.RecordDeletion(context.Background(), "products", i, map[string]uint{"id": i}))
	}

	count, _ := repo.Count(context.Background(), "products")
	assert.Equal(t, int64(3), count)
}
