package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mundiclass/backend/internal/history/domain"
)

// PostgresHistoryRepository implements HistoryRepository on database/sql.
// The deletion log is plain SQL on purpose: append and scan, no ORM lifecycle.
type PostgresHistoryRepository struct {
	db *sql.DB
}

func NewPostgresHistoryRepository(db *sql.DB) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db: db}
}

// Migrate creates the deletion_history table if it does not exist
func (r *PostgresHistoryRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS deletion_history (
			id BIGSERIAL PRIMARY KEY,
			entity_table TEXT NOT NULL,
			record_id BIGINT NOT NULL,
			payload JSONB NOT NULL DEFAULT '{}'::jsonb,
			deleted_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS ix_deletion_history_entity ON deletion_history (entity_table, deleted_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate deletion_history: %w", err)
	}
	return nil
}

func (r *PostgresHistoryRepository) Append(ctx context.Context, record *domain.DeletionRecord) error {
	query := `
		INSERT INTO deletion_history (entity_table, record_id, payload, deleted_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		record.EntityTable,
		record.RecordID,
		[]byte(record.Payload),
		record.DeletedAt,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("failed to append deletion record: %w", err)
	}
	return nil
}

func (r *PostgresHistoryRepository) FindAll(ctx context.Context, entityTable string, limit, offset int) ([]domain.DeletionRecord, error) {
	query := `
		SELECT id, entity_table, record_id, payload, deleted_at
		FROM deletion_history
	`
	args := []interface{}{}
	if entityTable != "" {
		query += ` WHERE entity_table = $1`
		args = append(args, entityTable)
	}
	query += fmt.Sprintf(` ORDER BY deleted_at DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query deletion history: %w", err)
	}
	defer rows.Close()

	records := make([]domain.DeletionRecord, 0)
	for rows.Next() {
		var rec domain.DeletionRecord
		var payload []byte
		if err := rows.Scan(&rec.ID, &rec.EntityTable, &rec.RecordID, &payload, &rec.DeletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deletion record: %w", err)
		}
		rec.Payload = payload
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *PostgresHistoryRepository) Count(ctx context.Context, entityTable string) (int64, error) {
	var count int64
	if entityTable != "" {
		err := r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM deletion_history WHERE entity_table = $1`, entityTable).Scan(&count)
		return count, err
	}
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM deletion_history`).Scan(&count)
	return count, err
}
