package postgresql

import (
	"context"

	"github.com/opsdeck/backoffice/internal/db"
	"github.com/opsdeck/backoffice/internal/repository"
	"github.com/opsdeck/backoffice/internal/storage"
)

type HistoryRepo struct {
	db db.DB
}

func NewHistoryRepo(db db.DB) storage.HistoryRepository {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) Create(ctx context.Context, entry *repository.HistoryEntry) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO record_history (domain, record_id, status, changed_at)
        VALUES ($1, $2, $3, $4)
    `, entry.Domain, entry.RecordID, entry.Status, entry.ChangedAt)
	return err
}

func (r *HistoryRepo) GetByRecordID(ctx context.Context, domain, recordID string) ([]*repository.HistoryEntry, error) {
	var entries []*repository.HistoryEntry
	err := r.db.Select(ctx, &entries, `
        SELECT * FROM record_history
        WHERE domain = $1 AND record_id = $2
        ORDER BY changed_at ASC
    `, domain, recordID)
	return entries, err
}
