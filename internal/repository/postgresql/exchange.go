package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/opsdeck/backoffice/internal/db"
	"github.com/opsdeck/backoffice/internal/repository"
	"github.com/opsdeck/backoffice/internal/storage"
)

type ExchangeRepo struct {
	db db.DB
}

func NewExchangeRepo(db db.DB) storage.ExchangeRepository {
	return &ExchangeRepo{db: db}
}

func (r *ExchangeRepo) Create(ctx context.Context, exc *repository.Exchange) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO exchanges (
            id, order_id, customer_name, customer_email, original_item,
            replacement_item, status, vendor_id, note, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `, exc.ID, exc.OrderID, exc.CustomerName, exc.CustomerEmail,
		exc.OriginalItem, exc.ReplacementItem, exc.Status, exc.VendorID,
		exc.Note, exc.CreatedAt)
	return err
}

func (r *ExchangeRepo) GetByID(ctx context.Context, id string) (*repository.Exchange, error) {
	var exc repository.Exchange
	err := r.db.Get(ctx, &exc, "SELECT * FROM exchanges WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &exc, nil
}

func (r *ExchangeRepo) Update(ctx context.Context, exc *repository.Exchange) error {
	_, err := r.db.Exec(ctx, `
        UPDATE exchanges
        SET
            status = $1,
            vendor_id = $2,
            note = $3
        WHERE id = $4
    `, exc.Status, exc.VendorID, exc.Note, exc.ID)
	return err
}

func (r *ExchangeRepo) List(ctx context.Context) ([]*repository.Exchange, error) {
	var exchanges []*repository.Exchange
	err := r.db.Select(ctx, &exchanges, "SELECT * FROM exchanges ORDER BY created_at DESC")
	return exchanges, err
}

func (r *ExchangeRepo) CountByStatus(ctx context.Context) ([]repository.StatusCount, error) {
	var counts []repository.StatusCount
	err := r.db.Select(ctx, &counts, `
        SELECT status, COUNT(*) AS count
        FROM exchanges
        GROUP BY status
    `)
	return counts, err
}
