package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/opsdeck/backoffice/internal/db"
	"github.com/opsdeck/backoffice/internal/repository"
	"github.com/opsdeck/backoffice/internal/storage"
)

type ReturnRepo struct {
	db db.DB
}

func NewReturnRepo(db db.DB) storage.ReturnRepository {
	return &ReturnRepo{db: db}
}

func (r *ReturnRepo) Create(ctx context.Context, ret *repository.Return) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO returns (
            id, order_id, customer_name, customer_email, reason, status,
            refund_amount, vendor_id, note, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `, ret.ID, ret.OrderID, ret.CustomerName, ret.CustomerEmail, ret.Reason,
		ret.Status, ret.RefundAmount, ret.VendorID, ret.Note, ret.CreatedAt)
	return err
}

func (r *ReturnRepo) GetByID(ctx context.Context, id string) (*repository.Return, error) {
	var ret repository.Return
	err := r.db.Get(ctx, &ret, "SELECT * FROM returns WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &ret, nil
}

func (r *ReturnRepo) Update(ctx context.Context, ret *repository.Return) error {
	_, err := r.db.Exec(ctx, `
        UPDATE returns
        SET
            status = $1,
            vendor_id = $2,
            note = $3
        WHERE id = $4
    `, ret.Status, ret.VendorID, ret.Note, ret.ID)
	return err
}

func (r *ReturnRepo) List(ctx context.Context) ([]*repository.Return, error) {
	var returns []*repository.Return
	err := r.db.Select(ctx, &returns, "SELECT * FROM returns ORDER BY created_at DESC")
	return returns, err
}

func (r *ReturnRepo) CountByStatus(ctx context.Context) ([]repository.StatusCount, error) {
	var counts []repository.StatusCount
	err := r.db.Select(ctx, &counts, `
        SELECT status, COUNT(*) AS count
        FROM returns
        GROUP BY status
    `)
	return counts, err
}
