package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/opsdeck/backoffice/internal/db"
	"github.com/opsdeck/backoffice/internal/repository"
	"github.com/opsdeck/backoffice/internal/storage"
)

type OrderRepo struct {
	db db.DB
}

func NewOrderRepo(db db.DB) storage.OrderRepository {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) Create(ctx context.Context, order *repository.Order) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO orders (
            id, customer_id, customer_name, customer_email, status, amount,
            payment_method, vendor_id, prepaid, note, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `, order.ID, order.CustomerID, order.CustomerName, order.CustomerEmail,
		order.Status, order.Amount, order.PaymentMethod, order.VendorID,
		order.Prepaid, order.Note, order.CreatedAt, order.UpdatedAt)
	return err
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*repository.Order, error) {
	var order repository.Order
	err := r.db.Get(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) Update(ctx context.Context, order *repository.Order) error {
	_, err := r.db.Exec(ctx, `
        UPDATE orders
        SET
            status = $1,
            vendor_id = $2,
            note = $3,
            updated_at = $4
        WHERE id = $5
    `, order.Status, order.VendorID, order.Note, order.UpdatedAt, order.ID)
	return err
}

func (r *OrderRepo) List(ctx context.Context) ([]*repository.Order, error) {
	var orders []*repository.Order
	err := r.db.Select(ctx, &orders, "SELECT * FROM orders ORDER BY created_at DESC")
	return orders, err
}

func (r *OrderRepo) CountByStatus(ctx context.Context) ([]repository.StatusCount, error) {
	var counts []repository.StatusCount
	err := r.db.Select(ctx, &counts, `
        SELECT status, COUNT(*) AS count
        FROM orders
        GROUP BY status
    `)
	return counts, err
}
