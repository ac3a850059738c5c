package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/opsdeck/backoffice/internal/db"
	"github.com/opsdeck/backoffice/internal/repository"
	"github.com/opsdeck/backoffice/internal/storage"
)

type VendorRepo struct {
	db db.DB
}

func NewVendorRepo(db db.DB) storage.VendorRepository {
	return &VendorRepo{db: db}
}

func (r *VendorRepo) GetByID(ctx context.Context, id string) (*repository.Vendor, error) {
	var vendor repository.Vendor
	err := r.db.Get(ctx, &vendor, "SELECT * FROM vendors WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

func (r *VendorRepo) List(ctx context.Context) ([]*repository.Vendor, error) {
	var vendors []*repository.Vendor
	err := r.db.Select(ctx, &vendors, "SELECT * FROM vendors ORDER BY name ASC")
	return vendors, err
}
