package postgresql

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/opsdeck/backoffice/internal/db"
	"github.com/opsdeck/backoffice/internal/storage"
)

// OperatorRepo validates the back-office operators allowed to use the
// console.
type OperatorRepo struct {
	db db.DB
}

func NewOperatorRepo(db db.DB) storage.OperatorRepository {
	return &OperatorRepo{db: db}
}

func (r *OperatorRepo) CreateOperator(ctx context.Context, username, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		"INSERT INTO operators (username, password) VALUES ($1, $2)",
		username, string(hashedPassword))
	return err
}

func (r *OperatorRepo) ValidateOperator(ctx context.Context, username, password string) (bool, error) {
	var hashedPassword string
	err := r.db.ExecQueryRow(ctx,
		"SELECT password FROM operators WHERE username = $1", username).Scan(&hashedPassword)
	if err != nil {
		return false, errors.New("operator not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		return false, nil
	}
	return true, nil
}
