package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/luiizaferreirafonseca/rental-engine/internal/domain"
)

type accessoryRepository struct {
	db *sqlx.DB
}

func NewAccessoryRepository(db *sqlx.DB) AccessoryRepository {
	return &accessoryRepository{db: db}
}

func (r *accessoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Accessory, error) {
	query := `
		SELECT id, name, daily_rate, created_at
		FROM accessories
		WHERE id = $1
	`

	var accessory domain.Accessory
	err := r.db.GetContext(ctx, &accessory, query, id)
	if err != nil {
		return nil, err
	}

	return &accessory, nil
}
